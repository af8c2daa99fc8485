package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/semtools/sparqld/internal/config"
	"codeberg.org/semtools/sparqld/internal/logger"
	"codeberg.org/semtools/sparqld/internal/store"
)

var (
	flagHost   string
	flagPort   int
	flagFormat string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "sparqld [flags] FILE...",
	Short: "Ad-hoc SPARQL endpoint with a browser UI and AI assistant",
	Long: `sparqld loads one or more RDF files into an in-memory graph and serves
them as a SPARQL HTTP endpoint with a YASGUI query interface.

With an OpenAI or Anthropic API key configured, the endpoint also
exposes an AI assistant that explains queries, generates them from
natural-language descriptions, and answers questions about the data.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagHost, "host", "", "host to bind the server to (default 127.0.0.1)")
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "port to bind the server to (default 8000)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "", "RDF format (turtle, n3, ntriples, rdfxml); guessed from the file extension if not set")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to a YAML configuration file")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cmd.Flags().Changed("host") {
		cfg.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}

	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("file %s does not exist", path)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is not a file", path)
		}
	}

	st := store.New()

	for _, path := range args {
		format := flagFormat
		if format == "" {
			format = store.GuessFormat(path)
		}

		logger.Info("loading file", "path", path, "format", format)

		count, err := st.LoadFile(path, format)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		logger.Info("file loaded", "path", path, "triples", count)
	}

	logger.Info("graph loaded", "triples", st.TripleCount())

	srv := newServer(cfg, st)

	return srv.run()
}
