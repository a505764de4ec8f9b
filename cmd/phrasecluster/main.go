package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
	config     Config
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "phrasecluster",
		Short: "Cluster documents by the phrases they share",
		Long: `phrasecluster builds a generalized suffix tree over a corpus of documents,
scores the phrases shared by two or more documents and clusters the corpus with
suffix tree clustering, GHAC and KNN.

The corpus directory holds one sub-directory per reference class:
  <input>/<class>/<file>`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.String("similarity", "", "similarity measure: cosine, euclidean or correlation")
	flags.String("precision", "", "similarity matrix precision: float32 or float16")
	flags.String("stop-words", "", "file with one stop word per line")
	flags.Bool("no-stemming", false, "disable stemming")
	flags.String("document-keyword", "", "skip each file up to the first line starting with this keyword")
	flags.Int("top-k", 0, "number of top scored phrases to keep")
	flags.Float64("min-score", 0, "minimum phrase score")

	rootCmd.AddCommand(newClusterCmd(opts), newPhrasesCmd(opts))
	return rootCmd
}

// load builds the logger and the effective configuration: defaults, then the
// YAML file, then explicitly set flags.
func (o *options) load(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", o.logLevel, err)
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("similarity") {
		cfg.Similarity, _ = flags.GetString("similarity")
	}
	if flags.Changed("precision") {
		cfg.Precision, _ = flags.GetString("precision")
	}
	if flags.Changed("stop-words") {
		cfg.StopWordsFile, _ = flags.GetString("stop-words")
	}
	if flags.Changed("no-stemming") {
		off, _ := flags.GetBool("no-stemming")
		cfg.Stemming = !off
	}
	if flags.Changed("document-keyword") {
		cfg.DocumentKeyword, _ = flags.GetString("document-keyword")
	}
	if flags.Changed("top-k") {
		cfg.TopK, _ = flags.GetInt("top-k")
	}
	if flags.Changed("min-score") {
		cfg.MinScore, _ = flags.GetFloat64("min-score")
	}
	cfg.Similarity = strings.ToLower(cfg.Similarity)
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.config = cfg
	return nil
}
