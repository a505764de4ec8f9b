package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/spf13/cobra"

	"github.com/wizenheimer/phrasecluster"
)

func newClusterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cluster <input>",
		Short: "Cluster a corpus with STC, GHAC and KNN and print diagnostics",
		Long: `Cluster a corpus with every algorithm and compare each clustering against the
class directories:

  STC            suffix tree clustering over all shared phrases
  STC-<k>        suffix tree clustering over the top-k phrases
  GHAC (phrase)  average-link agglomeration on phrase vectors
  GHAC (word)    average-link agglomeration on word vectors
  KNN (phrase)   nearest neighbor voting on phrase vectors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCluster(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}
}

func newPhrasesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "phrases <input>",
		Short: "Print the top scored phrases shared by two or more documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhrases(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}
}

// build loads the corpus and runs the phrase pipeline over it.
func build(ctx context.Context, opts *options, input string) (*corpus, *phrasecluster.Result, error) {
	cfg := opts.config
	docs, err := loadCorpus(input, cfg.DocumentKeyword)
	if err != nil {
		return nil, nil, err
	}
	cleaning, err := cfg.cleanerConfig()
	if err != nil {
		return nil, nil, err
	}
	opts.logger.Info("corpus loaded", "classes", len(docs.Classes), "documents", len(docs.Texts))

	p := phrasecluster.NewPipeline(phrasecluster.PipelineConfig{Cleaner: cleaning, Logger: opts.logger})
	for i, text := range docs.Texts {
		if err := p.AddText(text); err != nil {
			return nil, nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	res, err := p.Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	return docs, res, nil
}

// run is one named clustering of the corpus.
type run struct {
	name     string
	clusters []*roaring.Bitmap
}

func runCluster(ctx context.Context, opts *options, input string, out io.Writer) error {
	cfg := opts.config
	docs, res, err := build(ctx, opts, input)
	if err != nil {
		return err
	}
	kind := phrasecluster.SimilarityKind(cfg.Similarity)
	precision := phrasecluster.MatrixPrecision(cfg.Precision)

	phraseMatrix, err := res.PhraseMatrix(kind, precision)
	if err != nil {
		return fmt.Errorf("phrase matrix: %w", err)
	}
	wordMatrix, err := res.WordMatrix(kind, precision)
	if err != nil {
		return fmt.Errorf("word matrix: %w", err)
	}

	var runs []run
	timed := func(name string, f func() ([]*roaring.Bitmap, int)) {
		start := time.Now()
		clusters, iterations := f()
		opts.logger.Info("clustering finished",
			"algorithm", name,
			"clusters", len(clusters),
			"iterations", iterations,
			"elapsed", time.Since(start))
		runs = append(runs, run{name: name, clusters: clusters})
	}

	all := res.Phrases.NewSelection().WithMinScore(cfg.MinScore).Execute()
	top := res.Phrases.NewSelection().
		WithK(cfg.TopK).
		WithMinScore(cfg.MinScore).
		WithAutocut(cfg.Autocut).
		Execute()

	timed("STC", func() ([]*roaring.Bitmap, int) {
		return phrasecluster.MergeBaseClusters(all, cfg.MergeThreshold, cfg.MaxIterations)
	})
	timed(fmt.Sprintf("STC-%d", cfg.TopK), func() ([]*roaring.Bitmap, int) {
		return phrasecluster.MergeBaseClusters(top, cfg.MergeThreshold, cfg.MaxIterations)
	})
	timed("GHAC (phrase)", func() ([]*roaring.Bitmap, int) {
		return phrasecluster.GHAC(phraseMatrix, cfg.MaxIterations)
	})
	timed("GHAC (word)", func() ([]*roaring.Bitmap, int) {
		return phrasecluster.GHAC(wordMatrix, cfg.MaxIterations)
	})
	timed("KNN (phrase)", func() ([]*roaring.Bitmap, int) {
		return phrasecluster.KNN(phraseMatrix, cfg.Neighbors, cfg.MaxIterations)
	})

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tCLUSTERS\tDIAGNOSTICS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.name, len(r.clusters), phrasecluster.Diagnose(r.clusters, docs.Truth))
	}
	return w.Flush()
}

func runPhrases(ctx context.Context, opts *options, input string, out io.Writer) error {
	cfg := opts.config
	_, res, err := build(ctx, opts, input)
	if err != nil {
		return err
	}

	selected := res.Phrases.NewSelection().
		WithK(cfg.TopK).
		WithMinScore(cfg.MinScore).
		WithAutocut(cfg.Autocut).
		Execute()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tDOCUMENTS\tPHRASE")
	for _, bc := range selected {
		fmt.Fprintf(w, "%.2f\t%d\t%s\n", bc.Score, bc.Documents.GetCardinality(), res.PhraseText(bc.Phrase))
	}
	return w.Flush()
}
