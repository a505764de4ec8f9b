package phrasecluster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrPipelineBuilt is returned by AddText after Build has run.
var ErrPipelineBuilt = errors.New("pipeline already built")

// PipelineConfig configures a Pipeline.
type PipelineConfig struct {
	Cleaner CleanerConfig
	// Logger receives progress records; nil means slog.Default().
	Logger *slog.Logger
}

// DefaultPipelineConfig returns the configuration used by the command line tool.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{Cleaner: DefaultCleanerConfig()}
}

// Pipeline turns raw texts into a suffix tree and its phrase index.
//
// Each text is cleaned, encoded against a shared alphabet, recorded in a word
// level TermIndex and inserted into the tree. Documents are numbered by
// position in the order they are added, starting at 0. A text that cleans to
// nothing is kept as the single word EmptyDocumentMarker so positions stay
// aligned with the input.
//
// Thread-safety: all methods are safe for concurrent use; AddText calls are
// serialized.
type Pipeline struct {
	mu       sync.Mutex
	cleaner  *Cleaner
	alphabet *Alphabet
	tree     *Tree
	terms    *TermIndex
	logger   *slog.Logger
	next     uint32
	result   *Result
}

// NewPipeline creates an empty pipeline.
func NewPipeline(config PipelineConfig) *Pipeline {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cleaner:  NewCleaner(config.Cleaner),
		alphabet: &Alphabet{codes: make(map[string]Symbol)},
		tree:     NewTree(),
		terms:    NewTermIndex(),
		logger:   logger,
	}
}

// AddText cleans text and appends it as the next document.
func (p *Pipeline) AddText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.result != nil {
		return ErrPipelineBuilt
	}

	tokens := p.cleaner.Clean(text)
	if len(tokens) == 0 {
		tokens = []string{EmptyDocumentMarker}
	}
	symbols, err := p.alphabet.Encode(tokens)
	if err != nil {
		return fmt.Errorf("encoding document %d: %w", p.next, err)
	}

	id := p.next
	if err := p.tree.AddSequence(symbols, id); err != nil {
		return fmt.Errorf("adding document %d: %w", id, err)
	}
	p.terms.Add(id, symbols)
	p.next++

	p.logger.Debug("document added", "document", id, "words", len(symbols))
	return nil
}

// Build indexes the tree and returns the result. Later calls return the same
// Result.
func (p *Pipeline) Build(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.result != nil {
		return p.result, nil
	}

	start := time.Now()
	phrases, err := p.tree.Index(ctx)
	if err != nil {
		return nil, err
	}
	p.result = &Result{
		Alphabet: p.alphabet,
		Tree:     p.tree,
		Phrases:  phrases,
		Terms:    p.terms,
	}
	p.logger.Info("phrase index built",
		"documents", p.next,
		"words", p.alphabet.Len(),
		"nodes", p.tree.NodeCount(),
		"phrases", phrases.Len(),
		"elapsed", time.Since(start))
	return p.result, nil
}

// Result is the output of a Pipeline build.
type Result struct {
	Alphabet *Alphabet
	Tree     *Tree
	Phrases  *PhraseIndex
	Terms    *TermIndex
}

// DocumentCount returns the number of documents in the result.
func (r *Result) DocumentCount() int {
	return r.Tree.DocumentCount()
}

// PhraseText decodes the words of phrase i.
func (r *Result) PhraseText(i int) string {
	return r.Alphabet.Decode(r.Tree.PathLabel(r.Phrases.Phrase(i).Node))
}

// WordMatrix returns the document similarity matrix over tf-idf word vectors.
func (r *Result) WordMatrix(kind SimilarityKind, precision MatrixPrecision) (*SimilarityMatrix, error) {
	return NewSimilarityMatrix(r.Terms.Vectors(r.Alphabet.Len()), kind, precision)
}

// PhraseMatrix returns the document similarity matrix over tf-idf phrase vectors.
func (r *Result) PhraseMatrix(kind SimilarityKind, precision MatrixPrecision) (*SimilarityMatrix, error) {
	return NewSimilarityMatrix(PhraseVectors(r.Phrases, r.DocumentCount()), kind, precision)
}
