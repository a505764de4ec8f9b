package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wizenheimer/phrasecluster"
)

// Config holds every tunable of a clustering run. Keys absent from a YAML file
// keep their defaults; keys present override them, zero values included. Flags
// override both.
type Config struct {
	// Similarity measure for the GHAC and KNN matrices: cosine, euclidean or correlation.
	Similarity string `yaml:"similarity"`
	// Precision of the similarity matrix cells: float32 or float16.
	Precision string `yaml:"precision"`

	StopWordsFile  string `yaml:"stop_words_file"`
	Stemming       bool   `yaml:"stemming"`
	MinTokenLength int    `yaml:"min_token_length"`
	// DocumentKeyword skips every line of a file up to and including the first
	// line starting with it, e.g. "Lines: " for newsgroup posts.
	DocumentKeyword string `yaml:"document_keyword"`

	MergeThreshold float64 `yaml:"merge_threshold"`
	MaxIterations  int     `yaml:"max_iterations"`
	TopK           int     `yaml:"top_k"`
	Neighbors      int     `yaml:"neighbors"`
	MinScore       float64 `yaml:"min_score"`
	Autocut        int     `yaml:"autocut"`
}

// DefaultConfig returns the settings of the reference experiments.
func DefaultConfig() Config {
	return Config{
		Similarity:     string(phrasecluster.Cosine),
		Precision:      string(phrasecluster.FullPrecision),
		Stemming:       true,
		MinTokenLength: 1,
		MergeThreshold: phrasecluster.DefaultMergeThreshold,
		MaxIterations:  phrasecluster.DefaultMaxIterations,
		TopK:           10,
		Neighbors:      phrasecluster.DefaultNeighbors,
		Autocut:        -1,
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := phrasecluster.NewSimilarity(phrasecluster.SimilarityKind(c.Similarity)); err != nil {
		return fmt.Errorf("similarity %q: %w", c.Similarity, err)
	}
	switch phrasecluster.MatrixPrecision(c.Precision) {
	case phrasecluster.FullPrecision, phrasecluster.HalfPrecision:
	default:
		return fmt.Errorf("precision %q: must be float32 or float16", c.Precision)
	}
	if c.MergeThreshold < 0 || c.MergeThreshold > 1 {
		return fmt.Errorf("merge_threshold %v: must be within [0, 1]", c.MergeThreshold)
	}
	if c.MinTokenLength < 0 {
		return fmt.Errorf("min_token_length %d: must not be negative", c.MinTokenLength)
	}
	return nil
}

// cleanerConfig builds the text cleaning settings, reading the stop word file if set.
func (c Config) cleanerConfig() (phrasecluster.CleanerConfig, error) {
	cc := phrasecluster.CleanerConfig{
		Stemming:       c.Stemming,
		MinTokenLength: c.MinTokenLength,
	}
	if c.StopWordsFile == "" {
		return cc, nil
	}
	f, err := os.Open(c.StopWordsFile)
	if err != nil {
		return cc, fmt.Errorf("opening stop words: %w", err)
	}
	defer f.Close()
	cc.StopWords, err = phrasecluster.ParseStopWords(f)
	if err != nil {
		return cc, fmt.Errorf("reading stop words: %w", err)
	}
	return cc, nil
}
