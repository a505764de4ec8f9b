package phrasecluster

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	snowballeng "github.com/kljensen/snowball/english"
	"golang.org/x/text/unicode/norm"
)

// EmptyDocumentMarker stands in for a document that cleans to nothing, so every
// input document still occupies one position in the corpus.
const EmptyDocumentMarker = "00documentisempty00"

// CleanerConfig holds the text cleaning options.
type CleanerConfig struct {
	StopWords      []string // removed after lowercasing, before stemming
	Stemming       bool     // apply the Snowball English stemmer
	MinTokenLength int      // shorter tokens are dropped
}

// DefaultCleanerConfig returns stemming on, no stop words, no length filter.
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		Stemming:       true,
		MinTokenLength: 1,
	}
}

// Cleaner turns raw text into the word sequences the suffix tree consumes:
//
//  1. NFKC normalization and lowercasing
//  2. UAX#29 word segmentation
//  3. runes other than letters and digits are removed; tokens holding digits are dropped
//  4. stop word removal
//  5. stemming
//
// A Cleaner is safe for concurrent use.
type Cleaner struct {
	stopWords map[string]struct{}
	stemming  bool
	minLen    int
}

// NewCleaner creates a cleaner from config.
func NewCleaner(config CleanerConfig) *Cleaner {
	stop := make(map[string]struct{}, len(config.StopWords))
	for _, w := range config.StopWords {
		stop[stripInWord(normalize(w))] = struct{}{}
	}
	return &Cleaner{
		stopWords: stop,
		stemming:  config.Stemming,
		minLen:    config.MinTokenLength,
	}
}

// Clean returns the cleaned tokens of text, possibly none.
func (c *Cleaner) Clean(text string) []string {
	var out []string
	for _, tok := range tokenize(normalize(text)) {
		tok = stripInWord(tok)
		if !isWord(tok) || len([]rune(tok)) < c.minLen {
			continue
		}
		if _, stop := c.stopWords[tok]; stop {
			continue
		}
		if c.stemming {
			tok = snowballeng.Stem(tok, false)
		}
		out = append(out, tok)
	}
	return out
}

// normalize applies Unicode normalization (NFKC) and converts to lowercase.
func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

// tokenize splits text into tokens using UAX#29 word segmentation.
func tokenize(s string) []string {
	toks := words.FromString(s)
	var tokens []string
	for toks.Next() {
		tokens = append(tokens, toks.Value())
	}
	return tokens
}

// stripInWord removes every rune that is neither a letter nor a digit, so
// contractions and possessives ("don't", "user's") keep their letters as one word.
func stripInWord(tok string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, tok)
}

// isWord reports whether tok is made of letters only. Segments of whitespace,
// punctuation or digits fail.
func isWord(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ParseStopWords reads whitespace separated stop words.
func ParseStopWords(r io.Reader) ([]string, error) {
	var stop []string
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		stop = append(stop, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stop words: %w", err)
	}
	return stop, nil
}
