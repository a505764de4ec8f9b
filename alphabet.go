package phrasecluster

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol is the integer code of one word. Codes 0..MaxAlphabetSize-1 are words,
// Terminator marks the end of a document.
type Symbol uint32

const (
	// MaxAlphabetSize is the largest number of distinct words an Alphabet can hold.
	// Symbols are handled as single indexable units, so the code space stays 16 bits wide.
	MaxAlphabetSize = 65535

	// Terminator is the reserved symbol closing a document in an input sequence.
	Terminator Symbol = 0xFFFF
)

// ErrAlphabetOverflow is returned when a vocabulary or a symbol sequence leaves the
// 16-bit code space.
var ErrAlphabetOverflow = errors.New("alphabet exceeds 65535 distinct symbols")

// IsTerminator reports whether s closes a document. Inside a tree every document
// carries its own sentinel, which also counts as a terminator.
func (s Symbol) IsTerminator() bool {
	return s == Terminator || s >= sentinelBase
}

// Alphabet is a bidirectional word <-> Symbol dictionary.
// It is not safe for concurrent mutation.
type Alphabet struct {
	words []string
	codes map[string]Symbol
}

// NewAlphabet creates an alphabet seeded with words, in order. Duplicate words
// keep their first code.
func NewAlphabet(words ...string) (*Alphabet, error) {
	a := &Alphabet{
		codes: make(map[string]Symbol, len(words)),
	}
	for _, w := range words {
		if _, err := a.Add(w); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add returns the code for word, assigning the next free code when the word is new.
func (a *Alphabet) Add(word string) (Symbol, error) {
	if code, ok := a.codes[word]; ok {
		return code, nil
	}
	if len(a.words) >= MaxAlphabetSize {
		return 0, fmt.Errorf("%w: cannot add %q", ErrAlphabetOverflow, word)
	}
	code := Symbol(len(a.words))
	a.words = append(a.words, word)
	a.codes[word] = code
	return code, nil
}

// Code looks up the code of a word without adding it.
func (a *Alphabet) Code(word string) (Symbol, bool) {
	code, ok := a.codes[word]
	return code, ok
}

// Word returns the word for a code, or "" for terminators and unknown codes.
func (a *Alphabet) Word(s Symbol) string {
	if int(s) >= len(a.words) {
		return ""
	}
	return a.words[s]
}

// Len returns the number of distinct words.
func (a *Alphabet) Len() int {
	return len(a.words)
}

// Encode converts tokens to symbols, growing the alphabet as needed.
func (a *Alphabet) Encode(tokens []string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(tokens))
	for _, t := range tokens {
		code, err := a.Add(t)
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

// Decode renders a symbol slice as a space separated phrase. Terminators are skipped.
func (a *Alphabet) Decode(symbols []Symbol) string {
	var sb strings.Builder
	for _, s := range symbols {
		if s.IsTerminator() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Word(s))
	}
	return sb.String()
}

// ValidateSymbols checks that every symbol is a word code or the Terminator.
func ValidateSymbols(symbols []Symbol) error {
	for i, s := range symbols {
		if s >= MaxAlphabetSize && s != Terminator {
			return fmt.Errorf("%w: symbol %d at position %d", ErrAlphabetOverflow, s, i)
		}
	}
	return nil
}
