package phrasecluster

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentOrder is returned when a document id does not increase.
	ErrDocumentOrder = errors.New("document ids must be strictly increasing")

	// ErrTreeSealed is returned when documents are added after the tree was indexed.
	ErrTreeSealed = errors.New("tree is sealed after indexing")

	// ErrInvariantViolation marks a structural impossibility reached during construction.
	// It signals a bug, never bad input.
	ErrInvariantViolation = errors.New("suffix tree invariant violated")

	// ErrTreeCorrupted is returned by every call on a tree whose construction failed.
	ErrTreeCorrupted = errors.New("suffix tree is corrupted and must be rebuilt")
)

// InvariantError describes where construction hit an impossible state.
type InvariantError struct {
	Op     string // construction step
	Node   NodeID
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s at node %d: %s", ErrInvariantViolation, e.Op, e.Node, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// IsConfigurationError reports whether err means the engine was set up with input it
// can never accept, as opposed to an internal failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrAlphabetOverflow) || errors.Is(err, ErrUnknownSimilarityKind)
}
