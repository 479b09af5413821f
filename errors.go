package datamatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pckhoi/datamatch/record"
)

var (
	// ErrNilTable is returned when a matcher is constructed without a table.
	ErrNilTable = errors.New("table must not be nil")

	// ErrNilScorer is returned when a matcher is constructed without a scorer.
	ErrNilScorer = errors.New("scorer must not be nil")

	// ErrNilIndex is returned when a matcher is constructed without an index.
	ErrNilIndex = errors.New("index must not be nil")
)

// ErrDuplicateKeys indicates a table whose row keys are not unique.
// Every participating table must have unique keys; this is checked
// eagerly before any scoring begins.
type ErrDuplicateKeys struct {
	Side Side
	Keys []record.Key
}

func (e *ErrDuplicateKeys) Error() string {
	keys := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		keys[i] = string(k)
	}
	return fmt.Sprintf("%s table contains duplicate row keys: %s", e.Side, strings.Join(keys, ", "))
}

// ErrFieldMismatch indicates two matched tables with different field sets.
type ErrFieldMismatch struct {
	Left  []string
	Right []string
}

func (e *ErrFieldMismatch) Error() string {
	return fmt.Sprintf("table fields are not equal: left=%v right=%v", e.Left, e.Right)
}

// ErrUnhandledRefusal indicates a scorer that refused a pair with no
// combinator above it to delegate to. A veto-style scorer must always be
// wrapped in a Max or Min combinator.
type ErrUnhandledRefusal struct {
	KeyA   record.Key
	KeyB   record.Key
	Reason string
}

func (e *ErrUnhandledRefusal) Error() string {
	return fmt.Sprintf("scorer refused pair (%s, %s) with no combinator to delegate to: %s", e.KeyA, e.KeyB, e.Reason)
}

// ErrInvalidScore indicates a scorer that produced a value outside [0, 1].
type ErrInvalidScore struct {
	KeyA  record.Key
	KeyB  record.Key
	Score float64
}

func (e *ErrInvalidScore) Error() string {
	return fmt.Sprintf("score %g for pair (%s, %s) is outside [0, 1]", e.Score, e.KeyA, e.KeyB)
}

// Side names the logical side of a pair.
type Side int

const (
	// SideLeft is table A.
	SideLeft Side = iota
	// SideRight is table B (the same table as A in dedup mode).
	SideRight
)

// String returns a string representation of the Side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}
