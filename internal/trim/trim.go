// Package trim removes a known adaptor, and everything beyond it on one
// side, from sequencing reads.
package trim

import (
	"errors"
	"fmt"
	"strings"

	"adaptorTrim/internal/align"
)

// ErrLengthMismatch is returned when a read and its quality string differ
// in length.
var ErrLengthMismatch = errors.New("sequence and quality lengths differ")

// Side selects which end of the read the adaptor is cut from.
type Side int

const (
	// Right drops the adaptor and everything after it.
	Right Side = iota
	// Left drops the adaptor and everything before it.
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Options controls a trim. The zero value allows no errors and trims the
// right side.
type Options struct {
	NumErrors int
	Side      Side
}

// Match is where an adaptor was found in a read.
type Match struct {
	// Read and Adaptor are the matched columns; either may hold align.Gap.
	Read    string
	Adaptor string
	Exact   bool
	Errors  int
}

// Literal is the matched read region with gaps removed.
func (m Match) Literal() string {
	return strings.ReplaceAll(m.Read, string(align.Gap), "")
}

// Locate finds adaptor in read, first as an exact substring and then by
// local alignment. When neither finds anything the match is empty and
// Errors equals len(adaptor).
func Locate(read, adaptor string) Match {
	if pos := strings.Index(read, adaptor); pos >= 0 {
		return Match{Read: read[pos : pos+len(adaptor)], Adaptor: adaptor, Exact: true}
	}

	var m Match
	if r, ok := align.Local(read, adaptor); ok {
		m.Read, m.Adaptor = r.Subject, r.Pattern
	}

	// Only the read side length bounds the comparison.
	matches := 0
	for i := 0; i < len(m.Read); i++ {
		if i < len(m.Adaptor) && m.Read[i] == m.Adaptor[i] {
			matches++
		}
	}
	m.Errors = len(adaptor) - matches
	return m
}

// Adaptor trims adaptor from seq. If the best match needs more than
// opts.NumErrors errors seq is returned unchanged.
func Adaptor[S Sequence[S]](seq S, adaptor string, opts Options) S {
	m := Locate(seq.String(), adaptor)
	if m.Errors > opts.NumErrors {
		return seq
	}
	return remove(seq, m.Literal(), opts.Side)
}

// remove cuts at the outermost occurrence of region so the most flanking
// sequence on the kept side survives repetitive adaptors.
func remove[S Sequence[S]](seq S, region string, side Side) S {
	if side == Left {
		pos := seq.LastIndex(region)
		return seq.Slice(pos+len(region), seq.Len())
	}
	return seq.Slice(0, seq.Index(region))
}

// AdaptorWithQuality trims adaptor from seq and cuts qual to the same
// span.
func AdaptorWithQuality[S Sequence[S]](seq S, qual, adaptor string, opts Options) (S, string, error) {
	if seq.Len() != len(qual) {
		var zero S
		return zero, "", fmt.Errorf("%w: %d and %d", ErrLengthMismatch, seq.Len(), len(qual))
	}

	trimmed := Adaptor(seq, adaptor, opts)
	var pos int
	if opts.Side == Left {
		pos = seq.LastIndex(trimmed.String())
	} else {
		pos = seq.Index(trimmed.String())
	}
	return trimmed, qual[pos : pos+trimmed.Len()], nil
}
