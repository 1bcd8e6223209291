// Package align finds the best local alignment between two sequences
// using affine gap penalties.
package align

import (
	bioalign "github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Gap marks an insertion or deletion in an aligned sequence.
const Gap = '-'

// alpha holds the gap at index 0, as the biogo aligners require.
var alpha = alphabet.DNAredundant

// Scoring is a linear match/mismatch scheme with affine gaps. A gap of
// length n costs Open + (n-1)*Extend. Scores must be multiples of 0.5.
type Scoring struct {
	Match    float64
	Mismatch float64
	Open     float64
	Extend   float64
}

// DefaultScoring is the scheme used for adaptor searches.
var DefaultScoring = Scoring{Match: 5.0, Mismatch: -4.0, Open: -9.0, Extend: -0.5}

// Region is one local alignment. Subject and Pattern hold the aligned
// columns (same length, gaps included). Start and End delimit the
// aligned span of the subject, half-open.
type Region struct {
	Subject string
	Pattern string
	Score   float64
	Start   int
	End     int
}

// Local aligns pattern against subject with DefaultScoring.
func Local(subject, pattern string) (Region, bool) {
	return DefaultScoring.Local(subject, pattern)
}

// scale turns half-unit scores into the integers biogo works with.
const scale = 2

// aligner builds the biogo affine Smith-Waterman for sc. biogo charges
// GapOpen on top of the matrix gap score for the first gap position.
func (sc Scoring) aligner() bioalign.SWAffine {
	n := alpha.Len()
	m := make(bioalign.Linear, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			switch {
			case i == 0 && j == 0:
			case i == 0 || j == 0:
				m[i][j] = int(sc.Extend * scale)
			case i == j:
				m[i][j] = int(sc.Match * scale)
			default:
				m[i][j] = int(sc.Mismatch * scale)
			}
		}
	}
	return bioalign.SWAffine{Matrix: m, GapOpen: int((sc.Open - sc.Extend) * scale)}
}

// Local returns a best-scoring local alignment of pattern within
// subject. Ties are resolved by the biogo traceback. ok is false when
// nothing scores above zero or either sequence holds a symbol outside
// the IUPAC DNA alphabet.
func (sc Scoring) Local(subject, pattern string) (Region, bool) {
	if len(subject) == 0 || len(pattern) == 0 {
		return Region{}, false
	}
	ref := linear.NewSeq("subject", alphabet.BytesToLetters([]byte(subject)), alpha)
	query := linear.NewSeq("pattern", alphabet.BytesToLetters([]byte(pattern)), alpha)

	pairs, err := sc.aligner().Align(ref, query)
	if err != nil || len(pairs) == 0 {
		return Region{}, false
	}

	start, end := len(subject), 0
	for _, p := range pairs {
		f := p.Features()[0]
		if f.Start() < start {
			start = f.Start()
		}
		if f.End() > end {
			end = f.End()
		}
	}

	cols := bioalign.Format(ref, query, pairs, Gap)
	r := Region{
		Subject: letters(cols[0]),
		Pattern: letters(cols[1]),
		Start:   start,
		End:     end,
	}
	r.Score = sc.score(r.Subject, r.Pattern)
	if r.Score <= 0 {
		return Region{}, false
	}
	return r, true
}

// score rescores aligned columns in the caller's units.
func (sc Scoring) score(subject, pattern string) float64 {
	total := 0.0
	var prev byte
	for i := 0; i < len(subject); i++ {
		s, p := subject[i], pattern[i]
		switch {
		case s == Gap || p == Gap:
			side := byte('s')
			if p == Gap {
				side = 'p'
			}
			if prev == side {
				total += sc.Extend
			} else {
				total += sc.Open
			}
			prev = side
			continue
		case s == p:
			total += sc.Match
		default:
			total += sc.Mismatch
		}
		prev = 0
	}
	return total
}

func letters(s alphabet.Slice) string {
	ls, ok := s.(alphabet.Letters)
	if !ok {
		return ""
	}
	b := make([]byte, len(ls))
	for i, l := range ls {
		b[i] = byte(l)
	}
	return string(b)
}
