package trim

import "strings"

// Sequence is the capability set the trimmer needs from a read. Slice
// returns a new value of the same concrete type so that trimming a
// richer record keeps its annotations.
type Sequence[S any] interface {
	Len() int
	String() string
	Index(sub string) int
	LastIndex(sub string) int
	Slice(start, end int) S
}

// Seq is a bare read.
type Seq string

func (s Seq) Len() int                 { return len(s) }
func (s Seq) String() string           { return string(s) }
func (s Seq) Index(sub string) int     { return strings.Index(string(s), sub) }
func (s Seq) LastIndex(sub string) int { return strings.LastIndex(string(s), sub) }
func (s Seq) Slice(start, end int) Seq { return s[start:end] }

// Record is a read with an identifier and free-text description.
type Record struct {
	ID   string
	Desc string
	Seq  Seq
}

func (r Record) Len() int                 { return r.Seq.Len() }
func (r Record) String() string           { return r.Seq.String() }
func (r Record) Index(sub string) int     { return r.Seq.Index(sub) }
func (r Record) LastIndex(sub string) int { return r.Seq.LastIndex(sub) }

// Slice returns a copy of r holding only the given span of its sequence.
func (r Record) Slice(start, end int) Record {
	r.Seq = r.Seq.Slice(start, end)
	return r
}
