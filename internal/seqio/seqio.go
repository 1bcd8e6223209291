// Package seqio reads FASTQ records and writes FASTA records, gzipped or
// not.
package seqio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/klauspost/pgzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// FastqRead is one FASTQ record.
type FastqRead struct {
	ID       string
	Desc     string
	Sequence string
	Quality  string
}

// Reader yields FastqReads from a plain or gzip-compressed stream.
type Reader struct {
	r  *fastq.Reader
	gz *pgzip.Reader
}

// NewReader sniffs r for gzip magic and decompresses when present.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}

	fr := &Reader{}
	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		fr.gz, err = pgzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		src = fr.gz
	}
	fr.r = fastq.NewReader(src, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))
	return fr, nil
}

// Read returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Read() (*FastqRead, error) {
	s, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("invalid fastq file: %w", err)
	}
	qs, ok := s.(*linear.QSeq)
	if !ok {
		return nil, fmt.Errorf("invalid fastq file: unexpected record type %T", s)
	}

	var seqb, qualb strings.Builder
	seqb.Grow(len(qs.Seq))
	qualb.Grow(len(qs.Seq))
	for _, ql := range qs.Seq {
		seqb.WriteByte(byte(ql.L))
		qualb.WriteByte(ql.Q.Encode(qs.Encode))
	}
	return &FastqRead{
		ID:       qs.ID,
		Desc:     qs.Desc,
		Sequence: seqb.String(),
		Quality:  qualb.String(),
	}, nil
}

// Close releases the decompressor, if any. The underlying reader is left
// open.
func (r *Reader) Close() error {
	if r.gz != nil {
		return r.gz.Close()
	}
	return nil
}

// Writer emits trimmed records.
type Writer interface {
	Write(read *FastqRead) error
	Close() error
}

// Output formats accepted by NewWriter.
const (
	FormatFasta = "fasta"
	FormatFastq = "fastq"
)

// NewWriter returns a Writer for format on w, gzipping when compress is
// set. width only applies to FASTA.
func NewWriter(w io.Writer, format string, width int, compress bool) (Writer, error) {
	switch format {
	case FormatFasta:
		return NewFastaWriter(w, width, compress), nil
	case FormatFastq:
		return NewFastqWriter(w, compress), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// sink buffers output and optionally gzips it.
type sink struct {
	bw *bufio.Writer
	gz *pgzip.Writer
}

func newSink(w io.Writer, compress bool) sink {
	var s sink
	if compress {
		s.gz = pgzip.NewWriter(w)
		w = s.gz
	}
	s.bw = bufio.NewWriter(w)
	return s
}

// Close flushes buffered output and finishes the gzip stream. The
// underlying writer is left open.
func (s sink) Close() error {
	if err := s.bw.Flush(); err != nil {
		return err
	}
	if s.gz != nil {
		return s.gz.Close()
	}
	return nil
}

// FastaWriter writes records as FASTA, dropping qualities.
type FastaWriter struct {
	sink
	w *fasta.Writer
}

// NewFastaWriter wraps w. width is the sequence line width.
func NewFastaWriter(w io.Writer, width int, compress bool) *FastaWriter {
	fw := &FastaWriter{sink: newSink(w, compress)}
	fw.w = fasta.NewWriter(fw.bw, width)
	return fw
}

// Write emits one record.
func (fw *FastaWriter) Write(read *FastqRead) error {
	s := linear.NewSeq(read.ID, alphabet.BytesToLetters([]byte(read.Sequence)), alphabet.DNAredundant)
	s.Desc = read.Desc
	_, err := fw.w.Write(s)
	return err
}

// FastqWriter writes four-line FASTQ records.
type FastqWriter struct {
	sink
}

// NewFastqWriter wraps w.
func NewFastqWriter(w io.Writer, compress bool) *FastqWriter {
	return &FastqWriter{sink: newSink(w, compress)}
}

// Write emits one record.
func (fw *FastqWriter) Write(read *FastqRead) error {
	if len(read.Sequence) != len(read.Quality) {
		return fmt.Errorf("sequence and quality strings must have the same length, got: %d and %d", len(read.Sequence), len(read.Quality))
	}
	fw.bw.WriteString("@" + read.ID)
	if read.Desc != "" {
		fw.bw.WriteString(" " + read.Desc)
	}
	fw.bw.WriteString("\n")
	fw.bw.WriteString(read.Sequence + "\n")
	fw.bw.WriteString("+\n")
	_, err := fw.bw.WriteString(read.Quality + "\n")
	return err
}
