package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"adaptorTrim/internal/config"
	"adaptorTrim/internal/seqio"
	"adaptorTrim/internal/trim"
)

// Stats summarises a ProcessReads run.
type Stats struct {
	Total      int64
	Written    int64
	Untouched  int64 // adaptor absent or too many errors
	Emptied    int64 // nothing left after trimming
	LowQuality int64
}

type counters struct {
	total, written, untouched, emptied, lowQuality atomic.Int64
}

func (c *counters) stats() Stats {
	return Stats{
		Total:      c.total.Load(),
		Written:    c.written.Load(),
		Untouched:  c.untouched.Load(),
		Emptied:    c.emptied.Load(),
		LowQuality: c.lowQuality.Load(),
	}
}

func phred33ToError(qual byte) float64 {
	return math.Pow(10, -(float64(qual)-33)/10.0)
}

func meanError(quality []byte) float64 {
	total := 0.0
	for _, q := range quality {
		total += phred33ToError(q)
	}
	return total / float64(len(quality))
}

// trimmer holds the per-run trimming settings shared by all workers.
type trimmer struct {
	adaptor  string
	opts     trim.Options
	maxError float64 // 0 disables the quality filter
}

type batch struct {
	idx   int
	reads []*seqio.FastqRead
}

// trimRead trims one record. ok is false when the record should be
// dropped: nothing was trimmed, nothing is left, or the remaining bases
// are too error prone.
func (tr trimmer) trimRead(read *seqio.FastqRead, c *counters) (*seqio.FastqRead, bool, error) {
	rec := trim.Record{ID: read.ID, Desc: read.Desc, Seq: trim.Seq(read.Sequence)}
	trimmed, qual, err := trim.AdaptorWithQuality(rec, read.Quality, tr.adaptor, tr.opts)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", read.ID, err)
	}

	switch {
	case trimmed.Len() == rec.Len():
		c.untouched.Add(1)
		return nil, false, nil
	case trimmed.Len() == 0:
		c.emptied.Add(1)
		return nil, false, nil
	case tr.maxError > 0 && meanError([]byte(qual)) >= tr.maxError:
		c.lowQuality.Add(1)
		return nil, false, nil
	}
	return &seqio.FastqRead{
		ID:       trimmed.ID,
		Desc:     trimmed.Desc,
		Sequence: trimmed.String(),
		Quality:  qual,
	}, true, nil
}

func (tr trimmer) processBatch(b batch, c *counters) (batch, error) {
	out := batch{idx: b.idx, reads: make([]*seqio.FastqRead, 0, len(b.reads))}
	for _, read := range b.reads {
		trimmed, ok, err := tr.trimRead(read, c)
		if err != nil {
			return out, err
		}
		if ok {
			out.reads = append(out.reads, trimmed)
		}
	}
	return out, nil
}

// writeResults writes batches in input order, holding back any that
// arrive early, and calls release once per batch it retires. It keeps
// draining after a write error so workers never block.
func writeResults(w seqio.Writer, results <-chan batch, c *counters, release func()) error {
	var werr error
	next := 0
	pending := make(map[int]batch)
	for b := range results {
		pending[b.idx] = b
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if werr == nil {
				for _, read := range ready.reads {
					if err := w.Write(read); err != nil {
						werr = err
						break
					}
					c.written.Add(1)
				}
			}
			release()
		}
	}
	return werr
}

// ProcessReads trims every record of cfg.InputFile and writes those that
// got shorter but not empty to cfg.OutputFile. cfg is expected to come
// from config.New.
func ProcessReads(ctx context.Context, cfg config.Config) (Stats, error) {
	var c counters

	inFile, err := os.Open(cfg.InputFile)
	if err != nil {
		return c.stats(), err
	}
	defer inFile.Close()

	reader, err := seqio.NewReader(inFile)
	if err != nil {
		return c.stats(), fmt.Errorf("%s: %w", cfg.InputFile, err)
	}
	defer reader.Close()

	outFile, err := os.Create(cfg.OutputFile)
	if err != nil {
		return c.stats(), err
	}
	defer outFile.Close()

	writer, err := seqio.NewWriter(outFile, cfg.Format, cfg.Width, strings.HasSuffix(cfg.OutputFile, ".gz"))
	if err != nil {
		return c.stats(), err
	}

	tr := trimmer{
		adaptor:  cfg.Adaptor,
		opts:     trim.Options{NumErrors: cfg.NumErrors},
		maxError: cfg.MaxError,
	}
	if cfg.Left {
		tr.opts.Side = trim.Left
	}

	// window caps batches that are queued, running or waiting to be
	// written, so a slow early batch cannot pile up later ones.
	window := make(chan struct{}, 2*cfg.Threads)
	results := make(chan batch, cfg.Threads)
	writeDone := make(chan error, 1)
	go func() {
		writeDone <- writeResults(writer, results, &c, func() { <-window })
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	readErr := readBatches(gctx, reader, cfg.BatchSize, &c, window, func(b batch) {
		g.Go(func() error {
			out, err := tr.processBatch(b, &c)
			if err != nil {
				return err
			}
			select {
			case results <- out:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	err = g.Wait()
	close(results)
	werr := <-writeDone

	switch {
	case readErr != nil:
		return c.stats(), fmt.Errorf("%s: %w", cfg.InputFile, readErr)
	case err != nil:
		return c.stats(), err
	case werr != nil:
		return c.stats(), fmt.Errorf("%s: %w", cfg.OutputFile, werr)
	}
	if err := writer.Close(); err != nil {
		return c.stats(), fmt.Errorf("%s: %w", cfg.OutputFile, err)
	}
	return c.stats(), nil
}

// readBatches groups records into batches of size and hands each to
// submit once it holds a slot in window. It stops early if ctx is
// cancelled.
func readBatches(ctx context.Context, r *seqio.Reader, size int, c *counters, window chan struct{}, submit func(batch)) error {
	idx := 0
	reads := make([]*seqio.FastqRead, 0, size)
	flush := func() bool {
		select {
		case window <- struct{}{}:
		case <-ctx.Done():
			return false
		}
		submit(batch{idx: idx, reads: reads})
		idx++
		reads = make([]*seqio.FastqRead, 0, size)
		return true
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		read, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		c.total.Add(1)

		reads = append(reads, read)
		if len(reads) == size && !flush() {
			return nil
		}
	}
	if len(reads) > 0 {
		flush()
	}
	return nil
}

func Comma(value int64) string {
	str := strconv.FormatInt(value, 10)
	result := ""
	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(str[i]) + result
		count++
	}
	return result
}

func printSummary(w io.Writer, s Stats, duration time.Duration) {
	pct := 0.0
	if s.Total > 0 {
		pct = float64(s.Written) / float64(s.Total) * 100
	}

	fmt.Fprintf(w, "\nTotal reads: %s\n", Comma(s.Total))
	fmt.Fprintf(w, "Trimmed reads: %s\n", Comma(s.Written))
	color.New(color.FgHiGreen).Fprintf(w, "Percentage of trimmed reads: %.2f%%\n", pct)
	color.New(color.FgHiMagenta).Fprintf(w, "\nAdapter missing count: %s\n", Comma(s.Untouched))
	color.New(color.FgHiMagenta).Fprintf(w, "Trimmed to empty count: %s\n", Comma(s.Emptied))
	color.New(color.FgHiMagenta).Fprintf(w, "Low quality count: %s\n", Comma(s.LowQuality))
	fmt.Fprintf(w, "\nApplication execution time: %s\n", duration)
}
