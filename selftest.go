package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"adaptorTrim/internal/trim"
)

type scenario struct {
	name     string
	seq      string
	qual     string
	adaptor  string
	opts     trim.Options
	wantSeq  string
	wantQual string
}

const testAdaptor = "GATCGATCGATC"

var scenarios = []scenario{
	{name: "exact match", seq: "GGG" + testAdaptor + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGG"},
	{name: "1 error", seq: "GGG" + "GATCGTTCGATC" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGG"},
	{name: "2 errors", seq: "GGG" + "GATCGTTCGAAC" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGG"},
	{name: "deletion", seq: "GGG" + "GATCGATCGTC" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGG"},
	{name: "two deletions", seq: "GGG" + "GACGATCGTC" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGG"},
	{name: "3 errors", seq: "GGG" + "GAACGTTGGATC" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGGGAACGTTGGATCCCC"},
	{name: "very bad", seq: "GGG" + "CATCGGACGTAT" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGGCATCGGACGTATCCC"},
	{name: "left side", seq: "GGG" + "GATCGTTCGATC" + "CCC", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2, Side: trim.Left}, wantSeq: "CCC"},
	{name: "repetitive right", seq: "GGG" + "GATCGATCGATC" + "CCC", adaptor: "GATCGATC", opts: trim.Options{NumErrors: 2}, wantSeq: "GGG"},
	{name: "repetitive left", seq: "GGG" + "GATCGATCGATC" + "CCC", adaptor: "GATCGATC", opts: trim.Options{NumErrors: 2, Side: trim.Left}, wantSeq: "CCC"},
	{name: "no alignment", seq: "TTTTTTTTTTTTTTTTT", adaptor: "AAAAAAAAAAAAAA", opts: trim.Options{NumErrors: 2}, wantSeq: "TTTTTTTTTTTTTTTTT"},
	{name: "quality right", seq: "GGG" + "GATCGTTCGATC" + "CCC", qual: "YDV`a`a^[Xa`a`^`_O", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2}, wantSeq: "GGG", wantQual: "YDV"},
	{name: "quality left", seq: "GGG" + "GATCGTTCGATC" + "CCC", qual: "YDV`a`a^[Xa`a`^`_O", adaptor: testAdaptor, opts: trim.Options{NumErrors: 2, Side: trim.Left}, wantSeq: "CCC", wantQual: "`_O"},
}

func (s scenario) run() error {
	if s.qual == "" {
		if got := trim.Adaptor(trim.Seq(s.seq), s.adaptor, s.opts); string(got) != s.wantSeq {
			return fmt.Errorf("got %q, want %q", got, s.wantSeq)
		}
		return nil
	}

	gotSeq, gotQual, err := trim.AdaptorWithQuality(trim.Seq(s.seq), s.qual, s.adaptor, s.opts)
	if err != nil {
		return err
	}
	if string(gotSeq) != s.wantSeq || gotQual != s.wantQual {
		return fmt.Errorf("got (%q, %q), want (%q, %q)", gotSeq, gotQual, s.wantSeq, s.wantQual)
	}
	return nil
}

// runSelfTest checks the built-in trimming scenarios and reports each one
// to w.
func runSelfTest(w io.Writer) error {
	pass := color.New(color.FgHiGreen)
	fail := color.New(color.FgHiRed)

	failed := 0
	for _, s := range scenarios {
		if err := s.run(); err != nil {
			failed++
			fail.Fprintf(w, "FAIL %s: %v\n", s.name, err)
			continue
		}
		pass.Fprintf(w, "PASS %s\n", s.name)
	}

	fmt.Fprintf(w, "\n%d/%d scenarios passed\n", len(scenarios)-failed, len(scenarios))
	if failed > 0 {
		return fmt.Errorf("%d self-test scenarios failed", failed)
	}
	return nil
}
