package trim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adaptor = "GATCGATCGATC"

func TestAdaptor(t *testing.T) {
	tests := []struct {
		name    string
		seq     Seq
		adaptor string
		opts    Options
		want    Seq
	}{
		{"Exact", "GGG" + adaptor + "CCC", adaptor, Options{NumErrors: 2}, "GGG"},
		{"OneMismatch", "GGG" + "GATCGTTCGATC" + "CCC", adaptor, Options{NumErrors: 2}, "GGG"},
		{"TwoMismatches", "GGG" + "GATCGTTCGAAC" + "CCC", adaptor, Options{NumErrors: 2}, "GGG"},
		{"Deletion", "GGG" + "GATCGATCGTC" + "CCC", adaptor, Options{NumErrors: 2}, "GGG"},
		{"TwoDeletions", "GGG" + "GACGATCGTC" + "CCC", adaptor, Options{NumErrors: 2}, "GGG"},
		{"ThreeMismatches", "GGG" + "GAACGTTGGATC" + "CCC", adaptor, Options{NumErrors: 2}, "GGGGAACGTTGGATCCCC"},
		{"VeryBad", "GGG" + "CATCGGACGTAT" + "CCC", adaptor, Options{NumErrors: 2}, "GGGCATCGGACGTATCCC"},
		{"LeftSide", "GGG" + "GATCGTTCGATC" + "CCC", adaptor, Options{NumErrors: 2, Side: Left}, "CCC"},
		{"RepetitiveRight", "GGG" + "GATCGATCGATC" + "CCC", "GATCGATC", Options{NumErrors: 2}, "GGG"},
		{"RepetitiveLeft", "GGG" + "GATCGATCGATC" + "CCC", "GATCGATC", Options{NumErrors: 2, Side: Left}, "CCC"},
		{"NoAlignment", "TTTTTTTTTTTTTTTTT", "AAAAAAAAAAAAAA", Options{NumErrors: 2}, "TTTTTTTTTTTTTTTTT"},
		{"NoAlignmentLeft", "TTTTTTTTTTTTTTTTT", "AAAAAAAAAAAAAA", Options{NumErrors: 2, Side: Left}, "TTTTTTTTTTTTTTTTT"},
		{"ErrorsEqualTolerance", "GGG" + "GATCGTTCGATC" + "CCC", adaptor, Options{NumErrors: 1}, "GGG"},
		{"ErrorsAboveTolerance", "GGG" + "GATCGTTCGATC" + "CCC", adaptor, Options{NumErrors: 0}, "GGGGATCGTTCGATCCCC"},
		{"AdaptorAtStart", adaptor + "CCC", adaptor, Options{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Adaptor(tc.seq, tc.adaptor, tc.opts))
		})
	}
}

func TestAdaptorExactPrefix(t *testing.T) {
	reads := []string{"AAGATCGATCGATCTT", "GATCGATCGATC", "CGATCGATCGATCGATCGATC", "TTTTGATCGATCGATC"}
	for _, r := range reads {
		for e := 0; e < 4; e++ {
			got := Adaptor(Seq(r), adaptor, Options{NumErrors: e})
			assert.Equal(t, Seq(r[:Seq(r).Index(adaptor)]), got, "read %s errors %d", r, e)
		}
	}
}

func TestAdaptorRecord(t *testing.T) {
	rec := Record{ID: "test_id", Desc: "test_d", Seq: "GGG" + "GATCGTTCGATC" + "CCC"}

	got := Adaptor(rec, adaptor, Options{NumErrors: 2})
	assert.Equal(t, Record{ID: "test_id", Desc: "test_d", Seq: "GGG"}, got)

	got = Adaptor(rec, adaptor, Options{NumErrors: 2, Side: Left})
	assert.Equal(t, Record{ID: "test_id", Desc: "test_d", Seq: "CCC"}, got)

	// input untouched
	assert.Equal(t, Seq("GGGGATCGTTCGATCCCC"), rec.Seq)
}

func TestLocate(t *testing.T) {
	m := Locate("GGG"+adaptor+"CCC", adaptor)
	assert.True(t, m.Exact)
	assert.Equal(t, 0, m.Errors)
	assert.Equal(t, adaptor, m.Literal())

	m = Locate("GGG"+"GATCGATCGTC"+"CCC", adaptor)
	assert.False(t, m.Exact)
	assert.Equal(t, 1, m.Errors)
	assert.Equal(t, "GATCGATCG-TC", m.Read)
	assert.Equal(t, "GATCGATCGTC", m.Literal())

	m = Locate("TTTTTTTTTTTTTTTTT", "AAAAAAAAAAAAAA")
	assert.Equal(t, Match{Errors: 14}, m)
}

func TestAdaptorWithQuality(t *testing.T) {
	seq := Seq("GGG" + "GATCGTTCGATC" + "CCC")
	qual := "YDV`a`a^[Xa`a`^`_O"

	tseq, tqual, err := AdaptorWithQuality(seq, qual, adaptor, Options{NumErrors: 2})
	require.NoError(t, err)
	assert.Equal(t, Seq("GGG"), tseq)
	assert.Equal(t, "YDV", tqual)

	tseq, tqual, err = AdaptorWithQuality(seq, qual, adaptor, Options{NumErrors: 2, Side: Left})
	require.NoError(t, err)
	assert.Equal(t, Seq("CCC"), tseq)
	assert.Equal(t, "`_O", tqual)

	tseq, tqual, err = AdaptorWithQuality(seq, qual, adaptor, Options{})
	require.NoError(t, err)
	assert.Equal(t, seq, tseq)
	assert.Equal(t, qual, tqual)
}

func TestAdaptorWithQualityLengths(t *testing.T) {
	reads := []Seq{"GGGGATCGATCGATCCCC", "TTTTTTTTTTTTTTTTT", "GATCGATCGATCAAA", "GGGGACGATCGTCCCC"}
	for _, r := range reads {
		for _, side := range []Side{Right, Left} {
			qual := make([]byte, r.Len())
			for i := range qual {
				qual[i] = byte('!' + i)
			}
			tseq, tqual, err := AdaptorWithQuality(r, string(qual), adaptor, Options{NumErrors: 2, Side: side})
			require.NoError(t, err)
			assert.Equal(t, tseq.Len(), len(tqual), "read %s side %s", r, side)
			assert.Equal(t, Adaptor(r, adaptor, Options{NumErrors: 2, Side: side}), tseq)
		}
	}
}

func TestAdaptorWithQualityLengthMismatch(t *testing.T) {
	_, _, err := AdaptorWithQuality(Seq("ACGT"), "III", adaptor, Options{})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "right", Options{}.Side.String())
	assert.Equal(t, "left", Left.String())
}
