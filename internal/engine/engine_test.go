package engine

import (
	"math/rand"
	"testing"

	"github.com/snp-tools/examgen/internal/bank"
)

func genPtr(v int64) *int64 { return &v }

func TestNextGeneration(t *testing.T) {
	cases := []struct {
		name    string
		records []bank.Record
		want    int64
	}{
		{"empty bank", nil, 1},
		{"no prior generations", []bank.Record{{Text: "a"}, {Text: "b"}}, 1},
		{"max plus one", []bank.Record{
			{Text: "a", Generation: genPtr(3)},
			{Text: "b", Generation: genPtr(7)},
			{Text: "c"},
		}, 8},
	}
	for _, c := range cases {
		if got := NextGeneration(c.records); got != c.want {
			t.Errorf("%s: NextGeneration = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSampleClampsToBankSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := Sample(rng, 10, 40)
	if len(got) != 10 {
		t.Fatalf("effective sample size = %d, want 10", len(got))
	}
	seen := map[int]bool{}
	for _, i := range got {
		if i < 0 || i >= 10 {
			t.Fatalf("index %d out of range", i)
		}
		if seen[i] {
			t.Fatalf("index %d sampled twice", i)
		}
		seen[i] = true
	}
}

func TestSampleExactAndZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := Sample(rng, 100, 5); len(got) != 5 {
		t.Errorf("want 5 indices, got %d", len(got))
	}
	if got := Sample(rng, 100, 0); got != nil {
		t.Errorf("n=0 must yield an empty run, got %v", got)
	}
	if got := Sample(rng, 0, 10); got != nil {
		t.Errorf("empty bank must yield an empty run, got %v", got)
	}
}

func TestCommitMutatesOnlySampled(t *testing.T) {
	records := []bank.Record{
		{Text: "a", Occurrence: 2, Generation: genPtr(1)},
		{Text: "b"},
		{Text: "c", Occurrence: 5},
	}
	Commit(records, []int{0, 2}, 4)

	if records[0].Occurrence != 3 || *records[0].Generation != 4 {
		t.Errorf("sampled record 0 = %+v", records[0])
	}
	if records[2].Occurrence != 6 || *records[2].Generation != 4 {
		t.Errorf("sampled record 2 = %+v", records[2])
	}
	if records[1].Occurrence != 0 || records[1].Generation != nil {
		t.Errorf("non-sampled record mutated: %+v", records[1])
	}
}

func TestCommitGenerationsDoNotAlias(t *testing.T) {
	records := []bank.Record{{Text: "a"}, {Text: "b"}}
	Commit(records, []int{0, 1}, 9)
	*records[0].Generation = 100
	if *records[1].Generation != 9 {
		t.Error("records must not share one generation pointer")
	}
}

func TestRepeatedRunsStrictlyIncrease(t *testing.T) {
	records := []bank.Record{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	rng := rand.New(rand.NewSource(42))
	var last int64
	for run := 0; run < 5; run++ {
		next := NextGeneration(records)
		if next <= last {
			t.Fatalf("run %d: generation %d not greater than %d", run, next, last)
		}
		Commit(records, Sample(rng, len(records), 2), next)
		last = next
	}
}
