// Package engine drives one generation run: sample a subset of the bank,
// assign the next generation number, bump occurrence counters, and emit the
// rendered document.
package engine

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/snp-tools/examgen/internal/bank"
)

// NextGeneration computes the number the next run will assign:
// 1 + the maximum generation across the whole bank, ignoring records that
// have never been sampled. An untouched bank starts at 1. Always taken from
// the pre-mutation snapshot so repeated runs strictly increase.
func NextGeneration(records []bank.Record) int64 {
	var max int64
	for _, r := range records {
		if r.Generation != nil && *r.Generation > max {
			max = *r.Generation
		}
	}
	return max + 1
}

// Sample picks n distinct indices into the bank, uniformly without
// replacement. n is clamped to the bank size rather than erroring; n = 0 is
// a legal empty run. No weighting by occurrence or difficulty.
func Sample(rng *rand.Rand, total, n int) []int {
	if n > total {
		n = total
	}
	if n <= 0 {
		return nil
	}
	return rng.Perm(total)[:n]
}

// Commit applies the run's mutations to the full record set: each sampled
// index gets occurrence+1 and the run's generation number. Everything else
// is untouched. Sampled rows are addressed by index, never by pointer
// identity into some other slice.
func Commit(records []bank.Record, sampled []int, generation int64) {
	for _, i := range sampled {
		records[i].Occurrence++
		g := generation
		records[i].Generation = &g
	}
}

// Preflight checks, before any run, that the configured store location
// exists (file-backed drivers) and that the output directory can be created.
// It returns the failure instead of exiting, so callers decide how to react.
func Preflight(driver, storePath, outputDir string) error {
	switch driver {
	case "csv", "sqlite":
		if _, err := os.Stat(storePath); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", bank.ErrStoreNotFound, storePath)
			}
			return err
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("output dir %s: %w", outputDir, err)
	}
	return nil
}
