// Package workerpool is the shared fixed-size, index-preserving fan-out/
// fan-in helper used by the image pool (C6), the video pool (C7), and the
// processor loop's probing stage (SPEC_FULL.md §4.6), grounded on the
// teacher's channel fan-out worker pool in
// internal/modules/scannermodule/scanner/parallel_scanner.go, generalized
// with generics since every caller here needs identical index-preserving
// semantics and differs only in the per-item work function.
package workerpool

import "sync"

// Run dispatches work(items[i]) across a fixed pool of workers workers wide
// and returns a slice where index i holds the result of items[i] — ordering
// is preserved across the batch even though execution is unordered (spec
// §4.5, §5 "within a single Phase-B page, result index ≡ input index").
func Run[T any, R any](workers int, items []T, work func(T) R) []R {
	if workers < 1 {
		workers = 1
	}
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	type indexed struct {
		index int
		item  T
	}

	jobs := make(chan indexed)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = work(j.item)
			}
		}()
	}

	for i, item := range items {
		jobs <- indexed{index: i, item: item}
	}
	close(jobs)
	wg.Wait()

	return results
}
