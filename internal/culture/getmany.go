package culture

import (
	"context"
	"sync"
)

// BatchResult partitions a warm-up run. Cuisines served from a stale pool
// after a failed refresh appear in both Succeeded and Errors; Failed lists
// cuisines with no usable pool at all. GetMany never fails as a whole.
type BatchResult struct {
	Succeeded map[string]Pool
	Failed    []string
	Errors    map[string]error
}

// GetMany warms the cache for several cuisines. The list is partitioned
// into fixed-size batches; each batch is fetched with full internal
// concurrency, and a fixed delay separates batches to respect the upstream
// rate limit.
func (s *Store) GetMany(ctx context.Context, cuisines []string) BatchResult {
	result := BatchResult{
		Succeeded: make(map[string]Pool),
		Errors:    make(map[string]error),
	}

	var mu sync.Mutex
	for start := 0; start < len(cuisines); start += s.batchSz {
		end := start + s.batchSz
		if end > len(cuisines) {
			end = len(cuisines)
		}

		var wg sync.WaitGroup
		for _, cuisine := range cuisines[start:end] {
			wg.Add(1)
			go func(cuisine string) {
				defer wg.Done()
				pool, err := s.Get(ctx, cuisine, false)

				mu.Lock()
				defer mu.Unlock()
				if pool != nil {
					result.Succeeded[cuisine] = *pool
				}
				if err != nil {
					result.Errors[cuisine] = err
					if pool == nil {
						result.Failed = append(result.Failed, cuisine)
					}
				}
			}(cuisine)
		}
		wg.Wait()

		if end < len(cuisines) {
			if err := s.sleep(ctx, s.batchGap); err != nil {
				// Caller abandoned the warm-up; report the rest as failed.
				for _, cuisine := range cuisines[end:] {
					result.Failed = append(result.Failed, cuisine)
					result.Errors[cuisine] = err
				}
				return result
			}
		}
	}
	return result
}
