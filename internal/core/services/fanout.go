package services

import "golang.org/x/sync/errgroup"

// gatherAll runs fn for every item concurrently and joins all branches.
// A branch reports its own failure inside R and always returns nil to the
// group, so no branch can cancel or delay a sibling. Each branch writes only
// its own slot, so results come back in input order without further
// synchronisation.
func gatherAll[T, R any](items []T, fn func(T) R) []R {
	results := make([]R, len(items))

	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			results[i] = fn(item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// gatherOrFail runs fn for every item concurrently and joins all branches.
// If any branch fails the whole call fails with the first error observed
// and no partial results are returned. Branches are not cancelled; the
// join still waits for every one of them.
func gatherOrFail[T, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
