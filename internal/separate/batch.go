package separate

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// RunAll runs every source as its own background pass on a worker pool.
//
// Each pass is still single-threaded. Results keep the order of srcs and every
// failure is joined into the returned error. Sources sharing a base name and
// output directory race on the same files.
func RunAll(srcs []string, opts Options, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(srcs) {
		workers = len(srcs)
	}
	if workers == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	if opts.Confirm != nil {
		opts.Confirm = serialize(opts.Confirm)
	}
	if opts.Notifier != nil {
		opts.Notifier = &lockedNotifier{next: opts.Notifier}
	}

	var (
		wg      sync.WaitGroup
		results = make([]Result, len(srcs))
		errs    = make([]error, len(srcs))
	)
	for i, src := range srcs {
		i, src := i, src
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = Run(src, opts)
			if errs[i] != nil {
				errs[i] = fmt.Errorf("%s: %w", src, errs[i])
			}
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Source: src}
			errs[i] = fmt.Errorf("%s: %w", src, err)
		}
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

// serialize keeps concurrent passes from prompting at the same time.
func serialize(confirm Confirmer) Confirmer {
	var mu sync.Mutex
	return func(existing []string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		return confirm(existing)
	}
}

type lockedNotifier struct {
	mu   sync.Mutex
	next Notifier
}

func (n *lockedNotifier) Written(r Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next.Written(r)
}
