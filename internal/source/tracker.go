package source

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Tracker counts asset loads so a loading screen can show progress and know
// when everything is in
type Tracker struct {
	mu       sync.Mutex
	total    int
	done     int
	failed   int
	finished chan struct{}
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{finished: make(chan struct{})}
}

// Add announces n more loads. Announcing none on an idle tracker marks it
// done.
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total += n
	t.settle()
}

// Finish records one completed load. A failed load still counts toward
// progress.
func (t *Tracker) Finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	if err != nil {
		t.failed++
	}
	t.settle()
}

// settle closes finished once every announced load is in. Callers hold mu.
func (t *Tracker) settle() {
	if t.done < t.total {
		return
	}
	select {
	case <-t.finished:
	default:
		close(t.finished)
	}
}

// Progress returns completion in percent, 0 to 100
func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total == 0 {
		return 100
	}
	return 100 * float64(t.done) / float64(t.total)
}

// Active reports whether loads are still in flight
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done < t.total
}

// Failed returns the number of loads that returned an error
func (t *Tracker) Failed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Done is closed once every announced load has finished
func (t *Tracker) Done() <-chan struct{} {
	return t.finished
}

// LoadAll loads every distinct path with at most workers loads in flight.
// The first error cancels the remaining loads and is returned.
func LoadAll(ctx context.Context, loader Loader, paths []string, tracker *Tracker, workers int) (map[string]*Model, error) {
	seen := make(map[string]bool)
	var unique []string
	for _, p := range paths {
		if p != "" && !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	if tracker != nil {
		tracker.Add(len(unique))
	}

	var mu sync.Mutex
	models := make(map[string]*Model, len(unique))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, p := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				if tracker != nil {
					tracker.Finish(err)
				}
				return err
			}
			m, err := loader.Load(p)
			if tracker != nil {
				tracker.Finish(err)
			}
			if err != nil {
				return err
			}
			mu.Lock()
			models[p] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models, err
	}
	return models, nil
}
