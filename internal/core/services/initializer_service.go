package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Fetcher is a store that can reload itself from the remote service
type Fetcher interface {
	Name() string
	FetchAll(ctx context.Context) error
	Len() int
}

// StoreResult is the outcome of one store fetch
type StoreResult struct {
	Store    string        `json:"store"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Report summarizes one initialization run
type Report struct {
	Generation uint64        `json:"generation"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Stores     []StoreResult `json:"stores"`
}

// Failed returns the names of the stores whose fetch failed
func (r Report) Failed() []string {
	var out []string
	for _, s := range r.Stores {
		if s.Error != "" {
			out = append(out, s.Store)
		}
	}
	return out
}

// StoreInitializer loads every store concurrently each time a user signs in
type StoreInitializer struct {
	stores  []Fetcher
	timeout time.Duration

	transitions atomic.Uint64
	pending     sync.WaitGroup

	mu      sync.Mutex
	lastGen uint64
	last    *Report
	runs    int
}

// NewStoreInitializer creates an initializer over stores. timeout bounds a
// whole run; zero means one minute.
func NewStoreInitializer(timeout time.Duration, stores ...Fetcher) *StoreInitializer {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &StoreInitializer{stores: stores, timeout: timeout}
}

// Attach subscribes the initializer to session transitions
func (i *StoreInitializer) Attach(sessions *SessionManager) {
	sessions.Subscribe(i.onTransition)
}

func (i *StoreInitializer) onTransition(state domain.AuthState, _ *domain.User) {
	if state != domain.Authenticated {
		return
	}
	gen := i.transitions.Add(1)
	i.pending.Add(1)
	go func() {
		defer i.pending.Done()
		i.runGeneration(gen)
	}()
}

// runGeneration loads the stores once for transition gen
func (i *StoreInitializer) runGeneration(gen uint64) {
	i.mu.Lock()
	if gen <= i.lastGen {
		i.mu.Unlock()
		return
	}
	i.lastGen = gen
	i.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()

	report := i.Refresh(ctx)
	report.Generation = gen
	i.mu.Lock()
	i.last = &report
	i.mu.Unlock()
}

// Wait blocks until every run triggered by a transition has finished
func (i *StoreInitializer) Wait() {
	i.pending.Wait()
}

// Refresh fetches every store in parallel and waits for all of them. A
// failing store never stops the others.
func (i *StoreInitializer) Refresh(ctx context.Context) Report {
	report := Report{
		StartedAt: time.Now(),
		Stores:    make([]StoreResult, len(i.stores)),
	}

	var wg sync.WaitGroup
	for idx, store := range i.stores {
		wg.Add(1)
		go func(idx int, store Fetcher) {
			defer wg.Done()
			started := time.Now()
			res := StoreResult{Store: store.Name()}
			if err := store.FetchAll(ctx); err != nil {
				res.Error = err.Error()
			}
			res.Records = store.Len()
			res.Duration = time.Since(started)
			report.Stores[idx] = res
		}(idx, store)
	}
	wg.Wait()
	report.Duration = time.Since(report.StartedAt)

	i.mu.Lock()
	i.runs++
	i.mu.Unlock()

	if failed := report.Failed(); len(failed) > 0 {
		log.Printf("⚠️ Store sync finished with %d failure(s): %v", len(failed), failed)
	} else {
		log.Printf("✅ Store sync finished: %d stores in %s", len(report.Stores), report.Duration.Round(time.Millisecond))
	}
	return report
}

// LastReport returns the report of the latest sign-in run, if any
func (i *StoreInitializer) LastReport() (Report, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.last == nil {
		return Report{}, false
	}
	return *i.last, true
}

// Runs returns how many fan-outs have completed
func (i *StoreInitializer) Runs() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.runs
}
