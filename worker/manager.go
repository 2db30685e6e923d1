package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Manager runs the background workers of the serve command and waits for
// them after the context is cancelled.
type Manager struct {
	workers []Worker
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

// Start blocks until ctx is done and every worker returned. Errors from
// workers that exit early are logged and joined into the result.
func (m *Manager) Start(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, w := range m.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Start(ctx); err != nil {
				slog.Error("worker: exited", "worker", workerName(w), "err", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(w)
	}
	<-ctx.Done()
	wg.Wait()
	return errors.Join(errs...)
}

func workerName(w Worker) string {
	switch w.(type) {
	case *DigestBuilder:
		return "digest"
	case *SitemapRefresher:
		return "sitemap"
	default:
		return fmt.Sprintf("%T", w)
	}
}
