// Package scheduler refreshes the job corpus on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/robfig/cron/v3"
)

type Refresher interface {
	Refresh(ctx context.Context, query string) (usecase.RefreshResult, error)
}

// RefreshScheduler wraps robfig/cron and runs one corpus refresh per tick.
type RefreshScheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	query     string
}

func New(refresher Refresher, spec, query string) *RefreshScheduler {
	return &RefreshScheduler{
		// overlapping ticks are skipped while a refresh is still running
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		refresher: refresher,
		spec:      spec,
		query:     query,
	}
}

// Start registers the refresh job and starts the scheduler. It also runs one
// refresh immediately when runNow is set.
func (s *RefreshScheduler) Start(ctx context.Context, runNow bool) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	if runNow {
		go s.run(ctx)
	}
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *RefreshScheduler) run(ctx context.Context) {
	res, err := s.refresher.Refresh(ctx, s.query)
	if err != nil {
		log.Printf("[scheduler] Refresh failed, keeping current corpus: %v", err)
		return
	}
	log.Printf("[scheduler] Refresh complete: %d listings (batch %s)", res.Count, res.BatchID)
}
