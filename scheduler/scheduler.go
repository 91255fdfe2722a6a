package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Khan-Yazdani04/devconnect-lite/logging"
)

const sweepTimeout = 5 * time.Minute

type Sweeper interface {
	SweepOrphanBids(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	spec    string
}

// New schedules sweeper on spec. An empty spec disables the schedule.
func New(spec string, sweeper Sweeper) *Scheduler {
	cronLogger := cron.PrintfLogger(logging.Logger)
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger), cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		sweeper: sweeper,
		spec:    spec,
	}
}

func (s *Scheduler) Start() error {
	if s.spec == "" {
		logging.Logger.Info("Event ID: SWEEP_SCHEDULE_DISABLED, Description: No sweep schedule configured")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, s.runSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	logging.Logger.Infof("Event ID: SWEEP_SCHEDULED, Description: Orphan bid sweep scheduled with %q", s.spec)
	return nil
}

func (s *Scheduler) runSweep() {
	logging.Logger.Debug("Event ID: SWEEP_TRIGGERED, Description: Scheduled orphan bid sweep triggered")
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.sweeper.SweepOrphanBids(ctx); err != nil {
		logging.Logger.Errorf("Event ID: SWEEP_FAILED, Description: Scheduled orphan bid sweep failed: %v", err)
	}
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
