package conversion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const checkTimeout = 5 * time.Second

// Monitor periodically probes the rate store: a connectivity ping plus a
// read of the canonical-base record, since without it every cross
// resolution fails.
type Monitor struct {
	pinger        adapters.StorePinger
	store         adapters.RateStore
	canonicalBase string
	interval      time.Duration
	// -----
	sched gocron.Scheduler
}

func (m *Monitor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	m.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if checkErr := CheckStore(jobCtx, execID, m.pinger, m.store, m.canonicalBase); checkErr != nil {
			logrus.Errorf("Store health check %s failed: %v", execID, checkErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := m.Shutdown(); sdErr != nil {
			logrus.Errorf("Monitor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (m *Monitor) Shutdown() error {
	if m.sched == nil {
		return nil
	}
	err := m.sched.Shutdown()
	m.sched = nil
	return err
}

// CheckStore runs one health probe. A missing canonical-base record is not a
// failure, only degraded triangulation, so it is logged and tolerated.
func CheckStore(ctx context.Context, execID string, pinger adapters.StorePinger, store adapters.RateStore, canonicalBase string) error {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := pinger.Ping(checkCtx); err != nil {
		return fmt.Errorf("store ping failed: %w", err)
	}

	if _, err := store.GetByBase(checkCtx, canonicalBase); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logrus.Warnf("No record for canonical base %s, cross resolution currently impossible; execID: %s", canonicalBase, execID)
			return nil
		}
		return fmt.Errorf("canonical base record read failed: %w", err)
	}

	logrus.Infof("Store health check passed; execID: %s", execID)
	return nil
}

func NewMonitor(pinger adapters.StorePinger, store adapters.RateStore, canonicalBase string, interval time.Duration) *Monitor {
	return &Monitor{pinger: pinger, store: store, canonicalBase: canonicalBase, interval: interval}
}
