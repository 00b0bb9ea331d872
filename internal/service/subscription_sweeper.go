package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ExpireSweeper is implemented by the subscription usecase. Declared
// here so the sweeper does not depend on the usecase package.
type ExpireSweeper interface {
	ExpireSweep(ctx context.Context, now time.Time) (int64, error)
}

const sweepTimeout = 30 * time.Second

// SubscriptionSweeper periodically expires overdue subscriptions. The
// sweep itself is a bulk conditional update, so running several
// instances at once is harmless.
type SubscriptionSweeper struct {
	sweeper  ExpireSweeper
	log      *logrus.Logger
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewSubscriptionSweeper(sweeper ExpireSweeper, log *logrus.Logger, interval time.Duration) *SubscriptionSweeper {
	return &SubscriptionSweeper{
		sweeper:  sweeper,
		log:      log,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background sweep loop. One sweep runs immediately
// so a restart never leaves overdue rows waiting a full interval.
func (s *SubscriptionSweeper) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop shuts the loop down and waits for an in-flight sweep to finish.
// Safe to call multiple times.
func (s *SubscriptionSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SubscriptionSweeper stopped")
	}
}

func (s *SubscriptionSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SubscriptionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	expired, err := s.sweeper.ExpireSweep(ctx, time.Now().UTC())
	if err != nil {
		s.log.Warnf("Subscription expiry sweep failed: %+v", err)
		return
	}
	if expired > 0 {
		s.log.Infof("Subscription expiry sweep: %d subscriptions expired", expired)
	}
}
