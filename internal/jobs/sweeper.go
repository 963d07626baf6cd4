package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Cleaner deletes expired rows and reports how many were removed
type Cleaner interface {
	DeleteExpired(ctx context.Context) (int, error)
}

// Sweeper periodically removes expired refresh tokens and invitations
type Sweeper struct {
	cleaners map[string]Cleaner
	interval time.Duration
	delay    time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// SweeperConfig holds configuration for the sweeper
type SweeperConfig struct {
	// Cleaners maps a name used in logs to the store it sweeps
	Cleaners map[string]Cleaner
	Interval time.Duration // Default: 1 hour
	// InitialDelay is waited before the first sweep. Default: 5 seconds
	InitialDelay time.Duration
	Timeout      time.Duration // per sweep. Default: 2 minutes
}

// NewSweeper creates a new sweeper job
func NewSweeper(cfg SweeperConfig) *Sweeper {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.InitialDelay < 0 {
		cfg.InitialDelay = 0
	} else if cfg.InitialDelay == 0 {
		cfg.InitialDelay = 5 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Sweeper{
		cleaners: cfg.Cleaners,
		interval: cfg.Interval,
		delay:    cfg.InitialDelay,
		timeout:  cfg.Timeout,
	}
}

// Start begins sweeping in the background. A stopped sweeper may be started
// again.
func (s *Sweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(stop)
	slog.Info("sweeper started", slog.Duration("interval", s.interval))
}

// Stop waits for an in-progress sweep and stops the job
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	slog.Info("sweeper stopped")
}

// IsRunning returns whether the sweeper is running
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) run(stop <-chan struct{}) {
	defer s.wg.Done()

	select {
	case <-time.After(s.delay):
		s.sweep()
	case <-stop:
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-stop:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		slog.Error("sweep failed", slog.String("error", err.Error()))
	}
}

// RunOnce sweeps every store once. A failing store does not stop the others.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	var errs []error
	for name, c := range s.cleaners {
		n, err := c.DeleteExpired(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if n > 0 {
			slog.Info("expired rows removed", slog.String("store", name), slog.Int("count", n))
		}
	}
	return errors.Join(errs...)
}
