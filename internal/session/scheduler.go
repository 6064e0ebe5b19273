package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	// PollInterval is the fallback poll while the session is visible; it is
	// suppressed entirely while the view is hidden.
	PollInterval time.Duration
	// SignalDebounce delays the refresh after an access-change signal so a
	// lagging read replica has time to observe the decision.
	SignalDebounce time.Duration
}

// Scheduler decides when a session refreshes its access snapshot and catalog.
// Every trigger funnels into one buffered channel consumed by a single worker
// goroutine: concurrent triggers coalesce instead of racing, and each cycle
// fetches each snapshot half exactly once.
type Scheduler struct {
	cfg     Config
	logger  *zap.Logger
	refresh func(ctx context.Context)

	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}

	mu       sync.Mutex
	visible  bool
	debounce *time.Timer
	started  bool
	closed   bool
}

func NewScheduler(cfg Config, refresh func(ctx context.Context), logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		logger:  logger,
		refresh: refresh,
		trigger: make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		visible: true, // a session starts on a freshly shown screen
	}
}

// Start launches the worker. The mount refresh is the session's to run
// before starting the scheduler; from here on refreshes happen only on
// triggers and ticks.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-s.trigger:
			s.refresh(ctx)
		case <-ticker.C:
			if s.isVisible() {
				s.refresh(ctx)
			}
		}
	}
}

// RefreshNow queues an immediate refresh, e.g. right after a request
// submission so the pending state shows without waiting for the next tick.
func (s *Scheduler) RefreshNow() {
	s.fire()
}

// OnSignal handles an access-change signal for this session's user. The
// refresh runs after the configured debounce; signals landing inside the
// window collapse into one refresh.
func (s *Scheduler) OnSignal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.debounce != nil {
		s.debounce.Reset(s.cfg.SignalDebounce)
		return
	}

	s.debounce = time.AfterFunc(s.cfg.SignalDebounce, s.fire)
}

// SetVisible records the hosting view's visibility. Regaining visibility
// triggers a refresh; while hidden, the periodic poll is suppressed.
func (s *Scheduler) SetVisible(visible bool) {
	s.mu.Lock()
	was := s.visible
	s.visible = visible
	s.mu.Unlock()

	if visible && !was {
		s.fire()
	}
}

func (s *Scheduler) isVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Scheduler) fire() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Close stops the worker and all timers. No refresh fires after Close
// returns; a refresh already in flight finishes and its result is discarded
// by whoever owned the session.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
	}
	started := s.started
	s.mu.Unlock()

	close(s.stop)
	if started {
		<-s.done
	}
}
