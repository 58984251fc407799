package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
)

// eventLog records the order of side effects across fakes so tests can
// assert persistence happens before OS side effects.
type eventLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *eventLog) append(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

func (l *eventLog) index(e string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, entry := range l.entries {
		if entry == e {
			return i
		}
	}
	return -1
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStore struct {
	mu      sync.Mutex
	state   *domain.PersistedTimerState
	failure bool
	writes  int
	clears  int
	events  *eventLog
}

func (s *memStore) Write(ctx context.Context, state domain.PersistedTimerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure {
		return errors.New("store unavailable")
	}
	copied := state
	s.state = &copied
	s.writes++
	if s.events != nil {
		s.events.append("store.write")
	}
	return nil
}

func (s *memStore) Read(ctx context.Context) (*domain.PersistedTimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure {
		return nil, errors.New("store unavailable")
	}
	if s.state == nil {
		return nil, nil
	}
	copied := *s.state
	return &copied, nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure {
		return errors.New("store unavailable")
	}
	s.state = nil
	s.clears++
	if s.events != nil {
		s.events.append("store.clear")
	}
	return nil
}

// seed installs a persisted record as if written by an earlier process.
func (s *memStore) seed(state domain.PersistedTimerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := state
	s.state = &copied
}

func (s *memStore) snapshot() *domain.PersistedTimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	copied := *s.state
	return &copied
}

type fakeNotifier struct {
	mu       sync.Mutex
	seq      int
	shows    int
	replaces int
	cancels  int
	lastBody string
	events   *eventLog
}

func (n *fakeNotifier) Show(title, body string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.shows++
	n.lastBody = body
	if n.events != nil {
		n.events.append("notifier.show")
	}
	return fmt.Sprintf("notif-%d", n.seq), nil
}

func (n *fakeNotifier) Replace(id, title, body string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.replaces++
	n.lastBody = body
	return fmt.Sprintf("notif-%d", n.seq), nil
}

func (n *fakeNotifier) Cancel(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancels++
	return nil
}

type fakeRegistrar struct {
	mu          sync.Mutex
	registered  bool
	handler     func(ctx context.Context)
	registers   int
	unregisters int
	events      *eventLog
}

func (r *fakeRegistrar) Register(handler func(ctx context.Context)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers++
	r.registered = true
	r.handler = handler
	if r.events != nil {
		r.events.append("registrar.register")
	}
	return nil
}

func (r *fakeRegistrar) Unregister() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisters++
	r.registered = false
	return nil
}

func (r *fakeRegistrar) isRegistered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []domain.SessionRecord
}

func (r *fakeRecorder) RecordSession(ctx context.Context, rec domain.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeProgress struct {
	mu    sync.Mutex
	bumps map[string]int
}

func (p *fakeProgress) BumpProgress(ctx context.Context, taskID string, delta int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bumps == nil {
		p.bumps = make(map[string]int)
	}
	p.bumps[taskID] += delta
	return nil
}

type stubSettings struct {
	config        domain.TimerConfig
	notifications bool
	increment     int
}

func (s *stubSettings) TimerConfig() domain.TimerConfig { return s.config }
func (s *stubSettings) NotificationsEnabled() bool      { return s.notifications }
func (s *stubSettings) ProgressPerSession() int         { return s.increment }

// testRig bundles an engine with its fakes.
type testRig struct {
	engine    *Engine
	clock     *fakeClock
	store     *memStore
	notifier  *fakeNotifier
	registrar *fakeRegistrar
	recorder  *fakeRecorder
	progress  *fakeProgress
	settings  *stubSettings
	events    *eventLog
}

func newTestRig() *testRig {
	events := &eventLog{}
	rig := &testRig{
		clock:     &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		store:     &memStore{events: events},
		notifier:  &fakeNotifier{events: events},
		registrar: &fakeRegistrar{events: events},
		recorder:  &fakeRecorder{},
		progress:  &fakeProgress{},
		settings: &stubSettings{
			config:        domain.DefaultTimerConfig(),
			notifications: true,
			increment:     20,
		},
		events: events,
	}
	rig.engine = New(Deps{
		Store:     rig.store,
		Notifier:  rig.notifier,
		Registrar: rig.registrar,
		Recorder:  rig.recorder,
		Progress:  rig.progress,
		Settings:  rig.settings,
		Clock:     rig.clock,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return rig
}
