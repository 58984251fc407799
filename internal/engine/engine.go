// Package engine implements the timer coordination engine: the state
// machine that keeps the Pomodoro countdown correct across process
// suspension and restart by anchoring it to an absolute end time and
// reconciling against the persisted record on every foreground
// transition.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ronak-kumar-sing/makeit/internal/domain"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// Phase is the engine's in-memory lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// Snapshot is the observable engine state handed to subscribers.
type Snapshot struct {
	Phase                  Phase
	Mode                   domain.TimerMode
	Remaining              time.Duration
	TaskTitle              *string
	CompletedFocusSessions int
}

// StartRequest optionally attaches a task to the countdown being
// started. Nil fields keep whatever attachment a paused timer already
// carries.
type StartRequest struct {
	TaskTitle *string
	TaskID    *string
	Subject   *string
}

// Deps bundles the collaborators the engine drives.
type Deps struct {
	Store     ports.TimerStateStore
	Notifier  ports.Notifier
	Registrar ports.BackgroundRegistrar
	Recorder  ports.SessionRecorder
	Progress  ports.TaskProgress
	Settings  ports.Settings
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Engine owns every mutation of the persisted timer state. All
// transitions are deterministic functions of (persisted snapshot, now),
// which is what makes the foreground and background discovery paths
// idempotent with each other.
type Engine struct {
	mu        sync.Mutex
	store     ports.TimerStateStore
	notifier  ports.Notifier
	registrar ports.BackgroundRegistrar
	recorder  ports.SessionRecorder
	progress  ports.TaskProgress
	settings  ports.Settings
	clock     ports.Clock
	log       *slog.Logger

	state      domain.PersistedTimerState
	phase      Phase
	cycle      domain.CycleCounter
	memoryOnly bool
	subs       []func(Snapshot)
	tickCancel context.CancelFunc
}

// New creates an engine in the idle state. Clock and Logger default to
// the system clock and slog.Default when nil.
func New(deps Deps) *Engine {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Engine{
		store:     deps.Store,
		notifier:  deps.Notifier,
		registrar: deps.Registrar,
		recorder:  deps.Recorder,
		progress:  deps.Progress,
		settings:  deps.Settings,
		clock:     deps.Clock,
		log:       deps.Logger,
		state:     domain.NewIdleState(domain.ModeFocus, deps.Settings.TimerConfig()),
		phase:     PhaseIdle,
	}
}

// Subscribe registers a callback fired on every state change and on
// every cosmetic tick. Callbacks run synchronously on the engine's
// goroutines and must not call back into the engine.
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start begins or resumes the countdown. The paused remaining time is
// used when there is one; otherwise the full configured duration for
// the current mode.
func (e *Engine) Start(ctx context.Context, req StartRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseRunning {
		return domain.ErrTimerAlreadyRunning
	}

	config := e.settings.TimerConfig()
	secs := e.state.TimeLeftSeconds
	if e.phase == PhaseIdle || secs <= 0 {
		secs = int(config.DurationFor(e.state.Mode) / time.Second)
	}

	if req.TaskTitle != nil {
		e.state.TaskTitle = req.TaskTitle
	}
	if req.TaskID != nil {
		e.state.TaskID = req.TaskID
	}
	if req.Subject != nil {
		e.state.Subject = req.Subject
	}

	end := e.clock.Now().Add(time.Duration(secs) * time.Second)
	e.state.EndTime = &end
	e.state.TimeLeftSeconds = secs
	e.state.IsRunning = true

	// Persist before any OS side effect so the store never disagrees
	// with an existing notification or background registration.
	e.persistLocked(ctx)
	e.showCountdownLocked(ctx)
	if err := e.registrar.Register(e.BackgroundRefresh); err != nil {
		e.log.Warn("background registration failed; completion will be discovered on foreground resume", "error", err)
	}

	e.phase = PhaseRunning
	e.startTickerLocked()
	e.publishLocked()
	return nil
}

// Pause freezes the countdown, making the stored remaining seconds
// authoritative until the next Start.
func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseRunning {
		return domain.ErrTimerNotRunning
	}

	e.stopTickerLocked()
	if err := e.registrar.Unregister(); err != nil {
		e.log.Warn("failed to unregister background refresh", "error", err)
	}

	e.state.TimeLeftSeconds = e.state.RemainingSeconds(e.clock.Now())
	e.state.EndTime = nil
	e.state.IsRunning = false
	e.cancelNotificationLocked()
	e.persistLocked(ctx)

	e.phase = PhasePaused
	e.publishLocked()
	return nil
}

// Reset abandons the countdown and returns to idle at the full
// configured duration. A nil mode keeps the current one. No session is
// recorded and the cycle counter is untouched.
func (e *Engine) Reset(ctx context.Context, mode *domain.TimerMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTickerLocked()
	if err := e.registrar.Unregister(); err != nil {
		e.log.Warn("failed to unregister background refresh", "error", err)
	}
	e.cancelNotificationLocked()

	next := e.state.Mode
	if mode != nil {
		next = *mode
	}
	e.clearStoreLocked(ctx)
	e.state = domain.NewIdleState(next, e.settings.TimerConfig())

	e.phase = PhaseIdle
	e.publishLocked()
	return nil
}

// Skip abandons the countdown and advances to the next mode. An
// explicit skip forfeits credit: no session record is emitted and the
// cycle counter does not advance.
func (e *Engine) Skip(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseIdle {
		return domain.ErrTimerNotRunning
	}

	e.stopTickerLocked()
	if err := e.registrar.Unregister(); err != nil {
		e.log.Warn("failed to unregister background refresh", "error", err)
	}
	e.cancelNotificationLocked()

	config := e.settings.TimerConfig()
	next := e.cycle.NextMode(e.state.Mode, config.SessionsBeforeLong)
	e.clearStoreLocked(ctx)
	e.state = domain.NewIdleState(next, config)

	e.phase = PhaseIdle
	e.publishLocked()
	return nil
}

// ReconcileOnForeground recomputes the true timer state from the
// persisted record and the current time. Called on every foreground
// transition; correctness never depends on ticks having fired while
// the process was suspended.
func (e *Engine) ReconcileOnForeground(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	config := e.settings.TimerConfig()

	stored, err := e.store.Read(ctx)
	if err != nil {
		e.memoryOnly = true
		e.log.Warn("timer state store unavailable; continuing in memory only", "error", err)
		if e.phase == PhaseRunning && e.state.Expired(now) {
			e.completeLocked(ctx, e.state)
			return nil
		}
		e.publishLocked()
		return nil
	}
	e.memoryOnly = false

	if stored == nil {
		// First initialization, or another process already normalized a
		// completed timer and cleared the record. An idle engine keeps
		// its current idle state so repeated reconciliations converge.
		e.stopTickerLocked()
		if e.phase != PhaseIdle {
			if err := e.registrar.Unregister(); err != nil {
				e.log.Warn("failed to unregister background refresh", "error", err)
			}
			e.state = domain.NewIdleState(domain.ModeFocus, config)
			e.phase = PhaseIdle
		}
		e.persistLocked(ctx)
		e.publishLocked()
		return nil
	}

	e.state = *stored

	if stored.Expired(now) {
		// The persisted mode, not the possibly stale in-memory one,
		// decides what completed while we were suspended.
		e.completeLocked(ctx, *stored)
		return nil
	}

	if stored.IsRunning {
		e.state.TimeLeftSeconds = stored.RemainingSeconds(now)
		e.phase = PhaseRunning
		e.startTickerLocked()
		if err := e.registrar.Register(e.BackgroundRefresh); err != nil {
			e.log.Warn("background registration failed; completion will be discovered on foreground resume", "error", err)
		}
		e.showCountdownLocked(ctx)
		e.publishLocked()
		return nil
	}

	full := int(config.DurationFor(stored.Mode) / time.Second)
	switch {
	case stored.TimeLeftSeconds == 0:
		// A clean reset: fall back to the full configured duration.
		e.state = domain.NewIdleState(stored.Mode, config)
		e.phase = PhaseIdle
	case stored.TimeLeftSeconds == full:
		e.phase = PhaseIdle
	default:
		e.phase = PhasePaused
	}
	e.publishLocked()
	return nil
}

// BackgroundRefresh is the handler the registrar invokes on its own
// schedule. It finalizes an overdue timer through the same completion
// path as the foreground, or refreshes the notification body. It never
// mutates endTime or isRunning.
func (e *Engine) BackgroundRefresh(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := e.store.Read(ctx)
	if err != nil {
		e.log.Warn("background refresh: state store unavailable", "error", err)
		return
	}
	if stored == nil || !stored.IsRunning {
		return
	}

	now := e.clock.Now()
	if stored.Expired(now) {
		e.state = *stored
		e.completeLocked(ctx, *stored)
		return
	}

	if !e.settings.NotificationsEnabled() {
		return
	}
	remaining := stored.RemainingSeconds(now)
	title, body := countdownText(stored.Mode, remaining, stored.TaskTitle)

	var id string
	if stored.NotificationID != nil {
		id, err = e.notifier.Replace(*stored.NotificationID, title, body)
	} else {
		id, err = e.notifier.Show(title, body)
	}
	if err != nil {
		e.log.Warn("background refresh: notification failed", "error", err)
		return
	}
	stored.NotificationID = &id
	if err := e.store.Write(ctx, *stored); err != nil {
		e.log.Warn("background refresh: failed to persist notification id", "error", err)
	}
	if e.phase == PhaseRunning {
		e.state.NotificationID = &id
		e.state.TimeLeftSeconds = remaining
	}
}

// Close tears down the foreground ticker. The persisted state is left
// intact so a later process can reconcile it.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTickerLocked()
}

// tick fires every second while running. It is purely cosmetic: it
// refreshes subscribers and hands an expired countdown to the
// completion path, but correctness never depends on it firing.
func (e *Engine) tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseRunning {
		return
	}
	now := e.clock.Now()
	if e.state.Expired(now) {
		e.completeLocked(ctx, e.state)
		return
	}
	e.state.TimeLeftSeconds = e.state.RemainingSeconds(now)
	e.publishLocked()
}

// completeLocked is the single Completing handler shared by the tick,
// foreground reconciliation and background refresh paths. st is the
// snapshot that was found expired; its mode decides what completed.
func (e *Engine) completeLocked(ctx context.Context, st domain.PersistedTimerState) {
	e.stopTickerLocked()
	if err := e.registrar.Unregister(); err != nil {
		e.log.Warn("failed to unregister background refresh", "error", err)
	}
	if st.NotificationID != nil {
		if err := e.notifier.Cancel(*st.NotificationID); err != nil {
			e.log.Warn("failed to cancel notification", "error", err)
		}
	}
	e.state.NotificationID = nil
	e.clearStoreLocked(ctx)

	config := e.settings.TimerConfig()
	var next domain.TimerMode
	if st.Mode == domain.ModeFocus {
		rec := domain.NewSessionRecord(int(config.FocusDuration.Minutes()), st.Subject, st.TaskID, domain.ModeFocus, e.clock.Now())
		if err := e.recorder.RecordSession(ctx, rec); err != nil {
			e.log.Warn("failed to record completed session", "error", err)
		}
		if st.TaskID != nil && e.progress != nil {
			if err := e.progress.BumpProgress(ctx, *st.TaskID, e.settings.ProgressPerSession()); err != nil {
				e.log.Warn("failed to bump task progress", "error", err)
			}
		}
		next = e.cycle.Advance(config.SessionsBeforeLong)
	} else {
		next = domain.ModeFocus
	}

	if e.settings.NotificationsEnabled() {
		title, body := completionText(st.Mode, config.DurationFor(next))
		if _, err := e.notifier.Show(title, body); err != nil {
			e.log.Warn("completion notification failed", "error", err)
		}
	}

	e.state = domain.NewIdleState(next, config)
	e.phase = PhaseIdle
	e.publishLocked()
}

func (e *Engine) persistLocked(ctx context.Context) {
	if e.memoryOnly {
		return
	}
	if err := e.store.Write(ctx, e.state); err != nil {
		e.memoryOnly = true
		e.log.Warn("timer state store unavailable; continuing in memory only", "error", err)
	}
}

func (e *Engine) clearStoreLocked(ctx context.Context) {
	if e.memoryOnly {
		return
	}
	if err := e.store.Clear(ctx); err != nil {
		e.memoryOnly = true
		e.log.Warn("failed to clear timer state", "error", err)
	}
}

// showCountdownLocked cancels any outstanding notification and shows a
// fresh one, persisting the new id.
func (e *Engine) showCountdownLocked(ctx context.Context) {
	if !e.settings.NotificationsEnabled() {
		return
	}
	e.cancelNotificationLocked()

	title, body := countdownText(e.state.Mode, e.state.TimeLeftSeconds, e.state.TaskTitle)
	id, err := e.notifier.Show(title, body)
	if err != nil {
		e.log.Warn("failed to show notification", "error", err)
		return
	}
	e.state.NotificationID = &id
	e.persistLocked(ctx)
}

func (e *Engine) cancelNotificationLocked() {
	if e.state.NotificationID == nil {
		return
	}
	if err := e.notifier.Cancel(*e.state.NotificationID); err != nil {
		e.log.Warn("failed to cancel notification", "error", err)
	}
	e.state.NotificationID = nil
}

func (e *Engine) startTickerLocked() {
	if e.tickCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.tickCancel = cancel
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.tick(context.Background())
			}
		}
	}()
}

func (e *Engine) stopTickerLocked() {
	if e.tickCancel != nil {
		e.tickCancel()
		e.tickCancel = nil
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:                  e.phase,
		Mode:                   e.state.Mode,
		Remaining:              time.Duration(e.state.RemainingSeconds(e.clock.Now())) * time.Second,
		TaskTitle:              e.state.TaskTitle,
		CompletedFocusSessions: e.cycle.CompletedFocusSessions,
	}
}

func (e *Engine) publishLocked() {
	snap := e.snapshotLocked()
	for _, fn := range e.subs {
		fn(snap)
	}
}

// countdownText builds the live notification content.
func countdownText(mode domain.TimerMode, remainingSeconds int, taskTitle *string) (title, body string) {
	title = mode.Label()
	body = fmt.Sprintf("%s remaining", formatClock(remainingSeconds))
	if taskTitle != nil && *taskTitle != "" {
		body = fmt.Sprintf("%s · %s", body, *taskTitle)
	}
	return title, body
}

// completionText builds the one-shot completion alert.
func completionText(finished domain.TimerMode, nextDuration time.Duration) (title, body string) {
	if finished == domain.ModeFocus {
		return "Focus complete!", fmt.Sprintf("Great work! Time for a %d minute break.", int(nextDuration.Minutes()))
	}
	return "Break over!", "Ready to focus?"
}

// formatClock renders seconds as MM:SS.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
