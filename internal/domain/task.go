package domain

import (
	"fmt"
	"strings"
	"time"

	"clockit/internal/errors"
)

// DefaultTimeLayout is used by String when no display layout is configured.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Task is a named unit of tracked time.
// This is a pure domain model without database-specific concerns.
type Task struct {
	Label string
	State State
	// AccumulatedTime holds closed active intervals only; the open one is added by ElapsedTime.
	AccumulatedTime time.Duration
	CreatedOn       time.Time
	BeginDt         time.Time
	EndDt           time.Time
}

// NewTask creates a task in the Created state with every timestamp set to now.
func NewTask(label string, now time.Time) Task {
	return Task{
		Label:     label,
		State:     StateCreated,
		CreatedOn: now,
		BeginDt:   now,
		EndDt:     now,
	}
}

// Start opens an active interval. Allowed from Created and Paused.
func (t *Task) Start(now time.Time) error {
	if t.State == StateStarted || t.State.IsTerminal() {
		return t.invalid(StateStarted)
	}
	t.BeginDt = now
	t.State = StateStarted
	return nil
}

// Pause closes the active interval. Allowed from Started only.
func (t *Task) Pause(now time.Time) error {
	if t.State != StateStarted {
		return t.invalid(StatePaused)
	}
	t.closeInterval(now)
	t.State = StatePaused
	return nil
}

// End finishes the task. Allowed from Started and Paused; Ended is terminal.
func (t *Task) End(now time.Time) error {
	if t.State == StateCreated || t.State.IsTerminal() {
		return t.invalid(StateEnded)
	}
	if t.State == StateStarted {
		t.closeInterval(now)
	} else {
		t.EndDt = now
	}
	t.State = StateEnded
	return nil
}

// ElapsedTime returns the accumulated time plus the open interval when Started.
func (t Task) ElapsedTime(now time.Time) time.Duration {
	if t.State == StateStarted {
		return t.AccumulatedTime + nonNegative(now.Sub(t.BeginDt))
	}
	return t.AccumulatedTime
}

// ReadableElapsedTime formats ElapsedTime with TimeToReadable.
func (t Task) ReadableElapsedTime(now time.Time) string {
	return ReadableDuration(t.ElapsedTime(now))
}

// Display renders "[S] label (1m5s) created on <begin>" with " and ended on <end>" for Ended tasks.
func (t Task) Display(now time.Time, layout string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%c] %s (%s) created on %s",
		t.State.Char(), t.Label, t.ReadableElapsedTime(now), t.BeginDt.Local().Format(layout))
	if t.State == StateEnded {
		fmt.Fprintf(&b, " and ended on %s", t.EndDt.Local().Format(layout))
	}
	return b.String()
}

// String returns the display line computed against the current clock.
func (t Task) String() string {
	return t.Display(time.Now(), DefaultTimeLayout)
}

// closeInterval stamps EndDt and adds the closed interval using the same instant.
func (t *Task) closeInterval(now time.Time) {
	t.EndDt = now
	t.AccumulatedTime += nonNegative(t.EndDt.Sub(t.BeginDt))
}

func (t *Task) invalid(target State) error {
	return errors.NewInvalidTransitionError(t.Label, t.State.SQLCode(), target.Order())
}

// nonNegative guards accumulated time against a clock that moved backwards.
func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
