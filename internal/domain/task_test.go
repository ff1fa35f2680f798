package domain

import (
	"testing"
	"time"

	"clockit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return baseTime.Add(offset)
}

func TestNewTask(t *testing.T) {
	task := NewTask("report", baseTime)

	assert.Equal(t, "report", task.Label)
	assert.Equal(t, StateCreated, task.State)
	assert.Zero(t, task.AccumulatedTime)
	assert.Equal(t, baseTime, task.CreatedOn)
	assert.Equal(t, baseTime, task.BeginDt)
	assert.Equal(t, baseTime, task.EndDt)
}

func TestTask_Transitions(t *testing.T) {
	type op func(*Task, time.Time) error
	start := (*Task).Start
	pause := (*Task).Pause
	end := (*Task).End

	tests := []struct {
		name    string
		from    State
		op      op
		want    State
		wantErr bool
	}{
		{"start from created", StateCreated, start, StateStarted, false},
		{"start from paused", StatePaused, start, StateStarted, false},
		{"start from started", StateStarted, start, StateStarted, true},
		{"start from ended", StateEnded, start, StateEnded, true},
		{"pause from started", StateStarted, pause, StatePaused, false},
		{"pause from created", StateCreated, pause, StateCreated, true},
		{"pause from paused", StatePaused, pause, StatePaused, true},
		{"pause from ended", StateEnded, pause, StateEnded, true},
		{"end from started", StateStarted, end, StateEnded, false},
		{"end from paused", StatePaused, end, StateEnded, false},
		{"end from created", StateCreated, end, StateCreated, true},
		{"end from ended", StateEnded, end, StateEnded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Label: "report", State: tt.from, BeginDt: baseTime, EndDt: baseTime}
			before := task

			err := tt.op(&task, at(time.Minute))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))
				assert.Equal(t, before, task, "failed transition must leave the task untouched")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, task.State)
		})
	}
}

func TestTask_InvalidTransitionMessage(t *testing.T) {
	task := Task{Label: "report", State: StateEnded}

	err := task.Start(baseTime)

	require.Error(t, err)
	assert.Equal(t, "report is in state ended which doesn't allow it to start", errors.GetUserMessage(err))
}

func TestTask_EndedIsAbsorbing(t *testing.T) {
	task := NewTask("report", baseTime)
	require.NoError(t, task.Start(at(time.Second)))
	require.NoError(t, task.End(at(2*time.Second)))

	for _, op := range []func(time.Time) error{task.Start, task.Pause, task.End} {
		err := op(at(time.Hour))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidTransition))
		assert.Equal(t, StateEnded, task.State)
	}
}

func TestTask_PauseAccumulatesInterval(t *testing.T) {
	task := NewTask("report", baseTime)
	require.NoError(t, task.Start(at(10*time.Second)))
	require.NoError(t, task.Pause(at(70*time.Second)))

	assert.Equal(t, time.Minute, task.AccumulatedTime)
	assert.Equal(t, at(10*time.Second), task.BeginDt)
	assert.Equal(t, at(70*time.Second), task.EndDt)
	assert.Equal(t, baseTime, task.CreatedOn)
}

func TestTask_EndFromPausedKeepsAccumulatedTime(t *testing.T) {
	task := NewTask("report", baseTime)
	require.NoError(t, task.Start(baseTime))
	require.NoError(t, task.Pause(at(30*time.Second)))
	require.NoError(t, task.End(at(time.Hour)))

	assert.Equal(t, 30*time.Second, task.AccumulatedTime)
	assert.Equal(t, at(time.Hour), task.EndDt)
}

func TestTask_StartPauseStartEndSumsIntervals(t *testing.T) {
	pauses := []time.Duration{0, time.Second, 3 * time.Hour}

	for _, gap := range pauses {
		task := NewTask("report", baseTime)
		require.NoError(t, task.Start(baseTime))
		require.NoError(t, task.Pause(at(40*time.Second)))
		resume := at(40*time.Second + gap)
		require.NoError(t, task.Start(resume))
		require.NoError(t, task.End(resume.Add(25*time.Second)))

		assert.Equal(t, 65*time.Second, task.AccumulatedTime, "pause of %s", gap)
	}
}

func TestTask_ClockGoingBackwardsNeverReducesTime(t *testing.T) {
	task := NewTask("report", baseTime)
	task.AccumulatedTime = time.Minute
	require.NoError(t, task.Start(at(time.Hour)))
	require.NoError(t, task.Pause(at(time.Minute)))

	assert.Equal(t, time.Minute, task.AccumulatedTime)
}

func TestTask_ElapsedTime(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected time.Duration
	}{
		{"started adds the open interval", StateStarted, 2*time.Minute + 30*time.Second},
		{"paused returns accumulated", StatePaused, 2 * time.Minute},
		{"created returns accumulated", StateCreated, 2 * time.Minute},
		{"ended returns accumulated", StateEnded, 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Label: "x", State: tt.state, AccumulatedTime: 2 * time.Minute, BeginDt: baseTime}
			assert.Equal(t, tt.expected, task.ElapsedTime(at(30*time.Second)))
		})
	}
}

func TestTask_ElapsedTimeNonDecreasing(t *testing.T) {
	task := NewTask("report", time.Now())
	require.NoError(t, task.Start(time.Now()))

	first := task.ElapsedTime(time.Now())
	second := task.ElapsedTime(time.Now())

	assert.GreaterOrEqual(t, second, first)
}

func TestTask_Display(t *testing.T) {
	begin := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 15, 11, 30, 0, 0, time.Local)
	layout := "2006-01-02 15:04"

	tests := []struct {
		name     string
		task     Task
		expected string
	}{
		{
			name:     "created",
			task:     Task{Label: "report", State: StateCreated, BeginDt: begin, EndDt: begin},
			expected: "[C] report (0s) created on 2024-01-15 09:00",
		},
		{
			name:     "paused",
			task:     Task{Label: "report", State: StatePaused, AccumulatedTime: 125 * time.Second, BeginDt: begin, EndDt: end},
			expected: "[P] report (2m5s) created on 2024-01-15 09:00",
		},
		{
			name:     "ended",
			task:     Task{Label: "report", State: StateEnded, AccumulatedTime: 3661 * time.Second, BeginDt: begin, EndDt: end},
			expected: "[E] report (1h1m1s) created on 2024-01-15 09:00 and ended on 2024-01-15 11:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.Display(end, layout))
		})
	}
}

func TestTask_DisplayStartedIsLive(t *testing.T) {
	begin := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)
	task := Task{Label: "report", State: StateStarted, AccumulatedTime: 10 * time.Second, BeginDt: begin}

	line := task.Display(begin.Add(50*time.Second), DefaultTimeLayout)

	assert.Equal(t, "[S] report (1m0s) created on 2024-01-15 09:00:00", line)
}
