package escape

import (
	"errors"
	"fmt"
)

type Preset string

const (
	PresetEasy   Preset = "Easy"
	PresetNormal Preset = "Normal"
	PresetHard   Preset = "Hard"
)

var presetTotals = map[Preset]int{
	PresetEasy:   8 * 60,
	PresetNormal: 5 * 60,
	PresetHard:   3 * 60,
}

var ErrTimeUp = errors.New("time is up")

// Timer is a cooperative countdown: the caller ticks it once per
// second. Hitting zero while running stops the run and latches the
// time-up flag; stage progress is untouched.
type Timer struct {
	Preset    Preset
	Mins      int
	Secs      int
	Remaining int
	Running   bool
}

func NewTimer() Timer {
	t := Timer{}
	t.ApplyPreset(PresetNormal)
	return t
}

func (t *Timer) ApplyPreset(p Preset) error {
	total, ok := presetTotals[p]
	if !ok {
		return fmt.Errorf("unknown preset %q", p)
	}
	t.Preset = p
	t.Mins = total / 60
	t.Secs = total % 60
	t.Running = false
	t.Remaining = total
	return nil
}

// Set adjusts the configured duration. While paused the remaining time
// follows the new total, matching how editing the inputs behaves.
func (t *Timer) Set(mins, secs int) error {
	if mins < 0 || secs < 0 || secs > 59 {
		return errors.New("minutes and seconds must be in range")
	}
	t.Mins = mins
	t.Secs = secs
	if !t.Running {
		t.Remaining = t.Total()
	}
	return nil
}

func (t *Timer) Total() int {
	return t.Mins*60 + t.Secs
}

func (t *Timer) Start() error {
	if t.TimeUp() {
		return ErrTimeUp
	}
	t.Running = true
	return nil
}

func (t *Timer) Pause() {
	t.Running = false
}

// Tick counts down one second. It reports true exactly once, on the
// tick that reaches zero.
func (t *Timer) Tick() bool {
	if !t.Running {
		return false
	}
	if t.Remaining > 0 {
		t.Remaining--
	}
	if t.Remaining == 0 {
		t.Running = false
		return true
	}
	return false
}

func (t *Timer) TimeUp() bool {
	return t.Remaining == 0
}

// Clock renders the remaining time as MM:SS.
func (t *Timer) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Remaining/60, t.Remaining%60)
}
