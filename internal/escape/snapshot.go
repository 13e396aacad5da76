package escape

import (
	"encoding/json"
	"errors"
)

// SaveType tags escape-room snapshots in the save store.
const SaveType = "escape-progress"

const snapshotVersion = 1

// snapshot is the versioned wire shape of a machine. Field names match
// the payloads the original builder wrote, so old saves still load.
type snapshot struct {
	Version int            `json:"version,omitempty"`
	Stage   int            `json:"stage"`
	Timer   timerSnapshot  `json:"timer"`
	States  statesSnapshot `json:"states"`
	Data    dataSnapshot   `json:"data"`
}

type timerSnapshot struct {
	Preset    string `json:"preset"`
	Mins      int    `json:"mins"`
	Secs      int    `json:"secs"`
	Remaining int    `json:"remaining"`
	Running   bool   `json:"running"`
}

type statesSnapshot struct {
	S1 string `json:"s1"`
	S2 string `json:"s2"`
	S3 string `json:"s3"`
	S4 string `json:"s4"`
}

type dataSnapshot struct {
	Input1  string `json:"input1"`
	Code3   string `json:"code3"`
	CSVIn   string `json:"csvIn"`
	JSONOut string `json:"jsonOut"`
}

// Snapshot serializes the machine into an opaque payload string for the
// save store.
func (m *Machine) Snapshot() (string, error) {
	snap := snapshot{
		Version: snapshotVersion,
		Stage:   int(m.Current),
		Timer: timerSnapshot{
			Preset:    string(m.Timer.Preset),
			Mins:      m.Timer.Mins,
			Secs:      m.Timer.Secs,
			Remaining: m.Timer.Remaining,
			Running:   m.Timer.Running,
		},
		States: statesSnapshot{
			S1: string(m.Stages[0]),
			S2: string(m.Stages[1]),
			S3: string(m.Stages[2]),
			S4: string(m.Stages[3]),
		},
		Data: dataSnapshot{
			Input1:  m.JSONText,
			Code3:   m.CodeText,
			CSVIn:   m.CSVText,
			JSONOut: m.CSVJSON,
		},
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Restore rebuilds a machine from a snapshot payload. Missing or
// unrecognized fields fall back to their defaults field by field; the
// timer always comes back paused. Only a payload that is not JSON at
// all is an error.
func Restore(payload string) (*Machine, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, errors.New("could not parse saved progress")
	}

	m := New()
	if snap.Stage >= int(StageFormatJSON) && snap.Stage <= int(StageCSV) {
		m.Current = StageKey(snap.Stage)
	}
	m.Stages[0] = restoreStatus(snap.States.S1, StatusInProgress)
	m.Stages[1] = restoreStatus(snap.States.S2, StatusLocked)
	m.Stages[2] = restoreStatus(snap.States.S3, StatusLocked)
	m.Stages[3] = restoreStatus(snap.States.S4, StatusLocked)

	if preset := Preset(snap.Timer.Preset); presetTotals[preset] != 0 {
		m.Timer.Preset = preset
	}
	if snap.Timer.Mins >= 0 && snap.Timer.Secs >= 0 && snap.Timer.Secs <= 59 &&
		snap.Timer.Mins*60+snap.Timer.Secs > 0 {
		m.Timer.Mins = snap.Timer.Mins
		m.Timer.Secs = snap.Timer.Secs
		m.Timer.Remaining = m.Timer.Total()
	}
	if snap.Timer.Remaining > 0 {
		m.Timer.Remaining = snap.Timer.Remaining
	}
	m.Timer.Running = false

	if snap.Data.Input1 != "" {
		m.JSONText = snap.Data.Input1
	}
	if snap.Data.Code3 != "" {
		m.CodeText = snap.Data.Code3
	}
	if snap.Data.CSVIn != "" {
		m.CSVText = snap.Data.CSVIn
	}
	m.CSVJSON = snap.Data.JSONOut
	return m, nil
}

func restoreStatus(raw string, fallback Status) Status {
	switch Status(raw) {
	case StatusLocked, StatusInProgress, StatusDone:
		return Status(raw)
	}
	return fallback
}
