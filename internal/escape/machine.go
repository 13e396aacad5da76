// Package escape holds the escape-room challenge state machine: four
// ordered stages, each with its own validator, plus a countdown timer
// that runs independently of stage progress. The machine is pure state;
// callers drive it with events and persist it through snapshots.
package escape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type Status string

const (
	StatusLocked     Status = "locked"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// StageKey identifies one of the four challenges, 1-based.
type StageKey int

const (
	StageFormatJSON StageKey = 1
	StageHotspot    StageKey = 2
	StageLoop       StageKey = 3
	StageCSV        StageKey = 4

	NumStages = 4
)

var (
	ErrStageLocked  = errors.New("stage is locked")
	ErrStageNotDone = errors.New("current stage is not done")
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrInvalidCode  = errors.New("code must loop from 0 to 1000 and output the numbers")
	ErrInvalidCSV   = errors.New("CSV needs a header row")
)

const (
	defaultJSONText = `{"name":"Ada","skills":["js","ts"],"active":true,"scores":{"a":1,"b":2}}`
	defaultCodeText = "// Write JS that outputs 0..1000\nfor (let i = 0; i <= 1000; i++) { console.log(i); }"
	defaultCSVText  = "id,name,points\n1,Ada,8\n2,Linus,10\n3,Grace,9"
)

// Machine tracks which stage the player is on, the per-stage statuses,
// the stage work areas, and the countdown timer.
type Machine struct {
	Current  StageKey
	Stages   [NumStages]Status
	Timer    Timer
	JSONText string
	CodeText string
	CSVText  string
	CSVJSON  string
}

// New returns a machine at stage 1 with the sample inputs loaded and
// the timer at the Normal preset, paused.
func New() *Machine {
	m := &Machine{
		Current:  StageFormatJSON,
		Timer:    NewTimer(),
		JSONText: defaultJSONText,
		CodeText: defaultCodeText,
		CSVText:  defaultCSVText,
	}
	m.Stages[0] = StatusInProgress
	for i := 1; i < NumStages; i++ {
		m.Stages[i] = StatusLocked
	}
	return m
}

func (m *Machine) Status(key StageKey) Status {
	if key < StageFormatJSON || key > StageCSV {
		return StatusLocked
	}
	return m.Stages[key-1]
}

// Progress is the fraction of stages done, 0..1.
func (m *Machine) Progress() float64 {
	done := 0
	for _, status := range m.Stages {
		if status == StatusDone {
			done++
		}
	}
	return float64(done) / NumStages
}

// Escaped reports whether every stage is done.
func (m *Machine) Escaped() bool {
	for _, status := range m.Stages {
		if status != StatusDone {
			return false
		}
	}
	return true
}

// FormatJSON is the stage 1 validator: the input must parse as JSON.
// On success it stores the pretty-printed text and unlocks stage 2.
func (m *Machine) FormatJSON(input string) error {
	if m.Status(StageFormatJSON) == StatusLocked {
		return ErrStageLocked
	}
	var value any
	if err := json.Unmarshal([]byte(input), &value); err != nil {
		return ErrInvalidJSON
	}
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ErrInvalidJSON
	}
	m.JSONText = string(pretty)
	m.complete(StageFormatJSON)
	return nil
}

// ActivateHotspot is the stage 2 validator: the designated click target
// was hit.
func (m *Machine) ActivateHotspot() error {
	if m.Status(StageHotspot) == StatusLocked {
		return ErrStageLocked
	}
	m.complete(StageHotspot)
	return nil
}

// SubmitCode is the stage 3 validator: the code must contain a for
// loop, the literals 0 and 1000, and an output call.
func (m *Machine) SubmitCode(code string) error {
	if m.Status(StageLoop) == StatusLocked {
		return ErrStageLocked
	}
	m.CodeText = code
	if !codeOutputsRange(code) {
		return ErrInvalidCode
	}
	m.complete(StageLoop)
	return nil
}

// SubmitCSV is the stage 4 validator: the input must split into a
// header row plus data rows. On success it stores the JSON conversion.
func (m *Machine) SubmitCSV(input string) error {
	if m.Status(StageCSV) == StatusLocked {
		return ErrStageLocked
	}
	m.CSVText = input
	converted, err := csvToJSON(input)
	if err != nil {
		return err
	}
	m.CSVJSON = converted
	m.complete(StageCSV)
	return nil
}

// Next advances to the following stage; it is gated on the current
// stage being done.
func (m *Machine) Next() error {
	if m.Status(m.Current) != StatusDone {
		return ErrStageNotDone
	}
	if m.Current < StageCSV {
		m.Current++
	}
	return nil
}

// Reset puts the machine back to its initial state, timer included.
func (m *Machine) Reset() {
	total := m.Timer.Total()
	*m = *New()
	m.Timer.Set(total/60, total%60)
}

func (m *Machine) complete(key StageKey) {
	m.Stages[key-1] = StatusDone
	if key < StageCSV {
		if m.Stages[key] == StatusLocked {
			m.Stages[key] = StatusInProgress
		}
		m.Current = key + 1
	}
}

// csvToJSON converts header+rows CSV text into an indented JSON array.
// Numeric-looking cells become numbers; short rows pad with empty
// strings. Column order follows the header.
func csvToJSON(input string) (string, error) {
	lines := splitLines(input)
	if len(lines) == 0 {
		return "", ErrInvalidCSV
	}
	headers := splitCells(lines[0])

	var buf bytes.Buffer
	buf.WriteString("[")
	for rowIdx, line := range lines[1:] {
		cells := splitCells(line)
		if rowIdx > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for colIdx, header := range headers {
			cell := ""
			if colIdx < len(cells) {
				cell = cells[colIdx]
			}
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			key, err := json.Marshal(header)
			if err != nil {
				return "", err
			}
			buf.Write(key)
			buf.WriteString(": ")
			buf.WriteString(encodeCell(cell))
		}
		buf.WriteString("}")
	}
	if len(lines) > 1 {
		buf.WriteString("\n")
	}
	buf.WriteString("]")
	return buf.String(), nil
}

func encodeCell(cell string) string {
	if numberPattern.MatchString(cell) {
		return cell
	}
	encoded, err := json.Marshal(cell)
	if err != nil {
		return `""`
	}
	return string(encoded)
}

func (k StageKey) String() string {
	switch k {
	case StageFormatJSON:
		return "format-json"
	case StageHotspot:
		return "hotspot"
	case StageLoop:
		return "loop"
	case StageCSV:
		return "csv"
	}
	return fmt.Sprintf("stage-%d", int(k))
}
