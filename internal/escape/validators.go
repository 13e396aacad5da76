package escape

import (
	"regexp"
	"strings"
)

var (
	forLoopPattern  = regexp.MustCompile(`for\s*\(`)
	zeroPattern     = regexp.MustCompile(`(^|[^0-9])0([^0-9]|$)`)
	thousandPattern = regexp.MustCompile(`(^|[^0-9])1000([^0-9]|$)`)
	outputPattern   = regexp.MustCompile(`console\.log\(|push\(|document\.write\(|join\(`)
	numberPattern   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// codeOutputsRange is a pattern heuristic, not an interpreter: the
// submission needs a for loop over 0..1000 and some output call.
func codeOutputsRange(code string) bool {
	return forLoopPattern.MatchString(code) &&
		zeroPattern.MatchString(code) &&
		thousandPattern.MatchString(code) &&
		outputPattern.MatchString(code)
}

func splitLines(input string) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(trimmed, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	return lines
}

func splitCells(line string) []string {
	raw := strings.Split(line, ",")
	cells := make([]string, 0, len(raw))
	for _, cell := range raw {
		cells = append(cells, strings.TrimSpace(cell))
	}
	return cells
}
