package service

import (
	"strings"
)

// FreeStepCount is how many steps of a premium recipe a non-entitled viewer sees.
const FreeStepCount = 2

// SplitSteps splits newline-delimited instructions into ordered steps.
func SplitSteps(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// RedactInstructions returns the steps visible to the viewer and how many were withheld.
// The input slice is never modified.
func RedactInstructions(steps []string, isPremium, entitled bool) ([]string, int) {
	if !isPremium || entitled || len(steps) <= FreeStepCount {
		visible := make([]string, len(steps))
		copy(visible, steps)
		return visible, 0
	}

	visible := make([]string, FreeStepCount)
	copy(visible, steps[:FreeStepCount])
	return visible, len(steps) - FreeStepCount
}
