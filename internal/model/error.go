package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for the model package.
var (
	ErrNotFound   = errors.New("artifact not found in registry")
	ErrLoadFailed = errors.New("artifact failed to load")
)

// Stage is the step of artifact acquisition that failed.
type Stage string

const (
	StageFetch Stage = "fetch"
	StageLoad  Stage = "load"
)

// Hint is one remediation option shown to the operator.
type Hint struct {
	Title   string
	Example string
}

// AcquisitionError reports an artifact that could not be made available.
// Callers must not start serving when they receive one.
type AcquisitionError struct {
	Artifact string
	File     string
	Stage    Stage
	Err      error
	Hints    []Hint
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Stage, e.File, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// Diagnostic renders the operator-facing failure block.
func (e *AcquisitionError) Diagnostic() string {
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nERROR: Could not load %s\n%s\n", rule, e.File, rule)
	fmt.Fprintf(&b, "Reason: %v\n", e.Err)

	if len(e.Hints) > 0 {
		b.WriteString("\nTroubleshooting:\n")
		for i, h := range e.Hints {
			fmt.Fprintf(&b, "%d. %s:\n   %s\n", i+1, h.Title, h.Example)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)

	return b.String()
}
