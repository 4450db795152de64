// Package session holds the in-memory state of in-progress intake
// wizards. There is no durable storage: a session lives exactly as long
// as the process, which matches the ephemeral, one-sitting nature of the
// form.
package session

import (
	"time"

	"github.com/casafile/api/internal/models"
)

// Step is one screen of the intake wizard. Steps are ordered and
// navigation moves linearly through them.
type Step string

const (
	StepWelcome     Step = "welcome"
	StepOwners      Step = "owners"
	StepProperties  Step = "properties"
	StepAssignments Step = "assignments"
	StepReview      Step = "review"
)

// Steps is the wizard order.
var Steps = []Step{StepWelcome, StepOwners, StepProperties, StepAssignments, StepReview}

// Status is the submission state of a session. Success is terminal;
// error is terminal but retryable.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Session is one in-progress intake wizard: the form document being
// built, the current step, and the submission status.
type Session struct {
	ID        string           `json:"id"`
	Step      Step             `json:"step"`
	Status    Status           `json:"status"`
	Form      *models.FormData `json:"form"`
	LastError string           `json:"lastError,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Next returns the step after s, or false when s is the last step (or
// unknown).
func Next(s Step) (Step, bool) {
	for i, step := range Steps {
		if step == s && i+1 < len(Steps) {
			return Steps[i+1], true
		}
	}
	return s, false
}

// Prev returns the step before s, or false when s is the first step (or
// unknown).
func Prev(s Step) (Step, bool) {
	for i, step := range Steps {
		if step == s && i > 0 {
			return Steps[i-1], true
		}
	}
	return s, false
}
