package entity

import (
	"errors"
	"fmt"
)

// Severity of an eligibility finding. Blocking findings halt submission
// unless the specific rule permits an administrative override; warnings
// are surfaced but never halt.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// Rule names carried on findings so callers and tests can assert on
// outcomes deterministically.
const (
	RuleMedicalExpired           = "medical_expired"
	RuleMedicalExpiring          = "medical_expiring"
	RuleCategoryMissing          = "category_missing"
	RuleAircraftOutOfService     = "aircraft_out_of_service"
	RuleAircraftInsuranceExpired = "aircraft_insurance_expired"
)

// Finding is one structured eligibility result. Subject identifies the
// entity the rule fired on (a pilot or aircraft id).
type Finding struct {
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
}

// Blocking reports whether this finding halts submission.
func (f Finding) Blocking() bool {
	return f.Severity == SeverityBlocking
}

// HasBlocking reports whether any finding in the list halts submission.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Blocking() {
			return true
		}
	}
	return false
}

// ConflictKind distinguishes the three ways a candidate can collide
// with existing data.
type ConflictKind string

const (
	ConflictAircraft ConflictKind = "aircraft"
	ConflictPerson   ConflictKind = "person"

	// ConflictStaleData marks a commit the store rejected even though
	// the in-process pre-check passed: a concurrent writer won the
	// slot between snapshot and commit.
	ConflictStaleData ConflictKind = "stale_data"
)

// Conflict describes a scheduling collision. Conflicts are never
// overridable; the caller must change time or resource and resubmit.
type Conflict struct {
	Kind         ConflictKind `json:"kind"`
	SubjectID    string       `json:"subjectId"`
	WithRecordID string       `json:"withRecordId,omitempty"`
	Slot         string       `json:"slot,omitempty"`
	Message      string       `json:"message"`
}

func (c *Conflict) Error() string {
	return c.Message
}

// ValidationError marks malformed input rejected before the engine
// runs: an empty interval, a missing identifier, an unknown purpose.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid flight record: %s %s", e.Field, e.Reason)
}

var (
	// ErrNotFound is returned by stores when a referenced entity does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrStaleSnapshot is returned by the flight store when its own
	// commit-time guard rejects a write that passed the in-process
	// pre-check (read-then-write race).
	ErrStaleSnapshot = errors.New("snapshot stale: slot taken by a concurrent commit")
)
