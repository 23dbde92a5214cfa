package usecase

import (
	"fmt"

	"clublog-service/internal/domain/entity"
	"clublog-service/pkg/logger"
	"clublog-service/pkg/utils"
)

// Role is the capacity a person flies in on a given record; it selects
// which qualification keywords apply.
type Role string

const (
	RolePilot      Role = "pilot"
	RoleInstructor Role = "instructor"
	RoleTowPilot   Role = "tow_pilot"
)

// KeywordKey addresses one row of the qualification keyword table.
type KeywordKey struct {
	Logbook entity.LogbookType
	Role    Role
}

// EligibilityConfig is the injected rule table for the validator. The
// keyword lists are matched case and diacritic insensitively against
// the member's category names; an absent row means no category
// requirement for that logbook/role combination.
type EligibilityConfig struct {
	MedicalWarnDays int
	Keywords        map[KeywordKey][]string
}

// DefaultEligibilityConfig returns the club's standard rule table.
func DefaultEligibilityConfig() EligibilityConfig {
	return EligibilityConfig{
		MedicalWarnDays: 30,
		Keywords: map[KeywordKey][]string{
			{entity.LogbookGlider, RolePilot}:      {"piloto de planeador", "piloto planeador"},
			{entity.LogbookGlider, RoleInstructor}: {"instructor de planeador", "instructor planeador"},
			{entity.LogbookEngine, RolePilot}:      {"piloto de avión", "piloto avión"},
			{entity.LogbookEngine, RoleInstructor}: {"instructor de avión", "instructor avión"},
			{entity.LogbookEngine, RoleTowPilot}:   {"piloto remolcador", "remolcador"},
		},
	}
}

// ValidateInput bundles the candidate record with the reference
// entities it was submitted against. Instructor is nil when the record
// carries none.
type ValidateInput struct {
	Record        *entity.FlightRecord
	Pilot         *entity.Pilot
	Instructor    *entity.Pilot
	Aircraft      *entity.Aircraft
	AdminOverride bool
}

// EligibilityValidator checks medical currency, category qualification
// and aircraft airworthiness for a candidate record. It is pure: all
// data arrives in the input and the result is a list of findings.
type EligibilityValidator struct {
	cfg    EligibilityConfig
	logger logger.Logger
}

// NewEligibilityValidator creates a new eligibility validator
func NewEligibilityValidator(cfg EligibilityConfig, logger logger.Logger) *EligibilityValidator {
	return &EligibilityValidator{cfg: cfg, logger: logger}
}

// Validate runs every eligibility rule and returns the collected
// findings. The caller halts on any blocking finding; warnings pass
// through for display.
func (v *EligibilityValidator) Validate(in ValidateInput) []entity.Finding {
	var findings []entity.Finding

	findings = append(findings, v.checkMedical(in.Record, in.Pilot)...)
	if in.Instructor != nil {
		findings = append(findings, v.checkMedical(in.Record, in.Instructor)...)
	}

	findings = append(findings, v.checkCategories(in)...)
	findings = append(findings, v.checkAircraft(in.Record, in.Aircraft)...)

	if len(findings) > 0 {
		v.logger.Info("Eligibility findings",
			"record", in.Record.ID,
			"pilot", in.Record.PilotID,
			"count", len(findings))
	}
	return findings
}

func (v *EligibilityValidator) checkMedical(record *entity.FlightRecord, person *entity.Pilot) []entity.Finding {
	if person.MedicalExpiry == nil {
		return nil
	}

	expiry := entity.DateOnly(*person.MedicalExpiry)
	date := entity.DateOnly(record.Date)

	if expiry.Before(date) {
		return []entity.Finding{{
			Severity: entity.SeverityBlocking,
			Subject:  person.ID,
			Rule:     entity.RuleMedicalExpired,
			Message:  fmt.Sprintf("%s: medical expired on %s", person.FullName(), expiry.Format("2006-01-02")),
		}}
	}

	warnUntil := date.AddDate(0, 0, v.cfg.MedicalWarnDays)
	if !expiry.After(warnUntil) {
		return []entity.Finding{{
			Severity: entity.SeverityWarning,
			Subject:  person.ID,
			Rule:     entity.RuleMedicalExpiring,
			Message:  fmt.Sprintf("%s: medical expires on %s", person.FullName(), expiry.Format("2006-01-02")),
		}}
	}
	return nil
}

func (v *EligibilityValidator) checkCategories(in ValidateInput) []entity.Finding {
	var findings []entity.Finding

	if role, required := v.pilotRole(in.Record); required {
		if f := v.checkCategory(in.Record, in.Pilot, role, in.AdminOverride); f != nil {
			findings = append(findings, *f)
		}
	}

	// On an instruction-given record the attached person is the
	// student, not an instructor, and carries no requirement.
	if in.Instructor != nil && in.Record.Purpose != entity.PurposeInstructionGiven {
		if f := v.checkCategory(in.Record, in.Instructor, RoleInstructor, in.AdminOverride); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// pilotRole maps the record's purpose to the qualification role the
// pilot must hold. Students receiving instruction carry no category
// requirement of their own; the attached instructor does.
func (v *EligibilityValidator) pilotRole(record *entity.FlightRecord) (Role, bool) {
	switch {
	case record.Purpose == entity.PurposeInstructionReceived:
		return "", false
	case record.Purpose.IsTow():
		return RoleTowPilot, true
	case record.Purpose == entity.PurposeInstructionGiven:
		return RoleInstructor, true
	default:
		return RolePilot, true
	}
}

func (v *EligibilityValidator) checkCategory(record *entity.FlightRecord, person *entity.Pilot, role Role, override bool) *entity.Finding {
	keywords, ok := v.cfg.Keywords[KeywordKey{Logbook: record.Logbook, Role: role}]
	if !ok || len(keywords) == 0 {
		return nil
	}

	for _, cat := range person.Categories {
		for _, kw := range keywords {
			if utils.ContainsFold(cat.Name, kw) {
				return nil
			}
		}
	}

	finding := &entity.Finding{
		Severity: entity.SeverityBlocking,
		Subject:  person.ID,
		Rule:     entity.RuleCategoryMissing,
		Message:  fmt.Sprintf("%s holds no %s category for the %s logbook", person.FullName(), role, record.Logbook),
	}
	if override {
		finding.Severity = entity.SeverityWarning
		finding.Message += " (administrative override)"
	}
	return finding
}

func (v *EligibilityValidator) checkAircraft(record *entity.FlightRecord, aircraft *entity.Aircraft) []entity.Finding {
	var findings []entity.Finding

	if aircraft.OutOfService {
		findings = append(findings, entity.Finding{
			Severity: entity.SeverityBlocking,
			Subject:  aircraft.ID,
			Rule:     entity.RuleAircraftOutOfService,
			Message:  fmt.Sprintf("aircraft %s is out of service", aircraft.Registration),
		})
	}

	if aircraft.InsuranceExpiry != nil {
		expiry := entity.DateOnly(*aircraft.InsuranceExpiry)
		if expiry.Before(entity.DateOnly(record.Date)) {
			findings = append(findings, entity.Finding{
				Severity: entity.SeverityBlocking,
				Subject:  aircraft.ID,
				Rule:     entity.RuleAircraftInsuranceExpired,
				Message:  fmt.Sprintf("aircraft %s insurance expired on %s", aircraft.Registration, expiry.Format("2006-01-02")),
			})
		}
	}
	return findings
}
