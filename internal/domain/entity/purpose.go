package entity

// LogbookType separates glider time from engine time; totals and
// qualification checks never mix the two.
type LogbookType string

const (
	LogbookGlider LogbookType = "glider"
	LogbookEngine LogbookType = "engine"
)

// Valid reports whether the logbook type is one of the known values.
func (l LogbookType) Valid() bool {
	return l == LogbookGlider || l == LogbookEngine
}

// Purpose is the categorical reason a flight was logged. It is a closed
// set: every purpose has a fixed row in the traits table below, so no
// caller ever inspects the human-readable label to decide behavior.
type Purpose string

const (
	PurposeInstructionReceived Purpose = "instruction_received"
	PurposeInstructionGiven    Purpose = "instruction_given"
	PurposeTow                 Purpose = "tow"
	PurposeLocal               Purpose = "local"
	PurposeTrip                Purpose = "trip"
	PurposeSport               Purpose = "sport"
	PurposeCheckFlight         Purpose = "check_flight"
)

type purposeTraits struct {
	instruction bool
	tow         bool
	billable    bool
}

var purposeTable = map[Purpose]purposeTraits{
	PurposeInstructionReceived: {instruction: true, billable: true},
	PurposeInstructionGiven:    {instruction: true, billable: true},
	PurposeTow:                 {tow: true},
	PurposeLocal:               {billable: true},
	PurposeTrip:                {billable: true},
	PurposeSport:               {billable: true},
	PurposeCheckFlight:         {billable: true},
}

// Valid reports whether the purpose is part of the closed set.
func (p Purpose) Valid() bool {
	_, ok := purposeTable[p]
	return ok
}

// IsInstruction reports whether the record is one half of a dual-logged
// instruction flight.
func (p Purpose) IsInstruction() bool {
	return purposeTable[p].instruction
}

// IsTow reports whether the record logs tow operations.
func (p Purpose) IsTow() bool {
	return purposeTable[p].tow
}

// Billable reports whether raw minutes for this purpose are invoiced.
func (p Purpose) Billable() bool {
	return purposeTable[p].billable
}
