package domain

// Flag identifies one of the derived booleans attached to an enquiry.
type Flag string

const (
	FlagActiveBeforeCutoff  Flag = "IsActiveBeforeCutoff"
	FlagActiveNow           Flag = "IsActiveNow"
	FlagAdditionAfterCutoff Flag = "AdditionAfterCutoff"
	FlagRemovalAfterCutoff  Flag = "RemovalAfterCutoff"
	FlagHot                 Flag = "IsHot"
	FlagCold                Flag = "IsCold"
)

// AllFlags lists the flags in Data sheet column order.
var AllFlags = []Flag{
	FlagActiveBeforeCutoff,
	FlagActiveNow,
	FlagAdditionAfterCutoff,
	FlagRemovalAfterCutoff,
	FlagHot,
	FlagCold,
}

// Flags holds the week-over-week classification of an enquiry.
type Flags struct {
	IsActiveNow          bool
	IsActiveBeforeCutoff bool
	AdditionAfterCutoff  bool
	RemovalAfterCutoff   bool
	IsHot                bool
	IsCold               bool
}

// Get returns the value of f. Unknown flags read as false.
func (f Flags) Get(flag Flag) bool {
	switch flag {
	case FlagActiveNow:
		return f.IsActiveNow
	case FlagActiveBeforeCutoff:
		return f.IsActiveBeforeCutoff
	case FlagAdditionAfterCutoff:
		return f.AdditionAfterCutoff
	case FlagRemovalAfterCutoff:
		return f.RemovalAfterCutoff
	case FlagHot:
		return f.IsHot
	case FlagCold:
		return f.IsCold
	default:
		return false
	}
}

// Int renders a flag the way the Data sheet stores it.
func (f Flags) Int(flag Flag) int {
	if f.Get(flag) {
		return 1
	}
	return 0
}
