package types

import "fmt"

// MaturityLevel is the NIST AI RMF maturity bucket
type MaturityLevel string

const (
	MaturityInitial    MaturityLevel = "INITIAL"
	MaturityDeveloping MaturityLevel = "DEVELOPING"
	MaturityDefined    MaturityLevel = "DEFINED"
	MaturityManaged    MaturityLevel = "MANAGED"
	MaturityOptimising MaturityLevel = "OPTIMISING"
)

// AllMaturityLevels returns all maturity levels in ascending order
func AllMaturityLevels() []MaturityLevel {
	return []MaturityLevel{
		MaturityInitial,
		MaturityDeveloping,
		MaturityDefined,
		MaturityManaged,
		MaturityOptimising,
	}
}

// IsValid checks if the maturity level is valid
func (m MaturityLevel) IsValid() bool {
	switch m {
	case MaturityInitial,
		MaturityDeveloping,
		MaturityDefined,
		MaturityManaged,
		MaturityOptimising:
		return true
	default:
		return false
	}
}

// String returns the string representation of the maturity level
func (m MaturityLevel) String() string {
	return string(m)
}

// ParseMaturityLevel parses a string into a MaturityLevel
func ParseMaturityLevel(s string) (MaturityLevel, error) {
	level := MaturityLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid maturity level: %s", s)
	}
	return level, nil
}
