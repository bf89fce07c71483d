package types

import "fmt"

// ImplementationLevel is how far a UK principle question (or a whole principle) is addressed
type ImplementationLevel string

const (
	NotAddressed       ImplementationLevel = "NOT_ADDRESSED"
	PartiallyAddressed ImplementationLevel = "PARTIALLY_ADDRESSED"
	FullyAddressed     ImplementationLevel = "FULLY_ADDRESSED"
)

// MaxImplementationPoints is the point value of FullyAddressed
const MaxImplementationPoints = 2

// AllImplementationLevels returns all levels in ascending order
func AllImplementationLevels() []ImplementationLevel {
	return []ImplementationLevel{
		NotAddressed,
		PartiallyAddressed,
		FullyAddressed,
	}
}

// IsValid checks if the implementation level is valid
func (l ImplementationLevel) IsValid() bool {
	switch l {
	case NotAddressed,
		PartiallyAddressed,
		FullyAddressed:
		return true
	default:
		return false
	}
}

// Points returns 0, 1 or 2. Invalid levels score 0.
func (l ImplementationLevel) Points() int {
	switch l {
	case FullyAddressed:
		return 2
	case PartiallyAddressed:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the implementation level
func (l ImplementationLevel) String() string {
	return string(l)
}

// ParseImplementationLevel parses a string into an ImplementationLevel
func ParseImplementationLevel(s string) (ImplementationLevel, error) {
	level := ImplementationLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid implementation level: %s", s)
	}
	return level, nil
}
