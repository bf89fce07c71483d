package types

import "fmt"

// Framework identifies an external regulatory framework an AI system is assessed against
type Framework string

const (
	FrameworkEUAIAct Framework = "eu"
	FrameworkUKAI    Framework = "uk"
	FrameworkNISTRMF Framework = "nist"
)

// AllFrameworks returns all supported frameworks
func AllFrameworks() []Framework {
	return []Framework{
		FrameworkEUAIAct,
		FrameworkUKAI,
		FrameworkNISTRMF,
	}
}

// IsValid checks if the framework is supported
func (f Framework) IsValid() bool {
	switch f {
	case FrameworkEUAIAct,
		FrameworkUKAI,
		FrameworkNISTRMF:
		return true
	default:
		return false
	}
}

// Label returns the human readable framework name
func (f Framework) Label() string {
	switch f {
	case FrameworkEUAIAct:
		return "EU AI Act"
	case FrameworkUKAI:
		return "UK AI Principles"
	case FrameworkNISTRMF:
		return "NIST AI RMF"
	default:
		return string(f)
	}
}

// String returns the string representation of the framework
func (f Framework) String() string {
	return string(f)
}

// ParseFramework parses a string into a Framework
func ParseFramework(s string) (Framework, error) {
	f := Framework(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid framework: %s", s)
	}
	return f, nil
}
