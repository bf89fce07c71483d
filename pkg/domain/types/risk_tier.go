package types

import "fmt"

// RiskTier is the EU AI Act risk tier of an AI system
type RiskTier string

const (
	RiskTierProhibited     RiskTier = "PROHIBITED"
	RiskTierHighRisk       RiskTier = "HIGH_RISK"
	RiskTierLimitedRisk    RiskTier = "LIMITED_RISK"
	RiskTierMinimalRisk    RiskTier = "MINIMAL_RISK"
	RiskTierNotYetAssessed RiskTier = "NOT_YET_ASSESSED"
)

// AllRiskTiers returns all tiers, most severe first
func AllRiskTiers() []RiskTier {
	return []RiskTier{
		RiskTierProhibited,
		RiskTierHighRisk,
		RiskTierLimitedRisk,
		RiskTierMinimalRisk,
		RiskTierNotYetAssessed,
	}
}

// IsValid checks if the tier is valid
func (t RiskTier) IsValid() bool {
	switch t {
	case RiskTierProhibited,
		RiskTierHighRisk,
		RiskTierLimitedRisk,
		RiskTierMinimalRisk,
		RiskTierNotYetAssessed:
		return true
	default:
		return false
	}
}

// Normalize treats an empty tier as RiskTierNotYetAssessed
func (t RiskTier) Normalize() RiskTier {
	if t == "" {
		return RiskTierNotYetAssessed
	}
	return t
}

// IsAssessed reports whether the tier is the result of an EU assessment
func (t RiskTier) IsAssessed() bool {
	return t.IsValid() && t != RiskTierNotYetAssessed
}

// String returns the string representation of the tier
func (t RiskTier) String() string {
	return string(t)
}

// ParseRiskTier parses a string into a RiskTier
func ParseRiskTier(s string) (RiskTier, error) {
	tier := RiskTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid risk tier: %s", s)
	}
	return tier, nil
}
