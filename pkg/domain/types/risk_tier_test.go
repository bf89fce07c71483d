package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

func TestRiskTier_IsValid(t *testing.T) {
	tests := []struct {
		name string
		tier types.RiskTier
		want bool
	}{
		{name: "prohibited", tier: types.RiskTierProhibited, want: true},
		{name: "high risk", tier: types.RiskTierHighRisk, want: true},
		{name: "limited risk", tier: types.RiskTierLimitedRisk, want: true},
		{name: "minimal risk", tier: types.RiskTierMinimalRisk, want: true},
		{name: "not yet assessed", tier: types.RiskTierNotYetAssessed, want: true},
		{name: "lowercase", tier: types.RiskTier("high_risk"), want: false},
		{name: "empty", tier: types.RiskTier(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.tier.IsValid()).Equal(tt.want)
		})
	}
}

func TestRiskTier_Normalize(t *testing.T) {
	gt.V(t, types.RiskTier("").Normalize()).Equal(types.RiskTierNotYetAssessed)
	gt.V(t, types.RiskTierHighRisk.Normalize()).Equal(types.RiskTierHighRisk)
}

func TestRiskTier_IsAssessed(t *testing.T) {
	gt.B(t, types.RiskTierMinimalRisk.IsAssessed()).True()
	gt.B(t, types.RiskTierNotYetAssessed.IsAssessed()).False()
	gt.B(t, types.RiskTier("").IsAssessed()).False()
}

func TestParseRiskTier(t *testing.T) {
	got, err := types.ParseRiskTier("LIMITED_RISK")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.RiskTierLimitedRisk)

	_, err = types.ParseRiskTier("UNACCEPTABLE")
	gt.Error(t, err)
}

func TestAllRiskTiers(t *testing.T) {
	tiers := types.AllRiskTiers()
	gt.A(t, tiers).Length(5)
	gt.V(t, tiers[0]).Equal(types.RiskTierProhibited)
}

func TestMaturityLevel(t *testing.T) {
	for _, level := range types.AllMaturityLevels() {
		parsed, err := types.ParseMaturityLevel(level.String())
		gt.NoError(t, err)
		gt.V(t, parsed).Equal(level)
	}

	_, err := types.ParseMaturityLevel("OPTIMIZING")
	gt.Error(t, err)
}

func TestImplementationLevel_Points(t *testing.T) {
	tests := []struct {
		level types.ImplementationLevel
		want  int
	}{
		{types.NotAddressed, 0},
		{types.PartiallyAddressed, 1},
		{types.FullyAddressed, 2},
		{types.ImplementationLevel("SOMEWHAT"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			gt.V(t, tt.level.Points()).Equal(tt.want)
		})
	}

	gt.V(t, types.FullyAddressed.Points()).Equal(types.MaxImplementationPoints)
}

func TestParseImplementationLevel(t *testing.T) {
	got, err := types.ParseImplementationLevel("PARTIALLY_ADDRESSED")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.PartiallyAddressed)

	_, err = types.ParseImplementationLevel("")
	gt.Error(t, err)
}

func TestFramework(t *testing.T) {
	gt.A(t, types.AllFrameworks()).Length(3)

	f, err := types.ParseFramework("nist")
	gt.NoError(t, err)
	gt.V(t, f.Label()).Equal("NIST AI RMF")

	_, err = types.ParseFramework("iso42001")
	gt.Error(t, err)
}
