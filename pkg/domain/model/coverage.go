package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/airegister/pkg/domain/types"
)

// crossFrameworkMinimum is the number of assessed frameworks needed for a cross-framework view
const crossFrameworkMinimum = 2

// Coverage holds the latest assessment of a system per framework. A nil field means not assessed.
type Coverage struct {
	SystemID AISystemID
	EU       *EUAssessment
	UK       *UKAssessment
	NIST     *NISTAssessment
}

// FrameworkCoverage is the presence and headline verdict for one framework
type FrameworkCoverage struct {
	Framework  types.Framework `json:"framework"`
	Label      string          `json:"label"`
	Present    bool            `json:"present"`
	Headline   string          `json:"headline,omitempty"`
	AssessedAt *time.Time      `json:"assessed_at,omitempty"`
}

// Frameworks returns one entry per framework in the fixed order EU, UK, NIST
func (c *Coverage) Frameworks() []FrameworkCoverage {
	out := make([]FrameworkCoverage, 0, 3)

	eu := FrameworkCoverage{Framework: types.FrameworkEUAIAct, Label: types.FrameworkEUAIAct.Label()}
	if c.EU != nil {
		at := c.EU.AssessedAt
		eu.Present = true
		eu.Headline = c.EU.Verdict.Tier.String()
		eu.AssessedAt = &at
	}
	out = append(out, eu)

	uk := FrameworkCoverage{Framework: types.FrameworkUKAI, Label: types.FrameworkUKAI.Label()}
	if c.UK != nil {
		at := c.UK.AssessedAt
		uk.Present = true
		uk.Headline = fmt.Sprintf("%.0f%%", c.UK.Result.OverallScore)
		uk.AssessedAt = &at
	}
	out = append(out, uk)

	nist := FrameworkCoverage{Framework: types.FrameworkNISTRMF, Label: types.FrameworkNISTRMF.Label()}
	if c.NIST != nil {
		at := c.NIST.AssessedAt
		nist.Present = true
		nist.Headline = c.NIST.Result.Maturity.String()
		nist.AssessedAt = &at
	}
	out = append(out, nist)

	return out
}

// PresentCount returns how many frameworks have at least one assessment
func (c *Coverage) PresentCount() int {
	n := 0
	for _, f := range c.Frameworks() {
		if f.Present {
			n++
		}
	}
	return n
}

// CrossFramework reports whether enough frameworks are assessed for a combined view
func (c *Coverage) CrossFramework() bool {
	return c.PresentCount() >= crossFrameworkMinimum
}

// Summary joins the headline of every present framework, e.g.
// "EU AI Act: HIGH_RISK; NIST AI RMF: DEFINED". Empty when nothing is assessed.
func (c *Coverage) Summary() string {
	var parts []string
	for _, f := range c.Frameworks() {
		if f.Present {
			parts = append(parts, f.Label+": "+f.Headline)
		}
	}
	return strings.Join(parts, "; ")
}
