package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/airegister/pkg/domain/types"
)

// AISystemID is a UUID-based identifier for AISystem
type AISystemID string

// NewAISystemID generates a new UUID v4 AISystemID
func NewAISystemID() AISystemID {
	return AISystemID(uuid.New().String())
}

func (x AISystemID) String() string {
	return string(x)
}

// AISystem is a registered AI system. RiskClassification mirrors the tier of
// the most recent EU assessment and is only written by the EU assessment save.
type AISystem struct {
	ID                 AISystemID     `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Owner              string         `json:"owner"`
	Department         string         `json:"department"`
	Vendor             string         `json:"vendor"`
	RiskClassification types.RiskTier `json:"risk_classification"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Copy returns a shallow copy; AISystem has no reference fields
func (s *AISystem) Copy() *AISystem {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// NormalizeName trims surrounding whitespace. Uniqueness is checked on the normalized name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
