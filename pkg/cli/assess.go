package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/repository/memory"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// answerFile is the TOML layout of an offline assessment. Each framework
// section is optional; only present sections are scored.
//
//	[eu]
//	high_risk = ["EMPLOYMENT"]
//	[eu.prohibited]
//	social_scoring = false
//	[uk]
//	fairness_metrics = "FULLY_ADDRESSED"
//	[nist]
//	govern_policies = 2.5
type answerFile struct {
	EU   *euAnswerFile      `toml:"eu"`
	UK   map[string]string  `toml:"uk"`
	NIST map[string]float64 `toml:"nist"`
}

type euAnswerFile struct {
	Prohibited map[string]bool `toml:"prohibited"`
	HighRisk   []string        `toml:"high_risk"`
	Limited    map[string]bool `toml:"limited"`
}

func (x *euAnswerFile) answers() eu.Answers {
	answers := eu.NewAnswers()
	for id, v := range x.Prohibited {
		answers.Prohibited[eu.QuestionID(id)] = v
	}
	for _, id := range x.HighRisk {
		answers.HighRisk[eu.CategoryID(id)] = true
	}
	for id, v := range x.Limited {
		answers.Limited[eu.QuestionID(id)] = v
	}
	return answers
}

type assessOutput struct {
	EU   *eu.Verdict  `json:"eu,omitempty"`
	UK   *uk.Result   `json:"uk,omitempty"`
	NIST *nist.Result `json:"nist,omitempty"`
}

func cmdAssess() *cli.Command {
	var path string

	return &cli.Command{
		Name:  "assess",
		Usage: "Score a TOML answer file offline and print the result as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "answers",
				Aliases:     []string{"a"},
				Usage:       "Path to the TOML answer file",
				Required:    true,
				Destination: &path,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// #nosec G304 - path is provided by CLI argument
			data, err := os.ReadFile(path)
			if err != nil {
				return goerr.Wrap(err, "failed to read answer file", goerr.V("path", path))
			}
			return assess(data, os.Stdout)
		},
	}
}

func assess(data []byte, w io.Writer) error {
	var file answerFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return goerr.Wrap(err, "failed to parse answer file")
	}
	if file.EU == nil && file.UK == nil && file.NIST == nil {
		return goerr.New("answer file has no [eu], [uk] or [nist] section")
	}

	// scoring never touches the store
	uc := usecase.New(memory.New())

	var out assessOutput
	if file.EU != nil {
		verdict, err := uc.EU.Classify(file.EU.answers())
		if err != nil {
			return goerr.Wrap(err, "invalid EU answers")
		}
		out.EU = verdict
	}

	if file.UK != nil {
		answers := uk.Answers{}
		for id, level := range file.UK {
			answers[uk.QuestionID(id)] = types.ImplementationLevel(level)
		}
		result, err := uc.UK.Score(answers)
		if err != nil {
			return goerr.Wrap(err, "invalid UK answers")
		}
		out.UK = result
	}

	if file.NIST != nil {
		answers := nist.Answers{}
		for id, value := range file.NIST {
			answers[nist.QuestionID(id)] = value
		}
		result, err := uc.NIST.Score(answers)
		if err != nil {
			return goerr.Wrap(err, "invalid NIST answers")
		}
		out.NIST = result
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}
