package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/interfaces"
	"github.com/secmon-lab/airegister/pkg/domain/model"
)

type ExportUseCase struct {
	repo interfaces.Repository
}

func NewExportUseCase(repo interfaces.Repository) *ExportUseCase {
	return &ExportUseCase{repo: repo}
}

// ExportHeader is the first row of the register CSV
var ExportHeader = []string{
	"id",
	"name",
	"description",
	"owner",
	"department",
	"vendor",
	"risk_classification",
	"eu_assessed_at",
	"uk_overall_score",
	"uk_assessed_at",
	"nist_overall_score",
	"nist_maturity",
	"nist_assessed_at",
	"frameworks_assessed",
	"coverage_summary",
	"created_at",
	"updated_at",
}

// WriteCSV writes one row per system, ordered by name, with the latest verdict of each framework
func (uc *ExportUseCase) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	systems, err := uc.repo.AISystem().List(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list systems")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return 0, goerr.Wrap(err, "failed to write CSV header")
	}

	for _, s := range systems {
		coverage, err := latestCoverage(ctx, uc.repo, s.ID)
		if err != nil {
			return 0, err
		}
		if err := cw.Write(exportRow(s, coverage)); err != nil {
			return 0, goerr.Wrap(err, "failed to write CSV row", goerr.V(SystemIDKey, s.ID))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, goerr.Wrap(err, "failed to flush CSV")
	}
	return len(systems), nil
}

func exportRow(s *model.AISystem, c *model.Coverage) []string {
	row := []string{
		s.ID.String(),
		s.Name,
		s.Description,
		s.Owner,
		s.Department,
		s.Vendor,
		s.RiskClassification.Normalize().String(),
		"", "", "", "", "", "",
		strconv.Itoa(c.PresentCount()),
		c.Summary(),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	}

	if c.EU != nil {
		row[7] = formatTime(c.EU.AssessedAt)
	}
	if c.UK != nil {
		row[8] = fmt.Sprintf("%.1f", c.UK.Result.OverallScore)
		row[9] = formatTime(c.UK.AssessedAt)
	}
	if c.NIST != nil {
		row[10] = fmt.Sprintf("%.2f", c.NIST.Result.OverallScore)
		row[11] = c.NIST.Result.Maturity.String()
		row[12] = formatTime(c.NIST.AssessedAt)
	}
	return row
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
