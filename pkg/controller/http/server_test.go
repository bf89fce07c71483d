package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/airegister/pkg/controller/http"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/repository/memory"
	"github.com/secmon-lab/airegister/pkg/usecase"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	return httpctrl.New(usecase.New(memory.New()))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func createSystem(t *testing.T, h http.Handler, name string) *model.AISystem {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/systems", map[string]string{"name": name, "owner": "alice"})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	return decode[*model.AISystem](t, w)
}

func TestCatalogs(t *testing.T) {
	h := newServer(t)

	for _, fw := range []string{"eu", "uk", "nist"} {
		w := do(t, h, http.MethodGet, "/api/catalogs/"+fw, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[map[string]any](t, w)
		gt.Value(t, body["version"] != nil).Equal(true)
	}

	w := do(t, h, http.MethodGet, "/api/catalogs/iso", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestPreviewEndpoints(t *testing.T) {
	h := newServer(t)

	t.Run("EU classify", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/eu/classify", `{"answers":{"high_risk":{"EMPLOYMENT":true}}}`)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[map[string]any](t, w)
		gt.Value(t, body["tier"]).Equal("HIGH_RISK")
		gt.Value(t, body["ce_marking_required"]).Equal(true)
	})

	t.Run("EU classify rejects unknown question", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/eu/classify", `{"answers":{"prohibited":{"telepathy":true}}}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("EU classify rejects bare answers", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/eu/classify", `{"high_risk":{"EMPLOYMENT":true}}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("EU wizard shortcut", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/eu/wizard", `{"step":"PROHIBITED_STEP","action":"update","answers":{"prohibited":{"social_scoring":true}}}`)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		state := decode[usecase.WizardState](t, w)
		gt.Value(t, state.Step).Equal("RESULT")
		gt.Value(t, state.Verdict.Tier).Equal(types.RiskTierProhibited)
	})

	t.Run("EU wizard incomplete step", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/eu/wizard", `{"step":"PROHIBITED_STEP","action":"advance","answers":{}}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("UK score", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/uk/score", `{"answers":{"fairness_metrics":"FULLY_ADDRESSED"}}`)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[map[string]any](t, w)
		gt.Value(t, body["overall_score"]).Equal(4.0)
	})

	t.Run("NIST score rejects out of range", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/nist/score", `{"answers":{"govern_policies":7}}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/nist/score", `{"answers":`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestSystemLifecycle(t *testing.T) {
	h := newServer(t)
	sys := createSystem(t, h, "Face Gate")
	gt.Value(t, sys.RiskClassification).Equal(types.RiskTierNotYetAssessed)

	base := "/api/systems/" + sys.ID.String()

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/systems", map[string]string{"name": "Face Gate"})
		gt.Value(t, w.Code).Equal(http.StatusConflict)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/systems", map[string]string{"name": " "})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("latest before any assessment is 404", func(t *testing.T) {
		w := do(t, h, http.MethodGet, base+"/assessments/eu/latest", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("EU save updates classification", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/assessments/eu", `{"assessor":"bob","answers":{"high_risk":{"BIOMETRIC_IDENTIFICATION":true}}}`)
		gt.Value(t, w.Code).Equal(http.StatusCreated)
		a := decode[*model.EUAssessment](t, w)
		gt.Value(t, a.Verdict.Tier).Equal(types.RiskTierHighRisk)

		w = do(t, h, http.MethodGet, base, nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.AISystem](t, w)
		gt.Value(t, got.RiskClassification).Equal(types.RiskTierHighRisk)
	})

	t.Run("blank assessor is rejected", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/assessments/uk", `{"assessor":"","answers":{}}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("NIST save and history", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/assessments/nist", `{"assessor":"bob","answers":{"govern_policies":2.5}}`)
		gt.Value(t, w.Code).Equal(http.StatusCreated)

		w = do(t, h, http.MethodGet, base+"/assessments/nist", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Assessments []*model.NISTAssessment `json:"assessments"`
		}](t, w)
		gt.Array(t, body.Assessments).Length(1)
	})

	t.Run("coverage", func(t *testing.T) {
		w := do(t, h, http.MethodGet, base+"/coverage", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[map[string]any](t, w)
		gt.Value(t, body["cross_framework"]).Equal(true)
		gt.Value(t, body["summary"]).Equal("EU AI Act: HIGH_RISK; NIST AI RMF: INITIAL")
	})

	t.Run("summary", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/systems/summary", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Total  int            `json:"total"`
			Counts map[string]int `json:"counts"`
		}](t, w)
		gt.Value(t, body.Total).Equal(1)
		gt.Value(t, body.Counts["HIGH_RISK"]).Equal(1)
	})

	t.Run("export CSV", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/export/systems.csv", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Header().Get("Content-Type")).Contains("text/csv")
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		gt.Array(t, lines).Length(2)
		gt.String(t, lines[1]).Contains("Face Gate")
	})

	t.Run("update and delete", func(t *testing.T) {
		w := do(t, h, http.MethodPut, base, map[string]string{"name": "Face Gate v2"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode[*model.AISystem](t, w).RiskClassification).Equal(types.RiskTierHighRisk)

		w = do(t, h, http.MethodDelete, base, nil)
		gt.Value(t, w.Code).Equal(http.StatusNoContent)

		w = do(t, h, http.MethodGet, base, nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestUnknownSystem(t *testing.T) {
	h := newServer(t)
	w := do(t, h, http.MethodGet, "/api/systems/"+model.NewAISystemID().String()+"/coverage", nil)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)

	w = do(t, h, http.MethodPost, "/api/systems/"+model.NewAISystemID().String()+"/assessments/eu", `{"assessor":"a","answers":{}}`)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)
}
