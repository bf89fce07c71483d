package http

import (
	"net/http"

	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/usecase"
)

type systemListResponse struct {
	Systems []*model.AISystem `json:"systems"`
}

func (s *Server) listSystems(w http.ResponseWriter, r *http.Request) {
	systems, err := s.uc.System.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, systemListResponse{Systems: systems})
}

func (s *Server) createSystem(w http.ResponseWriter, r *http.Request) {
	var input usecase.SystemInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.uc.System.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getSystem(w http.ResponseWriter, r *http.Request) {
	system, err := s.uc.System.Get(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, system)
}

func (s *Server) updateSystem(w http.ResponseWriter, r *http.Request) {
	var input usecase.SystemInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.uc.System.Update(r.Context(), systemIDParam(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteSystem(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.System.Delete(r.Context(), systemIDParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type summaryResponse struct {
	Total  int                    `json:"total"`
	Counts map[types.RiskTier]int `json:"counts"`
}

func (s *Server) systemSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := s.uc.System.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	writeJSON(w, r, http.StatusOK, summaryResponse{Total: total, Counts: counts})
}

type coverageResponse struct {
	SystemID       model.AISystemID          `json:"system_id"`
	Frameworks     []model.FrameworkCoverage `json:"frameworks"`
	PresentCount   int                       `json:"present_count"`
	CrossFramework bool                      `json:"cross_framework"`
	Summary        string                    `json:"summary"`
}

func (s *Server) getCoverage(w http.ResponseWriter, r *http.Request) {
	coverage, err := s.uc.Coverage.Get(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, coverageResponse{
		SystemID:       coverage.SystemID,
		Frameworks:     coverage.Frameworks(),
		PresentCount:   coverage.PresentCount(),
		CrossFramework: coverage.CrossFramework(),
		Summary:        coverage.Summary(),
	})
}
