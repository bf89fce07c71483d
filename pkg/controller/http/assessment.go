package http

import (
	"net/http"

	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
	"github.com/secmon-lab/airegister/pkg/usecase"
)

type saveEURequest struct {
	usecase.AssessmentInput
	Answers eu.Answers `json:"answers"`
}

type saveUKRequest struct {
	usecase.AssessmentInput
	Answers uk.Answers `json:"answers"`
}

type saveNISTRequest struct {
	usecase.AssessmentInput
	Answers nist.Answers `json:"answers"`
}

type historyResponse[T any] struct {
	Assessments []T `json:"assessments"`
}

func (s *Server) saveEUAssessment(w http.ResponseWriter, r *http.Request) {
	var req saveEURequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.uc.EU.Save(r.Context(), systemIDParam(r), req.Answers, req.AssessmentInput)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listEUAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.EU.History(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, historyResponse[*model.EUAssessment]{Assessments: list})
}

func (s *Server) latestEUAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := s.uc.EU.Latest(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) saveUKAssessment(w http.ResponseWriter, r *http.Request) {
	var req saveUKRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.uc.UK.Save(r.Context(), systemIDParam(r), req.Answers, req.AssessmentInput)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listUKAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.UK.History(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, historyResponse[*model.UKAssessment]{Assessments: list})
}

func (s *Server) latestUKAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := s.uc.UK.Latest(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) saveNISTAssessment(w http.ResponseWriter, r *http.Request) {
	var req saveNISTRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.uc.NIST.Save(r.Context(), systemIDParam(r), req.Answers, req.AssessmentInput)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listNISTAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.NIST.History(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, historyResponse[*model.NISTAssessment]{Assessments: list})
}

func (s *Server) latestNISTAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := s.uc.NIST.Latest(r.Context(), systemIDParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}
