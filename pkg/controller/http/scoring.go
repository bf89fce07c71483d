package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/eu"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/nist"
	"github.com/secmon-lab/airegister/pkg/domain/scoring/uk"
	"github.com/secmon-lab/airegister/pkg/domain/types"
	"github.com/secmon-lab/airegister/pkg/usecase"
)

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	framework, err := types.ParseFramework(chi.URLParam(r, "framework"))
	if err != nil {
		writeError(w, r, goerr.Wrap(usecase.ErrInvalidFramework, err.Error()))
		return
	}

	switch framework {
	case types.FrameworkEUAIAct:
		writeJSON(w, r, http.StatusOK, eu.GetCatalog())
	case types.FrameworkUKAI:
		writeJSON(w, r, http.StatusOK, uk.GetCatalog())
	case types.FrameworkNISTRMF:
		writeJSON(w, r, http.StatusOK, nist.GetCatalog())
	}
}

type euClassifyRequest struct {
	Answers eu.Answers `json:"answers"`
}

func (s *Server) classifyEU(w http.ResponseWriter, r *http.Request) {
	var req euClassifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	verdict, err := s.uc.EU.Classify(req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, verdict)
}

type wizardRequest struct {
	Step    eu.Step    `json:"step"`
	Action  eu.Action  `json:"action"`
	Answers eu.Answers `json:"answers"`
}

func (s *Server) wizardEU(w http.ResponseWriter, r *http.Request) {
	var req wizardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	state, err := s.uc.EU.Wizard(req.Step, req.Answers, req.Action)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

type ukScoreRequest struct {
	Answers uk.Answers `json:"answers"`
}

func (s *Server) scoreUK(w http.ResponseWriter, r *http.Request) {
	var req ukScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.uc.UK.Score(req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

type nistScoreRequest struct {
	Answers nist.Answers `json:"answers"`
}

func (s *Server) scoreNIST(w http.ResponseWriter, r *http.Request) {
	var req nistScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.uc.NIST.Score(req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
