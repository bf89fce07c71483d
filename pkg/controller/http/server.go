package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalogs/{framework}", s.getCatalog)

		r.Post("/eu/classify", s.classifyEU)
		r.Post("/eu/wizard", s.wizardEU)
		r.Post("/uk/score", s.scoreUK)
		r.Post("/nist/score", s.scoreNIST)

		r.Route("/systems", func(r chi.Router) {
			r.Get("/", s.listSystems)
			r.Post("/", s.createSystem)
			r.Get("/summary", s.systemSummary)

			r.Route("/{systemID}", func(r chi.Router) {
				r.Get("/", s.getSystem)
				r.Put("/", s.updateSystem)
				r.Delete("/", s.deleteSystem)
				r.Get("/coverage", s.getCoverage)

				r.Route("/assessments", func(r chi.Router) {
					r.Get("/eu", s.listEUAssessments)
					r.Post("/eu", s.saveEUAssessment)
					r.Get("/eu/latest", s.latestEUAssessment)

					r.Get("/uk", s.listUKAssessments)
					r.Post("/uk", s.saveUKAssessment)
					r.Get("/uk/latest", s.latestUKAssessment)

					r.Get("/nist", s.listNISTAssessments)
					r.Post("/nist", s.saveNISTAssessment)
					r.Get("/nist/latest", s.latestNISTAssessment)
				})
			})
		})

		r.Get("/export/systems.csv", s.exportSystemsCSV)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger stores a logger tagged with the request ID in the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
