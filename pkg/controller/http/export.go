package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/secmon-lab/airegister/pkg/utils/safe"
)

func (s *Server) exportSystemsCSV(w http.ResponseWriter, r *http.Request) {
	// Render fully before writing so that a failure can still produce a 500
	var buf bytes.Buffer
	if _, err := s.uc.Export.WriteCSV(r.Context(), &buf); err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("ai-systems-%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, buf.Bytes())
}
