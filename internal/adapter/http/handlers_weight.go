package adapthttp

import (
	"net/http"
)

// handleWeightToday reads the weigh-in of ?date (default today) or records a
// new measurement, which always lands on today.
func (s *Server) handleWeightToday(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wd, err := s.weight.Day(r.Context(), s.dateQuery(r))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, wd)

	case http.MethodPut:
		var req struct {
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		wd, err := s.weight.Record(r.Context(), req.Value, req.Unit)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, wd)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	entries, err := s.weight.ListRecent(r.Context(), intQuery(r, "limit", 14))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	deleted, wd, err := s.weight.UndoLast(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"deleted": deleted,
		"today":   wd.Day,
		"entry":   wd.Entry,
		"kg":      wd.Kg,
	})
}
