package adapthttp

import (
	"net/http"
)

func (s *Server) handleWaterToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	day := s.dateQuery(r)

	switch r.Method {
	case http.MethodGet:
		water, err := s.water.GetTotal(ctx, day)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"today": s.today(), "water": water})

	case http.MethodPut:
		var body struct {
			TotalMl int `json:"totalMl"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		id, water, err := s.water.Set(ctx, day, body.TotalMl)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "water": water})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleWaterEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		Date    string `json:"date"`
		DeltaMl int    `json:"deltaMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == "" {
		body.Date = s.today()
	}
	id, water, err := s.water.RecordEvent(r.Context(), body.Date, body.DeltaMl)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "water": water})
}

// handleWaterGlass adds (POST) or removes (DELETE) one glass.
func (s *Server) handleWaterGlass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	day := s.dateQuery(r)

	var (
		id  int64
		err error
	)
	switch r.Method {
	case http.MethodPost:
		id, _, err = s.water.AddGlass(ctx, day)
	case http.MethodDelete:
		id, _, err = s.water.RemoveGlass(ctx, day)
	default:
		methodNotAllowed(w)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	water, err := s.water.GetTotal(ctx, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "water": water})
}

func (s *Server) handleWaterRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	limit := intQuery(r, "limit", 20)
	items, err := s.water.ListRecent(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWaterUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	undone, id, err := s.water.UndoLast(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "id": id})
}
