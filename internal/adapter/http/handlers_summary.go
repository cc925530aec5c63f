package adapthttp

import (
	"net/http"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

func (s *Server) handleSummaryDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	sum, err := s.summary.Daily(r.Context(), s.dateQuery(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleSummaryRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	days := intQuery(r, "days", 30)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKg
	}
	today := s.today()

	sum, err := s.summary.Range(r.Context(), today, days, unit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"today":   today,
		"unit":    unit,
		"summary": sum,
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	st, err := s.summary.Streak(r.Context(), s.dateQuery(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	day := s.dateQuery(r)
	items, err := s.summary.Insights(r.Context(), day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day, "items": items})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rec, err := s.summary.Recommendations(r.Context(), s.dateQuery(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
