package adapthttp

import (
	"errors"
	"net/http"

	"github.com/Joshua-Precious/Nutrical/internal/app"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// logFoodRequest logs either a per-100 g product scaled to a serving or a
// manual entry whose totals are already computed.
type logFoodRequest struct {
	Product     *domain.Product      `json:"product,omitempty"`
	Entry       *domain.FoodLogEntry `json:"entry,omitempty"`
	Date        string               `json:"date"`
	Meal        domain.Meal          `json:"meal"`
	ServingQty  float64              `json:"servingQty"`
	ServingUnit string               `json:"servingUnit"`
}

func (s *Server) handleFoodLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req logFoodRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if (req.Product == nil) == (req.Entry == nil) {
		writeError(w, http.StatusBadRequest, errors.New("exactly one of product or entry is required"))
		return
	}

	var (
		entry *domain.FoodLogEntry
		err   error
	)
	if req.Product != nil {
		date := req.Date
		if date == "" {
			date = s.today()
		}
		entry, err = s.foodLog.LogProduct(r.Context(), app.ProductLog{
			Product:     *req.Product,
			Date:        date,
			Meal:        req.Meal,
			ServingQty:  req.ServingQty,
			ServingUnit: req.ServingUnit,
		})
	} else {
		e := *req.Entry
		if e.Date == "" {
			e.Date = s.today()
		}
		entry, err = s.foodLog.LogEntry(r.Context(), e)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleFoodEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPut:
		var u app.EntryUpdate
		if err := parseJSON(r, &u); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.foodLog.Edit(r.Context(), id, u)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})

	case http.MethodDelete:
		entry, err := s.foodLog.Delete(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": entry})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleFoodRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var e domain.FoodLogEntry
	if err := parseJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.foodLog.Restore(r.Context(), e)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleFoodDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	day := s.dateQuery(r)
	items, err := s.foodLog.ListDay(r.Context(), day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day, "items": items})
}
