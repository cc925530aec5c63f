package adapthttp

import (
	"net/http"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

func (s *Server) handleCustomFoods(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.foods.ListCustomFoods(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var f domain.CustomFood
		if err := parseJSON(r, &f); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := s.foods.AddCustomFood(r.Context(), f)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"food": saved})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCustomFood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	if err := s.foods.DeleteCustomFood(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleCustomFoodLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		Date        string      `json:"date"`
		Meal        domain.Meal `json:"meal"`
		ServingQty  float64     `json:"servingQty"`
		ServingUnit string      `json:"servingUnit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == "" {
		body.Date = s.today()
	}
	entry, err := s.foodLog.LogCustomFood(r.Context(), r.PathValue("id"), body.Date, body.Meal, body.ServingQty, body.ServingUnit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.foods.ListRecipes(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var rec domain.Recipe
		if err := parseJSON(r, &rec); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		saved, err := s.foods.AddRecipe(r.Context(), rec)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"recipe": saved})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		rec, err := s.foods.GetRecipe(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"recipe": rec})

	case http.MethodDelete:
		if err := s.foods.DeleteRecipe(r.Context(), id); err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleRecipeLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var body struct {
		Date     string      `json:"date"`
		Meal     domain.Meal `json:"meal"`
		Servings float64     `json:"servings"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == "" {
		body.Date = s.today()
	}
	entry, err := s.foodLog.LogRecipe(r.Context(), r.PathValue("id"), body.Date, body.Meal, body.Servings)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}
