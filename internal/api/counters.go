package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/shutils/internal/counter"
	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/species"
	"github.com/erazemk/shutils/internal/tracker"
)

// CountersHandler handles counter endpoints.
type CountersHandler struct {
	Tracker *tracker.Tracker
	Species *species.Registry
}

type actionRequest struct {
	Kind  string `json:"kind"`
	Value *int64 `json:"value"`
}

type foundRequest struct {
	Species   speciesRef    `json:"species"`
	Gender    *model.Gender `json:"gender"`
	Name      *string       `json:"name"`
	Notes     *string       `json:"notes"`
	FoundTime *time.Time    `json:"found_time"`
}

type foundResponse struct {
	Hunt      huntResponse  `json:"hunt"`
	Shiny     shinyResponse `json:"shiny"`
	Completed bool          `json:"completed"`
}

func counterIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "n"))
}

// List handles GET /api/counters.
func (h *CountersHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Tracker.Counters())
}

// Increment handles POST /api/counters/{n}/increment.
func (h *CountersHandler) Increment(w http.ResponseWriter, r *http.Request) {
	n, err := counterIndex(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid counter index")
		return
	}

	view, err := h.Tracker.Increment(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Decrement handles POST /api/counters/{n}/decrement.
func (h *CountersHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	n, err := counterIndex(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid counter index")
		return
	}

	view, err := h.Tracker.Decrement(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Edit handles PUT /api/counters/{n} with one edit action.
func (h *CountersHandler) Edit(w http.ResponseWriter, r *http.Request) {
	n, err := counterIndex(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid counter index")
		return
	}

	var req actionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := counter.ParseActionKind(req.Kind)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	action := counter.Action{Kind: kind}
	if kind != counter.ActionUnsetHunt {
		if req.Value == nil {
			jsonError(w, http.StatusBadRequest, "value is required")
			return
		}
		action.Value = *req.Value
	}

	view, err := h.Tracker.Perform(r.Context(), n, action)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, view)
}

// Shiny handles POST /api/counters/{n}/shiny. The body is optional.
func (h *CountersHandler) Shiny(w http.ResponseWriter, r *http.Request) {
	n, err := counterIndex(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid counter index")
		return
	}

	var req foundRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details := tracker.FoundDetails{
		Gender:    req.Gender,
		Name:      req.Name,
		Notes:     req.Notes,
		FoundTime: req.FoundTime,
	}
	if req.Species.set {
		id, err := req.Species.resolve(h.Species, "species")
		if err != nil {
			writeError(w, r, err)
			return
		}
		details.Species = &id
	}

	res, err := h.Tracker.ShinyFound(r.Context(), n, details)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, foundResponse{
		Hunt:      newHuntResponse(res.Hunt, h.Species),
		Shiny:     newShinyResponse(res.Shiny, h.Species),
		Completed: res.Completed,
	})
}
