package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/species"
	"github.com/erazemk/shutils/internal/tracker"
)

// HuntsHandler handles hunt endpoints.
type HuntsHandler struct {
	Tracker *tracker.Tracker
	Species *species.Registry
}

// speciesRef accepts a species as a JSON number or as a key, name or
// "#id" string.
type speciesRef struct {
	raw string
	set bool
}

func (s *speciesRef) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = speciesRef{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = speciesRef{raw: str, set: true}
		return nil
	}
	*s = speciesRef{raw: string(b), set: true}
	return nil
}

func (s speciesRef) resolve(reg *species.Registry, field string) (model.SpeciesID, error) {
	id, ok := reg.Lookup(s.raw)
	if !ok {
		return 0, &model.ValidationError{Field: field, Message: fmt.Sprintf("unknown species %q", s.raw)}
	}
	return id, nil
}

type huntRequest struct {
	Target             speciesRef `json:"target"`
	PreviousEncounters *int64     `json:"previous_encounters"`
	PhaseEncounters    *int64     `json:"phase_encounters"`
	PhaseCount         *int64     `json:"phase_count"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	Completed          *bool      `json:"completed"`
	Version            *string    `json:"version"`
	Method             *string    `json:"method"`
	Place              *string    `json:"place"`
	Notes              *string    `json:"notes"`
}

// apply copies the fields present in the request onto h.
func (req *huntRequest) apply(h *model.Hunt, reg *species.Registry) error {
	if req.Target.set {
		id, err := req.Target.resolve(reg, "target")
		if err != nil {
			return err
		}
		h.Target = id
	}
	if req.PreviousEncounters != nil {
		h.PreviousEncounters = *req.PreviousEncounters
	}
	if req.PhaseEncounters != nil {
		h.PhaseEncounters = *req.PhaseEncounters
	}
	if req.PhaseCount != nil {
		h.PhaseCount = *req.PhaseCount
	}
	if req.StartTime != nil {
		h.StartTime = model.Ptr(req.StartTime.UTC())
	}
	if req.EndTime != nil {
		h.EndTime = model.Ptr(req.EndTime.UTC())
	}
	if req.Completed != nil {
		h.Completed = *req.Completed
	}
	if req.Version != nil {
		h.Version = req.Version
	}
	if req.Method != nil {
		h.Method = req.Method
	}
	if req.Place != nil {
		h.Place = req.Place
	}
	if req.Notes != nil {
		h.Notes = req.Notes
	}
	return nil
}

// huntResponse adds the derived display fields to a hunt.
type huntResponse struct {
	*model.Hunt
	TargetName      string `json:"target_name"`
	Label           string `json:"label"`
	TotalEncounters int64  `json:"total_encounters"`
}

func newHuntResponse(h *model.Hunt, reg *species.Registry) huntResponse {
	return huntResponse{
		Hunt:            h,
		TargetName:      reg.Name(h.Target),
		Label:           h.Label(reg.Name),
		TotalEncounters: h.TotalEncounters(),
	}
}

// List handles GET /api/hunts. ?active=true hides completed hunts.
func (h *HuntsHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	out := []huntResponse{}
	for _, hunt := range h.Tracker.Hunts() {
		if activeOnly && hunt.Completed {
			continue
		}
		out = append(out, newHuntResponse(hunt, h.Species))
	}
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /api/hunts.
func (h *HuntsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req huntRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Target.set {
		jsonError(w, http.StatusBadRequest, "target is required")
		return
	}

	hunt := model.NewHunt(0)
	if req.StartTime == nil {
		req.StartTime = model.Ptr(time.Now().UTC().Truncate(time.Second))
	}
	if err := req.apply(hunt, h.Species); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.Tracker.SaveHunt(r.Context(), hunt)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, newHuntResponse(saved, h.Species))
}

// Get handles GET /api/hunts/{id}.
func (h *HuntsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hunt, err := h.Tracker.Hunt(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newHuntResponse(hunt, h.Species))
}

// Update handles PUT /api/hunts/{id}. Omitted fields keep their value.
func (h *HuntsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req huntRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hunt, err := h.Tracker.Hunt(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.apply(hunt, h.Species); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.Tracker.SaveHunt(r.Context(), hunt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newHuntResponse(saved, h.Species))
}

// Delete handles DELETE /api/hunts/{id}.
func (h *HuntsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Tracker.DeleteHunt(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NewPhase handles POST /api/hunts/{id}/phase.
func (h *HuntsHandler) NewPhase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hunt, err := h.Tracker.NewPhase(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newHuntResponse(hunt, h.Species))
}
