package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/erazemk/shutils/internal/imaging"
	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/species"
	"github.com/erazemk/shutils/internal/store"
	"github.com/erazemk/shutils/internal/tracker"
)

// maxImageSize bounds screenshot uploads.
const maxImageSize = 8 << 20

// ShiniesHandler handles shiny endpoints.
type ShiniesHandler struct {
	Tracker *tracker.Tracker
	Species *species.Registry
}

type shinyRequest struct {
	Species         speciesRef    `json:"species"`
	Gender          *model.Gender `json:"gender"`
	Name            *string       `json:"name"`
	TotalEncounters *int64        `json:"total_encounters"`
	PhaseEncounters *int64        `json:"phase_encounters"`
	PhaseNumber     *int64        `json:"phase_number"`
	FoundTime       *time.Time    `json:"found_time"`
	Version         *string       `json:"version"`
	Method          *string       `json:"method"`
	Place           *string       `json:"place"`
	Notes           *string       `json:"notes"`
	HuntID          *int64        `json:"hunt_id"`
	// Detach clears the hunt attribution on update.
	Detach bool `json:"detach"`
}

func (req *shinyRequest) apply(s *model.Shiny, reg *species.Registry) error {
	if req.Species.set {
		id, err := req.Species.resolve(reg, "species")
		if err != nil {
			return err
		}
		s.Species = id
	}
	if req.Gender != nil {
		s.Gender = req.Gender
	}
	if req.Name != nil {
		s.Name = req.Name
	}
	if req.TotalEncounters != nil {
		s.TotalEncounters = req.TotalEncounters
	}
	if req.PhaseEncounters != nil {
		s.PhaseEncounters = req.PhaseEncounters
	}
	if req.PhaseNumber != nil {
		s.PhaseNumber = req.PhaseNumber
	}
	if req.FoundTime != nil {
		s.FoundTime = model.Ptr(req.FoundTime.UTC())
	}
	if req.Version != nil {
		s.Version = req.Version
	}
	if req.Method != nil {
		s.Method = req.Method
	}
	if req.Place != nil {
		s.Place = req.Place
	}
	if req.Notes != nil {
		s.Notes = req.Notes
	}
	if req.HuntID != nil {
		s.HuntID = req.HuntID
	}
	if req.Detach {
		s.HuntID = nil
	}
	return nil
}

type shinyResponse struct {
	*model.Shiny
	SpeciesName string `json:"species_name"`
}

func newShinyResponse(s *model.Shiny, reg *species.Registry) shinyResponse {
	return shinyResponse{Shiny: s, SpeciesName: reg.Name(s.Species)}
}

// List handles GET /api/shinies with optional species, hunt, method and
// detached filters.
func (h *ShiniesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f store.ShinyFilter

	if v := q.Get("species"); v != "" {
		id, ok := h.Species.Lookup(v)
		if !ok {
			jsonError(w, http.StatusBadRequest, "unknown species")
			return
		}
		f.Species = &id
	}
	if v := q.Get("hunt"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid hunt id")
			return
		}
		f.HuntID = &id
	}
	f.Method = q.Get("method")
	f.Detached = q.Get("detached") == "true"

	shinies, err := h.Tracker.Store().LoadAllShinies(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]shinyResponse, len(shinies))
	for i, s := range shinies {
		out[i] = newShinyResponse(s, h.Species)
	}
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /api/shinies.
func (h *ShiniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shinyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Species.set {
		jsonError(w, http.StatusBadRequest, "species is required")
		return
	}

	shiny := &model.Shiny{}
	if err := req.apply(shiny, h.Species); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.Tracker.SaveShiny(r.Context(), shiny)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, newShinyResponse(saved, h.Species))
}

// Get handles GET /api/shinies/{id}.
func (h *ShiniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	shiny, err := h.Tracker.Store().LoadShiny(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newShinyResponse(shiny, h.Species))
}

// Update handles PUT /api/shinies/{id}. Omitted fields keep their value.
func (h *ShiniesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req shinyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shiny, err := h.Tracker.Store().LoadShiny(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.apply(shiny, h.Species); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.Tracker.SaveShiny(r.Context(), shiny)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newShinyResponse(saved, h.Species))
}

// Delete handles DELETE /api/shinies/{id}.
func (h *ShiniesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Tracker.DeleteShiny(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles PUT /api/shinies/{id}/image with a multipart "image"
// field.
func (h *ShiniesHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.Tracker.Store().SetShinyImage(r.Context(), &model.ShinyImage{
		ShinyID: id,
		Data:    processed.Data,
		MIME:    processed.MIME,
		Width:   processed.Width,
		Height:  processed.Height,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "image uploaded",
		"width":   processed.Width,
		"height":  processed.Height,
	})
}

// GetImage handles GET /api/shinies/{id}/image.
func (h *ShiniesHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := h.Tracker.Store().LoadShinyImage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(img.Data)
}
