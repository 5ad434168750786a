package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shutils/internal/export"
	"github.com/erazemk/shutils/internal/species"
	"github.com/erazemk/shutils/internal/store"
	"github.com/erazemk/shutils/internal/tracker"
)

// maxBackupSize bounds YAML imports.
const maxBackupSize = 32 << 20

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BackupHandler handles export and import.
type BackupHandler struct {
	Tracker *tracker.Tracker
	Species *species.Registry
}

// Export handles GET /api/export?format=xlsx|yaml. YAML is the default.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()
	stamp := now.Format("20060102-150405")

	var (
		buf      bytes.Buffer
		mime     string
		filename string
	)

	switch format := r.URL.Query().Get("format"); format {
	case "xlsx":
		shinies, err := h.Tracker.Store().LoadAllShinies(ctx, store.ShinyFilter{})
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := export.WriteXLSX(&buf, h.Tracker.Hunts(), shinies, h.Species.Name); err != nil {
			writeError(w, r, err)
			return
		}
		mime, filename = xlsxMIME, "shutils-"+stamp+".xlsx"
	case "", "yaml":
		b, err := export.Snapshot(ctx, h.Tracker.Store(), now)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := export.WriteBackup(&buf, b); err != nil {
			writeError(w, r, err)
			return
		}
		mime, filename = "application/yaml", "shutils-"+stamp+".yaml"
	default:
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Import handles POST /api/import with a YAML backup body. Imported rows are
// added next to the existing ones.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupSize)
	defer r.Body.Close()

	b, err := export.ReadBackup(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := export.Restore(r.Context(), h.Tracker.Store(), b)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Tracker.Load(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("backup imported", "hunts", res.Hunts, "shinies", res.Shinies)
	jsonResponse(w, http.StatusOK, res)
}
