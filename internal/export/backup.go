// Package export writes hunts and shinies to spreadsheets and YAML backups
// and reads backups back in.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/store"
)

// BackupVersion is the format version written to new backups.
const BackupVersion = 1

// Backup is the YAML document written by WriteBackup.
type Backup struct {
	Version    int           `yaml:"version"`
	ExportedAt time.Time     `yaml:"exported_at"`
	Hunts      []HuntRecord  `yaml:"hunts"`
	Shinies    []ShinyRecord `yaml:"shinies,omitempty"`
}

// HuntRecord is a hunt as stored in a backup, with its shinies nested.
type HuntRecord struct {
	ID                 int64           `yaml:"id"`
	Target             model.SpeciesID `yaml:"target"`
	PreviousEncounters int64           `yaml:"previous_encounters"`
	PhaseEncounters    int64           `yaml:"phase_encounters"`
	PhaseCount         int64           `yaml:"phase_count"`
	StartTime          *time.Time      `yaml:"start_time,omitempty"`
	EndTime            *time.Time      `yaml:"end_time,omitempty"`
	Completed          bool            `yaml:"completed"`
	Version            *string         `yaml:"version,omitempty"`
	Method             *string         `yaml:"method,omitempty"`
	Place              *string         `yaml:"place,omitempty"`
	Notes              *string         `yaml:"notes,omitempty"`
	Shinies            []ShinyRecord   `yaml:"shinies,omitempty"`
}

// ShinyRecord is a shiny as stored in a backup.
type ShinyRecord struct {
	ID              int64           `yaml:"id"`
	Species         model.SpeciesID `yaml:"species"`
	Gender          *model.Gender   `yaml:"gender,omitempty"`
	Name            *string         `yaml:"name,omitempty"`
	TotalEncounters *int64          `yaml:"total_encounters,omitempty"`
	PhaseEncounters *int64          `yaml:"phase_encounters,omitempty"`
	PhaseNumber     *int64          `yaml:"phase_number,omitempty"`
	FoundTime       *time.Time      `yaml:"found_time,omitempty"`
	Version         *string         `yaml:"version,omitempty"`
	Method          *string         `yaml:"method,omitempty"`
	Place           *string         `yaml:"place,omitempty"`
	Notes           *string         `yaml:"notes,omitempty"`
}

// NewBackup builds a backup of hunts (with their shinies) and the shinies
// that belong to no hunt.
func NewBackup(hunts []*model.Hunt, detached []*model.Shiny, now time.Time) *Backup {
	b := &Backup{
		Version:    BackupVersion,
		ExportedAt: now.UTC(),
		Hunts:      make([]HuntRecord, 0, len(hunts)),
	}
	for _, h := range hunts {
		rec := HuntRecord{
			ID:                 h.ID,
			Target:             h.Target,
			PreviousEncounters: h.PreviousEncounters,
			PhaseEncounters:    h.PhaseEncounters,
			PhaseCount:         h.PhaseCount,
			StartTime:          h.StartTime,
			EndTime:            h.EndTime,
			Completed:          h.Completed,
			Version:            h.Version,
			Method:             h.Method,
			Place:              h.Place,
			Notes:              h.Notes,
		}
		for _, sh := range h.Shinies {
			rec.Shinies = append(rec.Shinies, shinyRecord(sh))
		}
		b.Hunts = append(b.Hunts, rec)
	}
	for _, sh := range detached {
		b.Shinies = append(b.Shinies, shinyRecord(sh))
	}
	return b
}

// WriteBackup encodes b as YAML.
func WriteBackup(w io.Writer, b *Backup) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return enc.Close()
}

// ReadBackup decodes a YAML backup and checks its version.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if err == io.EOF {
			return nil, &model.ValidationError{Field: "backup", Message: "empty document"}
		}
		return nil, &model.ValidationError{Field: "backup", Message: err.Error()}
	}
	if b.Version != BackupVersion {
		return nil, &model.ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported backup version %d (want %d)", b.Version, BackupVersion),
		}
	}
	return &b, nil
}

// Models converts the backup back to hunts with nested shinies and the
// detached shinies.
func (b *Backup) Models() ([]*model.Hunt, []*model.Shiny) {
	hunts := make([]*model.Hunt, 0, len(b.Hunts))
	for _, rec := range b.Hunts {
		h := &model.Hunt{
			ID:                 rec.ID,
			Target:             rec.Target,
			PreviousEncounters: rec.PreviousEncounters,
			PhaseEncounters:    rec.PhaseEncounters,
			PhaseCount:         rec.PhaseCount,
			StartTime:          rec.StartTime,
			EndTime:            rec.EndTime,
			Completed:          rec.Completed,
			Version:            rec.Version,
			Method:             rec.Method,
			Place:              rec.Place,
			Notes:              rec.Notes,
			Shinies:            []*model.Shiny{},
		}
		if h.PhaseCount == 0 {
			h.PhaseCount = 1
		}
		for _, sr := range rec.Shinies {
			sh := sr.toModel()
			sh.HuntID = model.Ptr(h.ID)
			h.Shinies = append(h.Shinies, sh)
		}
		hunts = append(hunts, h)
	}

	detached := make([]*model.Shiny, 0, len(b.Shinies))
	for _, sr := range b.Shinies {
		detached = append(detached, sr.toModel())
	}
	return hunts, detached
}

// Restore imports the backup into s as new rows.
func Restore(ctx context.Context, s *store.Store, b *Backup) (store.ImportResult, error) {
	hunts, detached := b.Models()
	return s.Import(ctx, hunts, detached)
}

// Snapshot reads everything from s into a backup.
func Snapshot(ctx context.Context, s *store.Store, now time.Time) (*Backup, error) {
	hunts, err := s.LoadAllHunts(ctx)
	if err != nil {
		return nil, err
	}
	detached, err := s.LoadAllShinies(ctx, store.ShinyFilter{Detached: true})
	if err != nil {
		return nil, err
	}
	return NewBackup(hunts, detached, now), nil
}

func shinyRecord(sh *model.Shiny) ShinyRecord {
	return ShinyRecord{
		ID:              sh.ID,
		Species:         sh.Species,
		Gender:          sh.Gender,
		Name:            sh.Name,
		TotalEncounters: sh.TotalEncounters,
		PhaseEncounters: sh.PhaseEncounters,
		PhaseNumber:     sh.PhaseNumber,
		FoundTime:       sh.FoundTime,
		Version:         sh.Version,
		Method:          sh.Method,
		Place:           sh.Place,
		Notes:           sh.Notes,
	}
}

func (r ShinyRecord) toModel() *model.Shiny {
	return &model.Shiny{
		ID:              r.ID,
		Species:         r.Species,
		Gender:          r.Gender,
		Name:            r.Name,
		TotalEncounters: r.TotalEncounters,
		PhaseEncounters: r.PhaseEncounters,
		PhaseNumber:     r.PhaseNumber,
		FoundTime:       r.FoundTime,
		Version:         r.Version,
		Method:          r.Method,
		Place:           r.Place,
		Notes:           r.Notes,
	}
}
