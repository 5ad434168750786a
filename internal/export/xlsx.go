package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/shutils/internal/model"
)

// Sheet names in the workbook.
const (
	HuntsSheet   = "Hunts"
	ShiniesSheet = "Shinies"
)

const dateFormat = "2006-01-02 15:04"

var huntHeader = []any{
	"ID", "Target", "Species", "Label", "Phase encounters", "Previous encounters",
	"Total encounters", "Phase", "Started", "Ended", "Completed",
	"Version", "Method", "Place", "Notes",
}

var shinyHeader = []any{
	"ID", "Species", "Species name", "Nickname", "Gender", "Total encounters",
	"Phase encounters", "Phase", "Found", "Version", "Method", "Place", "Notes", "Hunt",
}

// WriteXLSX writes a workbook with one sheet of hunts and one of shinies.
// names resolves species ids for display.
func WriteXLSX(w io.Writer, hunts []*model.Hunt, shinies []*model.Shiny, names func(model.SpeciesID) string) error {
	if names == nil {
		names = model.SpeciesID.String
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), HuntsSheet); err != nil {
		return fmt.Errorf("naming hunts sheet: %w", err)
	}
	if _, err := f.NewSheet(ShiniesSheet); err != nil {
		return fmt.Errorf("creating shinies sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	huntRows := make([][]any, 0, len(hunts))
	for _, h := range hunts {
		huntRows = append(huntRows, []any{
			h.ID,
			int64(h.Target),
			names(h.Target),
			h.Label(names),
			h.PhaseEncounters,
			h.PreviousEncounters,
			h.TotalEncounters(),
			h.PhaseCount,
			formatTime(h.StartTime),
			formatTime(h.EndTime),
			yesNo(h.Completed),
			text(h.Version),
			text(h.Method),
			text(h.Place),
			text(h.Notes),
		})
	}
	if err := writeSheet(f, HuntsSheet, bold, huntHeader, huntRows); err != nil {
		return err
	}

	shinyRows := make([][]any, 0, len(shinies))
	for _, s := range shinies {
		gender := ""
		if s.Gender != nil {
			gender = s.Gender.String()
		}
		shinyRows = append(shinyRows, []any{
			s.ID,
			int64(s.Species),
			names(s.Species),
			text(s.Name),
			gender,
			number(s.TotalEncounters),
			number(s.PhaseEncounters),
			number(s.PhaseNumber),
			formatTime(s.FoundTime),
			text(s.Version),
			text(s.Method),
			text(s.Place),
			text(s.Notes),
			number(s.HuntID),
		})
	}
	if err := writeSheet(f, ShiniesSheet, bold, shinyHeader, shinyRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing %s header: %w", sheet, err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateFormat)
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// number leaves missing values as empty cells.
func number(n *int64) any {
	if n == nil {
		return ""
	}
	return *n
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
