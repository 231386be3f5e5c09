package feedback

import (
	"bytes"
	"fmt"
	"strings"

	"go-volunteer/internal/event"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Feedback"

var exportHeaders = []string{
	"Record ID", "Volunteer ID", "Date", "Status", "Rating",
	"Comment", "Submitted At", "Overridden", "Override Reason", "Hours",
}

var exportColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "B", 38},
	{"C", "E", 12},
	{"F", "F", 60},
	{"G", "G", 22},
	{"H", "J", 16},
}

// buildWorkbook renders the feedback list of one event as an .xlsx file.
func buildWorkbook(ev *event.Event, rows []EventFeedbackResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	for _, w := range exportColumnWidths {
		if err := f.SetColWidth(exportSheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("set column width %s:%s: %w", w.from, w.to, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(exportSheet, "A1", fmt.Sprintf("%s feedback (avg %.2f from %d responses)",
		ev.Name, ev.FeedbackSummary.AverageRating, ev.FeedbackSummary.TotalResponses))

	for i, h := range exportHeaders {
		f.SetCellValue(exportSheet, cell(i, 2), h)
	}
	if err := f.SetCellStyle(exportSheet, cell(0, 2), cell(len(exportHeaders)-1, 2), headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(exportSheet, cell(0, row), r.RecordID)
		f.SetCellValue(exportSheet, cell(1, row), r.VolunteerID)
		f.SetCellValue(exportSheet, cell(2, row), r.AttendanceDate)
		f.SetCellValue(exportSheet, cell(3, row), r.Status)
		if r.Rating != nil {
			f.SetCellValue(exportSheet, cell(4, row), *r.Rating)
		}
		f.SetCellValue(exportSheet, cell(5, row), r.Comment)
		if r.SubmittedAt != nil {
			f.SetCellValue(exportSheet, cell(6, row), *r.SubmittedAt)
		}
		f.SetCellValue(exportSheet, cell(7, row), r.Overridden)
		f.SetCellValue(exportSheet, cell(8, row), r.OverrideReason)
		f.SetCellValue(exportSheet, cell(9, row), r.TotalHours)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "event"
	}
	return out
}
