package export

import (
	"fmt"
	"io"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet      = "Summary"
	ApplicationsSheet = "Applications"
	InterviewsSheet   = "Interviews"
	TimeToHireSheet   = "Time to Hire"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteDashboard пишет сводку в XLSX: лист на каждый отчет
func WriteDashboard(w io.Writer, summary *dto.DashboardSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	for _, name := range []string{ApplicationsSheet, InterviewsSheet, TimeToHireSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, st, summary); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if summary.ApplicationsOverview != nil {
		if err := writeApplicationsSheet(f, st, summary.ApplicationsOverview); err != nil {
			return fmt.Errorf("failed to write applications sheet: %w", err)
		}
	}
	if summary.InterviewSuccessRate != nil {
		if err := writeInterviewsSheet(f, st, summary.InterviewSuccessRate); err != nil {
			return fmt.Errorf("failed to write interviews sheet: %w", err)
		}
	}
	if summary.TimeToHire != nil {
		if err := writeTimeToHireSheet(f, st, summary.TimeToHire); err != nil {
			return fmt.Errorf("failed to write time-to-hire sheet: %w", err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// FileName - имя вложения для Content-Disposition
func FileName(generatedAt time.Time) string {
	return fmt.Sprintf("dashboard-summary-%s.xlsx", generatedAt.UTC().Format("20060102-150405"))
}

type styles struct {
	title  int
	header int
	label  int
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	return &styles{title: title, header: header, label: label}, nil
}

func writeSummarySheet(f *excelize.File, st *styles, s *dto.DashboardSummary) error {
	sheet := SummarySheet
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 40)

	f.SetCellValue(sheet, "A1", "Recruitment Dashboard")
	f.SetCellStyle(sheet, "A1", "B1", st.title)
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}

	rows := [][2]interface{}{
		{"Generated:", s.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Start date:", formatDate(s.Filters.StartDate)},
		{"End date:", formatDate(s.Filters.EndDate)},
		{"Job position:", orAll(s.Filters.JobPositionID)},
		{"Department:", orAll(s.Filters.Department)},
	}
	if s.ApplicationsOverview != nil {
		rows = append(rows,
			[2]interface{}{"Total applications:", s.ApplicationsOverview.TotalApplications},
			[2]interface{}{"Avg experience (years):", s.ApplicationsOverview.AvgExperienceYears},
		)
	}
	if s.InterviewSuccessRate != nil {
		rows = append(rows,
			[2]interface{}{"Total interviews:", s.InterviewSuccessRate.TotalInterviews},
			[2]interface{}{"Interview success rate (%):", s.InterviewSuccessRate.SuccessRate},
		)
	}
	if s.TimeToHire != nil {
		rows = append(rows,
			[2]interface{}{"Total hired:", s.TimeToHire.TotalHired},
			[2]interface{}{"Avg time to hire (days):", s.TimeToHire.AvgTimeToHireDays},
			[2]interface{}{"Median time to hire (days):", s.TimeToHire.MedianTimeToHireDays},
		)
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), st.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r[1])
	}
	return nil
}

func writeApplicationsSheet(f *excelize.File, st *styles, o *dto.ApplicationsOverview) error {
	sheet := ApplicationsSheet
	row := 1

	row = writeTable(f, st, sheet, row, []string{"Status", "Count"}, len(o.ByStatus), func(i int) []interface{} {
		return []interface{}{o.ByStatus[i].Status, o.ByStatus[i].Count}
	})
	row = writeTable(f, st, sheet, row+1, []string{"Job Position", "Title", "Count"}, len(o.ByJobPosition), func(i int) []interface{} {
		return []interface{}{o.ByJobPosition[i].JobPositionID, o.ByJobPosition[i].Title, o.ByJobPosition[i].Count}
	})
	writeTable(f, st, sheet, row+1, []string{"Source", "Count"}, len(o.BySource), func(i int) []interface{} {
		return []interface{}{o.BySource[i].Source, o.BySource[i].Count}
	})

	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "C", 25)
	return nil
}

func writeInterviewsSheet(f *excelize.File, st *styles, r *dto.InterviewSuccessRate) error {
	sheet := InterviewsSheet
	row := writeTable(f, st, sheet, 1, []string{"Metric", "Value"}, 4, func(i int) []interface{} {
		return [][]interface{}{
			{"Total interviews", r.TotalInterviews},
			{"Completed interviews", r.CompletedInterviews},
			{"Hired with interview", r.HiredWithInterview},
			{"Success rate (%)", r.SuccessRate},
		}[i]
	})
	writeTable(f, st, sheet, row+1, []string{"Type", "Count"}, len(r.ByType), func(i int) []interface{} {
		return []interface{}{r.ByType[i].Type, r.ByType[i].Count}
	})
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 15)
	return nil
}

func writeTimeToHireSheet(f *excelize.File, st *styles, t *dto.TimeToHire) error {
	sheet := TimeToHireSheet
	row := writeTable(f, st, sheet, 1, []string{"Job Position", "Title", "Avg Days", "Hired"}, len(t.ByJobPosition), func(i int) []interface{} {
		j := t.ByJobPosition[i]
		return []interface{}{j.JobPositionID, j.Title, j.AvgDays, j.Count}
	})
	writeTable(f, st, sheet, row+1, []string{"Department", "Avg Days", "Hired"}, len(t.ByDepartment), func(i int) []interface{} {
		d := t.ByDepartment[i]
		return []interface{}{d.Department, d.AvgDays, d.Count}
	})
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "D", 20)
	return nil
}

// writeTable пишет заголовок и n строк начиная со startRow; возвращает следующую свободную строку
func writeTable(f *excelize.File, st *styles, sheet string, startRow int, headers []string, n int, rowAt func(i int) []interface{}) int {
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, startRow)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, st.header)
	}
	for i := 0; i < n; i++ {
		for col, v := range rowAt(i) {
			cell, _ := excelize.CoordinatesToCellName(col+1, startRow+1+i)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return startRow + n + 1
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func orAll(v string) string {
	if v == "" {
		return "All"
	}
	return v
}
