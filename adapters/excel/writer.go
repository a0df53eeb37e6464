package excel

import (
	"fmt"

	"sukuyo/domain/mansion"
	"sukuyo/internal/survey"

	"github.com/xuri/excelize/v2"
)

// Sheet names in a survey workbook
const (
	SummarySheet = "Summary"
	SamplesSheet = "Samples"
	CountsSheet  = "Counts"
)

var sampleHeader = []any{"date", "reference", "candidate", "ref_mansion", "cand_mansion", "difference", "agree"}

// WriteSurvey saves a survey report as an xlsx workbook with summary,
// per-day and per-mansion sheets
func WriteSurvey(path string, report *survey.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSummary(f, report); err != nil {
		return err
	}
	if err := writeSamples(f, report); err != nil {
		return err
	}
	if err := writeCounts(f, report); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, r *survey.Report) error {
	rows := [][]any{
		{"reference", r.Reference},
		{"candidate", r.Candidate},
		{"from", r.From},
		{"to", r.To},
		{"days", r.Days},
		{"agreement", r.Agreement},
		{"diff_mean", r.Difference.Mean},
		{"diff_std_dev", r.Difference.StdDev},
		{"diff_median", r.Difference.Median},
		{"diff_p90", r.Difference.P90},
		{"diff_max", r.Difference.Max},
		{"chi_square", r.Uniformity.ChiSquare},
		{"p_value", r.Uniformity.PValue},
	}
	return setRows(f, SummarySheet, rows)
}

func writeSamples(f *excelize.File, r *survey.Report) error {
	if _, err := f.NewSheet(SamplesSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SamplesSheet, err)
	}

	sw, err := f.NewStreamWriter(SamplesSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", sampleHeader); err != nil {
		return err
	}
	for i, s := range r.Samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			s.Date,
			s.Reference,
			s.Candidate,
			mansion.At(s.RefIndex).Name,
			mansion.At(s.CandIndex).Name,
			s.Difference,
			s.Agree,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write sample row %d: %w", i, err)
		}
	}
	return sw.Flush()
}

func writeCounts(f *excelize.File, r *survey.Report) error {
	if _, err := f.NewSheet(CountsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", CountsSheet, err)
	}
	rows := [][]any{{"index", "mansion", "days"}}
	for i, c := range r.Uniformity.Counts {
		rows = append(rows, []any{i, mansion.At(i).Name, c})
	}
	return setRows(f, CountsSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
