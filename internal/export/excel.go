// Package export writes analysis reports as xlsx workbooks.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
)

const (
	summarySheet  = "Summary"
	findingsSheet = "Strengths and Gaps"
)

// WriteAnalysis saves a report for one candidate to path, adding the .xlsx
// extension when it is missing. It returns the path written.
func WriteAnalysis(a analysis.CandidateAnalysis, resumeSource, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return "", err
	}
	if err := writeSummary(f, a, resumeSource); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeFindings(f, a); err != nil {
		return "", fmt.Errorf("failed to create findings sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func writeSummary(f *excelize.File, a analysis.CandidateAnalysis, resumeSource string) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 80); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheet, "A1", "Candidate Analysis Report"); err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	rows := [][2]any{
		{"Resume:", resumeSource},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Candidate Email:", orDash(a.CandidateEmail)},
		{"Match Percentage:", a.MatchPercentage},
		{"Position Level:", string(a.PositionLevel)},
		{"Acceptance Probability:", string(a.AcceptanceProbability)},
		{"Acceptance Reasoning:", a.AcceptanceReasoning},
		{"Recommendation:", a.Recommendation},
		{"Detailed Analysis:", a.DetailedAnalysis},
		{"Parsed From:", string(a.Source)},
	}
	for i, r := range rows {
		row := i + 3
		label, value := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(summarySheet, label, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, value, r[1]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, value, value, wrapStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeFindings(f *excelize.File, a analysis.CandidateAnalysis) error {
	if err := f.SetColWidth(findingsSheet, "A", "B", 60); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(findingsSheet, "A1", &[]any{"Key Strengths", "Key Gaps"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(findingsSheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	for i, s := range a.KeyStrengths {
		if err := f.SetCellValue(findingsSheet, fmt.Sprintf("A%d", i+2), s); err != nil {
			return err
		}
	}
	for i, g := range a.KeyGaps {
		if err := f.SetCellValue(findingsSheet, fmt.Sprintf("B%d", i+2), g); err != nil {
			return err
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
