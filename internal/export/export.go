// File path: internal/export/export.go
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/common/telemetry"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

const (
	SheetFixList      = "Fix List"
	SheetNeedsContext = "Needs Context"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrNoReport = errors.New("no report to export")

var (
	fixListColumns = []string{
		"col_priority", "col_lang", "col_category", "col_summary", "col_file", "col_location",
		"col_source", "col_target", "col_proposed", "col_verification", "col_confidence", "col_occurrences",
	}
	needsContextColumns = []string{
		"col_lang", "col_category", "col_summary", "col_missing_info", "col_risk", "col_next_step",
	}

	// These fix list headers stay in English in every locale.
	fixedHeaders = map[string]string{
		"col_location":    "Location",
		"col_target":      "Target Text",
		"col_confidence":  "Confidence",
		"col_occurrences": "Occurrences",
	}
)

// FileName is the download name for a workbook produced at now.
func FileName(now time.Time) string {
	return "LQA_Audit_Report_" + now.UTC().Format("2006-01-02") + ".xlsx"
}

// Write renders rep as a two-sheet workbook with headers in loc.
func Write(w io.Writer, rep *report.AuditReport, loc locale.Locale) error {
	if rep == nil {
		return ErrNoReport
	}
	loc = loc.Or(locale.Default)
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			common.Logger().Warn("export: close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFixList); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetNeedsContext); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	fixRows := make([][]any, 0, len(rep.FixList))
	for _, item := range rep.FixList {
		fixRows = append(fixRows, []any{
			string(item.Priority),
			item.Language,
			item.Category,
			item.Summary,
			item.Evidence.FileName,
			item.Evidence.Location,
			item.Evidence.SourceText,
			item.Evidence.TargetText,
			item.ProposedFix,
			strings.Join(item.VerificationSteps, "; "),
			item.Confidence,
			item.Occurrences(),
		})
	}
	if err := writeSheet(f, SheetFixList, headers(fixListColumns, loc), fixRows, headerStyle); err != nil {
		return err
	}

	contextRows := make([][]any, 0, len(rep.NeedsContext))
	for _, item := range rep.NeedsContext {
		contextRows = append(contextRows, []any{
			item.Language,
			item.Category,
			item.Summary,
			strings.Join(item.WhatIsMissing, ", "),
			item.RiskIfWrong,
			item.SuggestedNextStep,
		})
	}
	if err := writeSheet(f, SheetNeedsContext, headers(needsContextColumns, loc), contextRows, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	telemetry.RecordExport()
	common.Logger().Info("export: workbook written", "fix_rows", len(fixRows), "context_rows", len(contextRows), "locale", loc.String())
	return nil
}

func headers(keys []string, loc locale.Locale) []any {
	out := make([]any, len(keys))
	for i, key := range keys {
		if fixed, ok := fixedHeaders[key]; ok {
			out[i] = fixed
			continue
		}
		out[i] = loc.T(key)
	}
	return out
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
