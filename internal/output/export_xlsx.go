package output

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const XLSXFile = "vtm_mapping.xlsx"

const (
	sheetLegacy     = "V20"
	sheetSimplified = "V5"
	sheetMapping    = "Mapping"
)

// ExportXLSX writes one workbook with a sheet per table. Probability cells
// hold fractions shown with a percent number format.
func ExportXLSX(outDir string, r Report) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	_ = f.SetSheetName("Sheet1", sheetLegacy)
	if _, err := f.NewSheet(sheetSimplified); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(sheetMapping); err != nil {
		return "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}
	// 0.00%
	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return "", err
	}

	legacyRows := make([][]any, 0, len(r.Legacy))
	for _, row := range r.Legacy {
		legacyRows = append(legacyRows, []any{row.Dice, row.Successes, row.Difficulty, row.Probability})
	}
	simplifiedRows := make([][]any, 0, len(r.Simplified))
	for _, row := range r.Simplified {
		simplifiedRows = append(simplifiedRows, []any{row.Dice, row.Difficulty, row.Probability})
	}
	mappingRows := make([][]any, 0, len(r.Mapping))
	for _, row := range r.Mapping {
		mappingRows = append(mappingRows, []any{row.Dice, row.Successes, row.Difficulty, row.SimplifiedDifficulty})
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
		pctCol int // 1-indexed, 0 = none
	}{
		{sheetLegacy, legacyHeader, legacyRows, 4},
		{sheetSimplified, simplifiedHeader, simplifiedRows, 3},
		{sheetMapping, mappingHeader, mappingRows, 0},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.header, sh.rows); err != nil {
			return "", err
		}
		last, err := excelize.CoordinatesToCellName(len(sh.header), 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
			return "", err
		}
		if sh.pctCol > 0 && len(sh.rows) > 0 {
			from, _ := excelize.CoordinatesToCellName(sh.pctCol, 2)
			to, _ := excelize.CoordinatesToCellName(sh.pctCol, len(sh.rows)+1)
			if err := f.SetCellStyle(sh.name, from, to, pctStyle); err != nil {
				return "", err
			}
		}
		lastCol, _ := excelize.ColumnNumberToName(len(sh.header))
		if err := f.SetColWidth(sh.name, "A", lastCol, 14); err != nil {
			return "", err
		}
	}

	outPath := filepath.Join(outDir, XLSXFile)
	if err := f.SaveAs(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
