package export

import (
	"fmt"
	"io"

	"festival-quiz/internal/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Ranking"

// WriteRankingXLSX writes view as a single-sheet workbook: one header row, then one row per entry.
func WriteRankingXLSX(w io.Writer, view domain.RankingView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	headers := []interface{}{"Rank", "Medal", "Name", "Score", "You"}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range view.Rows {
		self := "no"
		if row.Self {
			self = "yes"
		}
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.Rank, row.Medal, sanitizeForExcel(row.Name), row.Score, self}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return f.Write(w)
}

// sanitizeForExcel keeps nicknames from being evaluated as formulas.
func sanitizeForExcel(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
