package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"homecare-admin/internal/listview"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileName 导出文件名，如 agencies-20250615-103000.xlsx
func FileName(t *listview.Table, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", t.Name, now.UTC().Format("20060102-150405"))
}

// GenerateTableExport writes the visible columns of rows to a single-sheet workbook.
// Numeric columns keep their numeric value; every other column is written as its display text.
func GenerateTableExport(t *listview.Table, rows []listview.Row) ([]byte, error) {
	f := excelize.NewFile()

	sheet := sheetName(t.Name)
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	columns := t.VisibleColumns()
	for i, c := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.Label); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, columnWidth(c)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range rows {
		for i, c := range columns {
			value := cellValue(c, row)
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2) // 第1行是表头
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at %s: %w", cell, err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(c listview.Column, row listview.Row) any {
	if c.Type == listview.ColumnNumeric {
		if v, ok := row.Values[c.Key]; ok && v != nil {
			return v
		}
		return nil
	}
	return row.Display[c.Key]
}

func columnWidth(c listview.Column) float64 {
	switch c.Type {
	case listview.ColumnBoolean, listview.ColumnNumeric:
		return 15
	case listview.ColumnDate:
		return 14
	}
	return 25
}

// sheetName Excel 工作表名最长 31 字符
func sheetName(name string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(name))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	s := strings.Join(words, " ")
	if len(s) > 31 {
		s = s[:31]
	}
	if s == "" {
		return "Sheet1"
	}
	return s
}
