package report

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxColWidth = 40

// encodeWorkbook renders each section as its own named sheet with a styled
// frozen header row, currency formatting on money columns and column
// widths sized to content.
func encodeWorkbook(sections []Section) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	moneyFmt := `"R$" #,##0.00`

	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("creating currency style: %w", err)
	}

	for i, sec := range sections {
		sheet := sec.Title

		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("creating sheet %q: %w", sheet, err)
			}
		}

		if err := writeSheet(f, sheet, sec, headerStyle, moneyStyle); err != nil {
			return nil, fmt.Errorf("writing sheet %q: %w", sheet, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, sec Section, headerStyle, moneyStyle int) error {
	widths := make([]int, len(sec.Columns))

	for c, col := range sec.Columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return err
		}

		widths[c] = utf8.RuneCountInString(col.Name)
	}

	for r, row := range sec.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)

			switch sec.Columns[c].Kind {
			case KindMoney:
				if err := f.SetCellValue(sheet, cell, float64(v.(int64))/100); err != nil {
					return err
				}

				if err := f.SetCellStyle(sheet, cell, cell, moneyStyle); err != nil {
					return err
				}
			case KindDate:
				if err := f.SetCellValue(sheet, cell, v.(time.Time).Format(dateLayout)); err != nil {
					return err
				}
			default:
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}

			if w := cellWidth(sec.Columns[c].Kind, v); w > widths[c] {
				widths[c] = w
			}
		}
	}

	if len(sec.Rows) > 0 || len(sec.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sec.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for c := range sec.Columns {
		name, _ := excelize.ColumnNumberToName(c + 1)

		width := float64(widths[c]) + 2
		if width > maxColWidth {
			width = maxColWidth
		}

		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellWidth(kind ColumnKind, v any) int {
	return utf8.RuneCountInString(formatCSVCell(kind, v))
}
