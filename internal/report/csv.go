package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// Excel pt-BR expects ';' separation and wants the BOM to pick UTF-8.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// encodeCSV renders the sections as one semicolon-separated document:
// a single-cell title row per section, then the header row, then data
// rows, with one blank row between sections.
func encodeCSV(sections []Section) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(bomUTF8)

	w := csv.NewWriter(buf)
	w.Comma = ';'

	for i, sec := range sections {
		if i > 0 {
			if err := w.Write(nil); err != nil {
				return nil, fmt.Errorf("writing section separator: %w", err)
			}
		}

		if err := w.Write([]string{sec.Title}); err != nil {
			return nil, fmt.Errorf("writing section title: %w", err)
		}

		header := make([]string, len(sec.Columns))
		for c, col := range sec.Columns {
			header[c] = col.Name
		}

		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}

		for _, row := range sec.Rows {
			record := make([]string, len(row))
			for c, v := range row {
				record[c] = formatCSVCell(sec.Columns[c].Kind, v)
			}

			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("writing row: %w", err)
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

func formatCSVCell(kind ColumnKind, v any) string {
	switch kind {
	case KindMoney:
		return formatBRL(v.(int64))
	case KindDate:
		return v.(time.Time).Format(dateLayout)
	case KindInt:
		return strconv.Itoa(v.(int))
	default:
		return fmt.Sprint(v)
	}
}
