package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/offerlens/backend/internal/domain"
)

// ParseTable reads a CSV stream into raw rows. Column names are kept
// verbatim (case and punctuation included) so the column resolver's own
// normalization stays in charge of comparisons. Short records are padded
// with empty cells; columns with a blank header are dropped; rows whose
// every cell is empty are dropped.
func ParseTable(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []domain.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		row := make(domain.RawRow, len(header))
		empty := true
		for i, col := range header {
			if strings.TrimSpace(col) == "" {
				continue
			}
			value := ""
			if i < len(record) {
				value = record[i]
			}
			row[col] = value
			if strings.TrimSpace(value) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}
