package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVOptions configures CSV ingestion.
type CSVOptions struct {
	// Delimiter for fields. Defaults to ','.
	Delimiter rune
	// NullTokens are cell values treated as missing. Defaults apply when nil.
	NullTokens []string
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
}

func defaultNullTokens() []string {
	return []string{"", " ", "na", "NA", "#NA", "#N/A", "null"}
}

// ReadCSV builds a frame from CSV content. The first record names the
// columns; column kinds are sniffed from the non-null cells, degrading to
// string when values disagree.
func ReadCSV(r io.Reader, opts CSVOptions) (*Frame, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, NewError(KindValidation, "csv input is empty", nil)
		}
		return nil, NewError(KindValidation, "csv header read failed", err)
	}

	nulls := opts.NullTokens
	if nulls == nil {
		nulls = defaultNullTokens()
	}
	nullSet := make(map[string]struct{}, len(nulls))
	for _, token := range nulls {
		nullSet[token] = struct{}{}
	}

	raw := make([][]string, 0, 64)
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, NewError(KindValidation, "csv record read failed", err)
		}
		if len(record) != len(header) {
			return nil, NewError(KindValidation, "csv record width does not match header", nil)
		}
		raw = append(raw, record)
		if opts.MaxRows > 0 && len(raw) >= opts.MaxRows {
			break
		}
	}

	columns := make([]Column, len(header))
	for c, name := range header {
		cells := make([]string, len(raw))
		missing := make([]bool, len(raw))
		for i, record := range raw {
			cells[i] = record[c]
			_, isNull := nullSet[strings.TrimSpace(record[c])]
			missing[i] = isNull
		}
		columns[c] = sniffColumn(strings.TrimSpace(name), cells, missing)
	}

	return New(columns)
}

func sniffColumn(name string, cells []string, missing []bool) Column {
	kind := sniffKind(cells, missing)
	values := make([]any, len(cells))
	for i, cell := range cells {
		if missing[i] {
			continue
		}
		cell = strings.TrimSpace(cell)
		switch kind {
		case KindInt:
			v, _ := strconv.ParseInt(cell, 10, 64)
			values[i] = v
		case KindFloat:
			v, _ := strconv.ParseFloat(cell, 64)
			values[i] = v
		case KindTime:
			v, _ := parseTimeMaybe(cell)
			values[i] = v
		default:
			values[i] = cell
		}
	}
	return Column{Name: name, Kind: kind, Values: values}
}

func sniffKind(cells []string, missing []bool) Kind {
	seen := false
	allInt, allFloat, allTime := true, true, true
	for i, cell := range cells {
		if missing[i] {
			continue
		}
		seen = true
		cell = strings.TrimSpace(cell)
		if allInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
			}
		}
		if allTime {
			if _, ok := parseTimeMaybe(cell); !ok {
				allTime = false
			}
		}
		if !allInt && !allFloat && !allTime {
			break
		}
	}
	if !seen {
		return KindString
	}
	switch {
	case allInt:
		return KindInt
	case allFloat:
		return KindFloat
	case allTime:
		return KindTime
	default:
		return KindString
	}
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006/01/02",
		"02/01/2006",
		"01/02/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
