package dataset

import "sort"

// MissingStat reports missing values for one column.
type MissingStat struct {
	Column  string
	Missing int
	Percent float64
}

// MissingValues counts missing values per column. With no column names all
// columns are reported. The result is sorted by percent missing, highest
// first, ties keeping column order.
func MissingValues(f *Frame, columns ...string) ([]MissingStat, error) {
	if f == nil {
		return nil, NewError(KindValidation, "frame is required", nil)
	}
	if len(columns) == 0 {
		columns = f.ColumnNames()
	}

	stats := make([]MissingStat, 0, len(columns))
	for _, name := range columns {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		missing := 0
		for _, v := range col.Values {
			if v == nil {
				missing++
			}
		}
		percent := 0.0
		if f.rows > 0 {
			percent = float64(missing) / float64(f.rows) * 100
		}
		stats = append(stats, MissingStat{Column: name, Missing: missing, Percent: percent})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Percent > stats[j].Percent
	})
	return stats, nil
}
