package dataset

import (
	"fmt"
	"time"
)

// LastSunday returns a new frame with an extra time column named
// sundayColumn holding, for each value of dateColumn, the date of the Sunday
// before it. A Sunday maps to the previous Sunday. String values are coerced
// through the usual layout ladder; null or unparseable values yield null.
func LastSunday(f *Frame, dateColumn, sundayColumn string) (*Frame, error) {
	if f == nil {
		return nil, NewError(KindValidation, "frame is required", nil)
	}
	if sundayColumn == "" {
		return nil, NewError(KindValidation, "sunday column name is required", nil)
	}
	if _, err := f.Column(sundayColumn); err == nil {
		return nil, NewError(KindValidation, fmt.Sprintf("column %q already exists", sundayColumn), nil)
	}

	col, err := f.Column(dateColumn)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(col.Values))
	for i, v := range col.Values {
		t, ok := coerceTime(v)
		if !ok {
			continue
		}
		values[i] = lastSunday(t)
	}

	return f.WithColumn(Column{Name: sundayColumn, Kind: KindTime, Values: values})
}

// lastSunday steps back at least one day and at most seven, landing on the
// Sunday strictly before t's calendar day in UTC.
func lastSunday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	back := int(t.Weekday())
	if back == 0 {
		back = 7
	}
	return day.AddDate(0, 0, -back)
}

func coerceTime(v any) (time.Time, bool) {
	switch value := v.(type) {
	case time.Time:
		return value, true
	case *time.Time:
		if value == nil {
			return time.Time{}, false
		}
		return *value, true
	case string:
		return parseTimeMaybe(value)
	default:
		return time.Time{}, false
	}
}
