package dbx

import (
	"fmt"
	"time"
)

// timeLayouts are the textual forms SQLite drivers use for timestamps.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp is a sql.Scanner that accepts time.Time, text and unix seconds,
// so the same scan code works on drivers that do not convert DATETIME columns.
type Timestamp struct {
	Dst *time.Time
}

// TimeDest returns a scanner writing into dst.
func TimeDest(dst *time.Time) *Timestamp {
	return &Timestamp{Dst: dst}
}

// Scan implements sql.Scanner. NULL leaves the zero time.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t.Dst = time.Time{}
	case time.Time:
		*t.Dst = v.UTC()
	case int64:
		*t.Dst = time.Unix(v, 0).UTC()
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	return nil
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			*t.Dst = ts.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}
