package dbx

import (
	"fmt"
	"time"
)

// sqlite stores CURRENT_TIMESTAMP as text; drivers differ in whether they
// convert it, so Timestamp accepts both forms.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a sql.Scanner for timestamp columns that works across the
// supported drivers.
type Timestamp struct {
	time.Time
}

// Scan implements sql.Scanner. NULL scans to the zero time.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			t.Time = ts.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as timestamp", s)
}
