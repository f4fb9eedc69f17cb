package engine

import "fmt"

// Column names the dashboard reads from every row.
const (
	ColDate     = "date"
	ColEvents   = "events"
	ColRainfall = "rainfall"
	ColSunshine = "sunshine"
)

// Record is one row of the traffic table. Keys come from the header row.
type Record struct {
	fields map[string]string
}

// NewRecord builds a Record from a column -> value map. The map is copied.
func NewRecord(fields map[string]string) *Record {
	m := make(map[string]string, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return &Record{fields: m}
}

// Get returns the raw value of a column and whether the column was present.
func (r *Record) Get(column string) (string, bool) {
	v, ok := r.fields[column]
	return v, ok
}

func (r *Record) Date() string     { return r.fields[ColDate] }
func (r *Record) Events() string   { return r.fields[ColEvents] }
func (r *Record) Rainfall() string { return r.fields[ColRainfall] }
func (r *Record) Sunshine() string { return r.fields[ColSunshine] }

// Count returns the raw traffic count for an age slice.
func (r *Record) Count(key AgeMetricKey) string {
	return r.fields[key.Column()]
}

// HasEvent reports whether an event took place on the row's day.
func (r *Record) HasEvent() bool {
	return r.fields[ColEvents] != ""
}

// Len is the number of columns the row carries.
func (r *Record) Len() int { return len(r.fields) }

// AgeMetricKey selects the demographic column holding the traffic count.
type AgeMetricKey uint8

const (
	AgeAll AgeMetricKey = iota
	Age0
	Age20
	Age30
	Age40
	Age50
	Age60
	Age70
	Age80
)

var ageColumns = [...]string{
	AgeAll: "allgender_allage",
	Age0:   "allgender_0",
	Age20:  "allgender_20",
	Age30:  "allgender_30",
	Age40:  "allgender_40",
	Age50:  "allgender_50",
	Age60:  "allgender_60",
	Age70:  "allgender_70",
	Age80:  "allgender_80",
}

var ageLabels = [...]string{
	AgeAll: "全年齢",
	Age0:   "0代",
	Age20:  "20代",
	Age30:  "30代",
	Age40:  "40代",
	Age50:  "50代",
	Age60:  "60代",
	Age70:  "70代",
	Age80:  "80代",
}

// AgeMetricKeys lists every key in display order.
func AgeMetricKeys() []AgeMetricKey {
	keys := make([]AgeMetricKey, len(ageColumns))
	for i := range ageColumns {
		keys[i] = AgeMetricKey(i)
	}
	return keys
}

// Column is the CSV column the key reads.
func (k AgeMetricKey) Column() string {
	if int(k) < len(ageColumns) {
		return ageColumns[k]
	}
	return ""
}

// Label is the display label of the age slice.
func (k AgeMetricKey) Label() string {
	if int(k) < len(ageLabels) {
		return ageLabels[k]
	}
	return ""
}

func (k AgeMetricKey) String() string { return k.Column() }

// ParseAgeMetricKey maps a column name such as "allgender_20" to its key.
func ParseAgeMetricKey(s string) (AgeMetricKey, error) {
	for i, col := range ageColumns {
		if col == s {
			return AgeMetricKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown age metric %q", s)
}
