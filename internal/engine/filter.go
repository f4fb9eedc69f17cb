package engine

// FilterSelection is the user's current filter intent.
type FilterSelection struct {
	Age     AgeMetricKey
	Weather WeatherClass
	Weekday WeekdayClass
}

// DefaultSelection is all ages, any weather, any day.
func DefaultSelection() FilterSelection {
	return FilterSelection{Age: AgeAll, Weather: AnyWeather, Weekday: AnyWeekday}
}

// hasCount is the "does this row have data for the slice" gate: the
// column must be present, non-empty and not the literal "0".
func hasCount(r *Record, key AgeMetricKey) bool {
	v, ok := r.Get(key.Column())
	return ok && v != "" && v != "0"
}

// Match reports whether a single record passes the selection.
func (s FilterSelection) Match(r *Record) bool {
	if !hasCount(r, s.Age) {
		return false
	}
	if s.Weather != AnyWeather && ClassifyWeather(r) != s.Weather {
		return false
	}
	if s.Weekday != AnyWeekday {
		wd := ClassifyWeekday(r)
		if wd == InvalidWeekday || wd != s.Weekday {
			return false
		}
	}
	return true
}

// Filter returns the records matching sel, in input order. The input slice
// is not modified and the returned slice shares its *Record pointers.
func Filter(records []*Record, sel FilterSelection) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if sel.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
