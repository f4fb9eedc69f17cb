package engine

import (
	"fmt"
	"strings"
	"time"
)

// WeatherClass is derived from rainfall and sunshine. The zero value means
// "any weather" in a FilterSelection and is never produced by ClassifyWeather.
type WeatherClass uint8

const (
	AnyWeather WeatherClass = iota
	Sunny
	Rain
	Cloudy
)

var weatherNames = [...]string{
	AnyWeather: "all",
	Sunny:      "sunny",
	Rain:       "rain",
	Cloudy:     "cloudy",
}

var weatherLabels = [...]string{
	AnyWeather: "すべて",
	Sunny:      "晴れ",
	Rain:       "雨",
	Cloudy:     "曇り",
}

func (w WeatherClass) String() string {
	if int(w) < len(weatherNames) {
		return weatherNames[w]
	}
	return fmt.Sprintf("WeatherClass(%d)", w)
}

func (w WeatherClass) Label() string {
	if int(w) < len(weatherLabels) {
		return weatherLabels[w]
	}
	return ""
}

// WeatherClasses lists the selectable values, "all" first.
func WeatherClasses() []WeatherClass {
	return []WeatherClass{AnyWeather, Sunny, Rain, Cloudy}
}

// ParseWeatherClass accepts "all" (or "") and the three class names.
func ParseWeatherClass(s string) (WeatherClass, error) {
	if s == "" {
		return AnyWeather, nil
	}
	for i, name := range weatherNames {
		if strings.EqualFold(name, s) {
			return WeatherClass(i), nil
		}
	}
	return AnyWeather, fmt.Errorf("unknown weather %q", s)
}

// ClassifyWeather returns Rain when rainfall > 0, otherwise Sunny when
// sunshine > 3 hours, otherwise Cloudy. Unparsable numbers compare false.
func ClassifyWeather(r *Record) WeatherClass {
	if fastFloat(r.Rainfall()) > 0 {
		return Rain
	}
	if fastFloat(r.Sunshine()) > 3 {
		return Sunny
	}
	return Cloudy
}

// WeekdayClass is the day of week of a row's date. The zero value means
// "any day" in a FilterSelection. InvalidWeekday marks a missing or
// unparsable date and never matches a selection.
type WeekdayClass uint8

const (
	AnyWeekday WeekdayClass = iota
	Sun
	Mon
	Tue
	Wed
	Thu
	Fri
	Sat
	InvalidWeekday
)

var weekdayNames = [...]string{
	AnyWeekday:     "all",
	Sun:            "sun",
	Mon:            "mon",
	Tue:            "tue",
	Wed:            "wed",
	Thu:            "thu",
	Fri:            "fri",
	Sat:            "sat",
	InvalidWeekday: "invalid",
}

var weekdayLabels = [...]string{
	AnyWeekday:     "すべて",
	Sun:            "日",
	Mon:            "月",
	Tue:            "火",
	Wed:            "水",
	Thu:            "木",
	Fri:            "金",
	Sat:            "土",
	InvalidWeekday: "",
}

func (d WeekdayClass) String() string {
	if int(d) < len(weekdayNames) {
		return weekdayNames[d]
	}
	return fmt.Sprintf("WeekdayClass(%d)", d)
}

func (d WeekdayClass) Label() string {
	if int(d) < len(weekdayLabels) {
		return weekdayLabels[d]
	}
	return ""
}

// WeekdayClasses lists the selectable values, "all" first, then Sun..Sat.
func WeekdayClasses() []WeekdayClass {
	return []WeekdayClass{AnyWeekday, Sun, Mon, Tue, Wed, Thu, Fri, Sat}
}

// ParseWeekdayClass accepts "all" (or ""), English short names and the
// one-character Japanese labels. "invalid" is not selectable.
func ParseWeekdayClass(s string) (WeekdayClass, error) {
	if s == "" {
		return AnyWeekday, nil
	}
	for _, d := range WeekdayClasses() {
		if strings.EqualFold(d.String(), s) || (d != AnyWeekday && d.Label() == s) {
			return d, nil
		}
	}
	return AnyWeekday, fmt.Errorf("unknown weekday %q", s)
}

func weekdayFromTime(wd time.Weekday) WeekdayClass {
	return Sun + WeekdayClass(wd)
}

// calendar is the location the weekday of a date is observed in. Dates
// themselves are UTC midnight, so zones west of UTC see the previous day.
var calendar = time.FixedZone("JST", 9*60*60)

// SetCalendar changes the location ClassifyWeekday reads weekdays in.
// Call it before loading data; it is not safe to change concurrently.
func SetCalendar(loc *time.Location) {
	if loc != nil {
		calendar = loc
	}
}

// ClassifyWeekday parses the YYYY/MM/DD date of a row.
func ClassifyWeekday(r *Record) WeekdayClass {
	raw := strings.TrimSpace(r.Date())
	if raw == "" {
		return InvalidWeekday
	}
	t, err := time.ParseInLocation("2006-1-2", strings.ReplaceAll(raw, "/", "-"), time.UTC)
	if err != nil {
		return InvalidWeekday
	}
	return weekdayFromTime(t.In(calendar).Weekday())
}
