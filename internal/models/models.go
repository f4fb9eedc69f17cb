package models

import "time"

type Status struct {
	State    string     `json:"state"`
	Source   string     `json:"source"`
	Records  int        `json:"records"`
	Loads    int        `json:"loads"`
	Error    string     `json:"error,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Options struct {
	Ages     []Option `json:"ages"`
	Weather  []Option `json:"weather"`
	Weekdays []Option `json:"weekdays"`
}

type Selection struct {
	Age      string `json:"age"`
	AgeLabel string `json:"age_label"`
	Weather  string `json:"weather"`
	Weekday  string `json:"weekday"`
}

type Averages struct {
	Event    float64 `json:"event"`
	NonEvent float64 `json:"non_event"`
	Diff     float64 `json:"diff"`
}

type RoundedAverages struct {
	Event    int64 `json:"event"`
	NonEvent int64 `json:"non_event"`
	Diff     int64 `json:"diff"`
}

// ChartBar is one bar group of the dashboard chart.
type ChartBar struct {
	Name     string `json:"name"`
	Diff     int64  `json:"diff"`
	Event    int64  `json:"event"`
	NonEvent int64  `json:"non_event"`
}

type Summary struct {
	Selection    Selection       `json:"selection"`
	FilteredRows int             `json:"filtered_rows"`
	EventDays    int             `json:"event_days"`
	NonEventDays int             `json:"non_event_days"`
	Raw          Averages        `json:"raw"`
	Rounded      RoundedAverages `json:"rounded"`
	Chart        []ChartBar      `json:"chart"`
}
