package api

import (
	"footfall/internal/engine"
	"footfall/internal/models"
)

const chartName = "イベントあり - なし"

// summaryQuery holds the three dashboard selections. Empty means default.
type summaryQuery struct {
	Age     string `query:"age" validate:"omitempty,oneof=allgender_allage allgender_0 allgender_20 allgender_30 allgender_40 allgender_50 allgender_60 allgender_70 allgender_80"`
	Weather string `query:"weather" validate:"omitempty,oneof=all sunny rain cloudy"`
	Weekday string `query:"weekday" validate:"omitempty,oneof=all sun mon tue wed thu fri sat 日 月 火 水 木 金 土"`
	Format  string `query:"format" validate:"omitempty,oneof=csv xlsx"`
}

// selection converts a validated query into a FilterSelection.
func (q summaryQuery) selection() (engine.FilterSelection, error) {
	sel := engine.DefaultSelection()
	var err error
	if q.Age != "" {
		if sel.Age, err = engine.ParseAgeMetricKey(q.Age); err != nil {
			return sel, err
		}
	}
	if sel.Weather, err = engine.ParseWeatherClass(q.Weather); err != nil {
		return sel, err
	}
	if sel.Weekday, err = engine.ParseWeekdayClass(q.Weekday); err != nil {
		return sel, err
	}
	return sel, nil
}

// BuildSummary filters records, aggregates them and shapes the result
// for the dashboard.
func BuildSummary(records []*engine.Record, sel engine.FilterSelection) models.Summary {
	filtered, s := engine.Compute(records, sel)
	r := s.Rounded()

	return models.Summary{
		Selection: models.Selection{
			Age:      sel.Age.Column(),
			AgeLabel: sel.Age.Label(),
			Weather:  sel.Weather.String(),
			Weekday:  sel.Weekday.String(),
		},
		FilteredRows: len(filtered),
		EventDays:    s.EventRows,
		NonEventDays: s.NonEventRows,
		Raw: models.Averages{
			Event:    s.EventMean,
			NonEvent: s.NonEventMean,
			Diff:     s.Diff,
		},
		Rounded: models.RoundedAverages{
			Event:    r.EventMean,
			NonEvent: r.NonEventMean,
			Diff:     r.Diff,
		},
		Chart: []models.ChartBar{{
			Name:     chartName,
			Diff:     r.Diff,
			Event:    r.EventMean,
			NonEvent: r.NonEventMean,
		}},
	}
}

// BuildOptions returns the static label tables for the three selectors.
func BuildOptions() models.Options {
	opts := models.Options{}
	for _, k := range engine.AgeMetricKeys() {
		opts.Ages = append(opts.Ages, models.Option{Value: k.Column(), Label: k.Label()})
	}
	for _, w := range engine.WeatherClasses() {
		opts.Weather = append(opts.Weather, models.Option{Value: w.String(), Label: w.Label()})
	}
	for _, d := range engine.WeekdayClasses() {
		opts.Weekdays = append(opts.Weekdays, models.Option{Value: d.String(), Label: d.Label()})
	}
	return opts
}
