package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterDataset() []*Record {
	return []*Record{
		row(ColDate, "2024/01/01", ColRainfall, "0", ColSunshine, "5", "allgender_allage", "100"),  // Mon sunny
		row(ColDate, "2024/01/02", ColRainfall, "2", ColSunshine, "5", "allgender_allage", "0"),    // zero count
		row(ColDate, "2024/01/03", ColRainfall, "2", ColSunshine, "5", "allgender_allage", ""),     // empty count
		row(ColDate, "2024/01/04", ColRainfall, "2", ColSunshine, "0"),                             // missing count
		row(ColDate, "2024/01/08", ColRainfall, "1", ColSunshine, "0", "allgender_allage", "40"),   // Mon rain
		row(ColDate, "garbage", ColRainfall, "0", ColSunshine, "1", "allgender_allage", "7"),       // invalid date
		row(ColDate, "2024/01/01", ColRainfall, "0", ColSunshine, "5", "allgender_allage", "100"),  // duplicate
		row(ColDate, "2024/01/09", ColRainfall, "0", ColSunshine, "2", "allgender_allage", "0.0"),  // Tue cloudy
	}
}

func TestFilterAllAllKeepsRowsWithCounts(t *testing.T) {
	data := filterDataset()
	got := Filter(data, DefaultSelection())

	want := []*Record{data[0], data[4], data[5], data[6], data[7]}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Same(t, want[i], got[i])
	}
}

func TestFilterWeather(t *testing.T) {
	data := filterDataset()

	got := Filter(data, FilterSelection{Age: AgeAll, Weather: Rain})
	require.Len(t, got, 1)
	assert.Same(t, data[4], got[0])

	got = Filter(data, FilterSelection{Age: AgeAll, Weather: Cloudy})
	require.Len(t, got, 2)
	assert.Same(t, data[5], got[0])
	assert.Same(t, data[7], got[1])
}

func TestFilterWeekday(t *testing.T) {
	data := filterDataset()

	got := Filter(data, FilterSelection{Age: AgeAll, Weekday: Mon})
	require.Len(t, got, 3)
	assert.Same(t, data[0], got[0])
	assert.Same(t, data[4], got[1])
	assert.Same(t, data[6], got[2])

	got = Filter(data, FilterSelection{Age: AgeAll, Weekday: Mon, Weather: Rain})
	require.Len(t, got, 1)
	assert.Same(t, data[4], got[0])
}

func TestFilterInvalidWeekdayNeverMatches(t *testing.T) {
	data := filterDataset()
	for _, d := range WeekdayClasses()[1:] {
		for _, r := range Filter(data, FilterSelection{Age: AgeAll, Weekday: d}) {
			assert.NotSame(t, data[5], r)
		}
	}
	assert.Empty(t, Filter(data, FilterSelection{Age: AgeAll, Weekday: InvalidWeekday}))
}

func TestFilterOtherAgeColumn(t *testing.T) {
	data := filterDataset()
	assert.Empty(t, Filter(data, FilterSelection{Age: Age30}))
}

func TestFilterIdempotent(t *testing.T) {
	data := filterDataset()
	before := append([]*Record(nil), data...)
	sel := FilterSelection{Age: AgeAll, Weather: Sunny}

	first := Filter(data, sel)
	second := Filter(data, sel)
	assert.Equal(t, first, second)
	assert.Equal(t, before, data)
}
