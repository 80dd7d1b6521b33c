package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTemporal_DaysAndTimes(t *testing.T) {
	got := ExtractTemporal("It happens every Monday and Wednesday around 3pm.")

	assert.ElementsMatch(t, []string{"MON", "WED"}, got.Days)
	assert.Equal(t, []string{"15:00"}, got.Times)
	assert.Equal(t, "15:00", got.Pattern)
}

func TestExtractTemporal_Duration(t *testing.T) {
	got := ExtractTemporal("This has been going on for three weeks now.")
	assert.Equal(t, "3w", got.Duration)
}

func TestExtractTemporal_SinceWithDaysFallsBackToDayCount(t *testing.T) {
	got := ExtractTemporal("It's been happening since Monday and Wednesday.")
	assert.Equal(t, "2d", got.Duration)
}

func TestExtractTemporal_DateRangeWeekdayDuration(t *testing.T) {
	got := ExtractTemporal("It happened between Monday and Wednesday.")
	assert.Equal(t, "3d", got.Duration)
}

func TestExtractTemporal_FrequencyTwice(t *testing.T) {
	got := ExtractTemporal("It's happened twice this week.")
	assert.Equal(t, "2x_daily", got.Frequency)
}

func TestExtractTemporal_NoMatches(t *testing.T) {
	got := ExtractTemporal("Nothing temporal in here at all.")
	assert.Empty(t, got.Days)
	assert.Empty(t, got.Duration)
	assert.Empty(t, got.Frequency)
}
