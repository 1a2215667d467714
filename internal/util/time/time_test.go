package time_utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDate_WithSupportedFormats_ReturnsMidnightUTC(t *testing.T) {
	expected := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2025-03-14", "2025-03-14T18:30:00Z", "2025-03-14T18:30:00"} {
		parsed, err := ParseDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, parsed, value)
	}
}

func Test_ParseDate_WithInvalidValue_ReturnsError(t *testing.T) {
	_, err := ParseDate("14/03/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func Test_MonthRange_ForFebruaryInLeapYear_EndsOn29th(t *testing.T) {
	start, end := MonthRange(2024, 2)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), end)
}

func Test_MonthRange_ForDecember_EndsOn31st(t *testing.T) {
	_, end := MonthRange(2025, 12)

	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), end)
}

func Test_FormatHours_DropsTrailingZeros(t *testing.T) {
	assert.Equal(t, "12.5", FormatHours(12.5))
	assert.Equal(t, "6", FormatHours(6))
	assert.Equal(t, "6.5", FormatHours(2+3+1.5))
	assert.Equal(t, "0.3", FormatHours(0.1+0.2))
}
