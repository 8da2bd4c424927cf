package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:05", "12:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), "expected %q to be valid", s)
	}

	invalid := []string{"", "9:05", "24:00", "12:60", "12-30", "12:3", "noon", "112:30"}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), "expected %q to be invalid", s)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 9*60+5, TimeString("09:05").Minutes())
	assert.Equal(t, 23*60+59, TimeString("23:59").Minutes())

	// Невалидные значения дают 0
	assert.Equal(t, 0, TimeString("garbage").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("19:00").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("21:00"), got)

	// Граница суток выражается как "24:00"
	got, err = TimeString("22:00").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// Выход за пределы суток - ошибка
	_, err = TimeString("23:30").AddMinutes(31)
	require.ErrorIs(t, err, ErrTimeOverflow)

	// Невалидное исходное значение
	_, err = TimeString("25:00").AddMinutes(10)
	require.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("12:00").IsBefore(TimeString("12:01")))
	assert.False(t, TimeString("12:00").IsBefore(TimeString("12:00")))
	assert.True(t, TimeString("21:00").IsAfter(TimeString("19:00")))

	// "24:00" понимается как правая граница интервала
	assert.True(t, TimeString("23:59").IsBefore(TimeString("24:00")))
	assert.True(t, TimeString("24:00").IsAfter(TimeString("23:59")))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 9, 12, 15, 45, 33, 0, time.UTC)
	got := TimeString("19:30").At(date)
	assert.Equal(t, time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC), got)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(19*60 + 30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:30"), got)

	_, err = NewTimeStringFromMinutes(-1)
	require.ErrorIs(t, err, ErrTimeOverflow)

	_, err = NewTimeStringFromMinutes(24 * 60)
	require.ErrorIs(t, err, ErrTimeOverflow)
}
