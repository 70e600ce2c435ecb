package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "with seconds", input: "09:00:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Validate_EndOfDay(t *testing.T) {
	// "24:00" допустимо как граница конца рабочего интервала
	assert.NoError(t, TimeString("24:00").Validate())
	assert.Error(t, TimeString("24:01").Validate())
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
		{input: "24:00", want: 1440},
	}

	for _, tt := range tests {
		got, err := tt.input.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "minutes of %s", tt.input)
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Ровно до конца суток - допустимо
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// За пределы суток - ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, 10, 14, 15, 45, 33, 120, time.UTC)

	got, err := TimeString("09:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 14, 9, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres отдает TIME как "HH:MM:SS"
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("17:00:00")))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 14, 12, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	_, err = TimeString("9am").Value()
	assert.Error(t, err)
}
