package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputAcceptsPartialCheckin(t *testing.T) {
	mood := 4
	assert.NoError(t, validateInput(&CheckinInput{Mood: &mood}))

	done := true
	assert.NoError(t, validateInput(&CheckinInput{Exercise: &done}))

	assert.NoError(t, validateInput(&CheckinInput{
		Scales: map[string]float64{"hopelessness_level": 2},
	}))
}

func TestValidateInputRejectsOutOfRangeScales(t *testing.T) {
	bad := 6
	err := validateInput(&CheckinInput{Mood: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mood")

	zero := 0
	assert.Error(t, validateInput(&CheckinInput{Energy: &zero}))
	assert.Error(t, validateInput(&CheckinInput{SleepQuality: &zero}))

	err = validateInput(&CheckinInput{Scales: map[string]float64{"anxiety_level": 9}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anxiety_level")
}

func TestValidateInputRejectsBadSleepHours(t *testing.T) {
	negative := -1.0
	assert.Error(t, validateInput(&CheckinInput{SleepHours: &negative}))

	tooLong := 25.0
	assert.Error(t, validateInput(&CheckinInput{SleepHours: &tooLong}))

	fine := 7.5
	assert.NoError(t, validateInput(&CheckinInput{SleepHours: &fine}))
}

func TestValidateInputRejectsEmptyCheckin(t *testing.T) {
	err := validateInput(&CheckinInput{Note: "slept ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one field")
}

func TestCheckinRecordSnapshot(t *testing.T) {
	mood := 4
	hours := 7.5
	quality := 3
	yes, no := true, false
	row := Checkin{
		Timestamp:    "2026-03-01 09:30:00",
		Mood:         &mood,
		SleepHours:   &hours,
		SleepQuality: &quality,
		Exercise:     &yes,
		Hydration:    &no,
		Scales:       []byte(`{"hopelessness_level": 2}`),
	}

	rec := row.Record()
	assert.Equal(t, "2026-03-01 09:30:00", rec.Timestamp)
	require.NotNil(t, rec.Mood)
	assert.Equal(t, 4, *rec.Mood)
	assert.Nil(t, rec.Energy)

	// Only reported habits appear; false means reported-but-skipped.
	assert.Equal(t, map[string]bool{"exercise": true, "hydration": false}, rec.Habits)
	assert.Equal(t, map[string]float64{"hopelessness_level": 2}, rec.Scales)
}

func TestRecordValueResolution(t *testing.T) {
	mood := 2
	hours := 6.5
	rec := Record{
		Mood:       &mood,
		SleepHours: &hours,
		Scales:     map[string]float64{"stress_level": 4},
	}

	v, ok := rec.Value("mood")
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 0.001)

	v, ok = rec.Value("sleep_hours")
	require.True(t, ok)
	assert.InDelta(t, 6.5, v, 0.001)

	v, ok = rec.Value("stress_level")
	require.True(t, ok)
	assert.InDelta(t, 4.0, v, 0.001)

	_, ok = rec.Value("energy")
	assert.False(t, ok)

	_, ok = rec.Value("unknown")
	assert.False(t, ok)
}
