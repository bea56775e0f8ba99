package checkin

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []Record
	err     error
}

func (s *stubSource) RecentRecords(userID uuid.UUID, limit int) ([]Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.records) {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func newEngine(records ...Record) *Analytics {
	return NewAnalytics(&stubSource{records: records})
}

// dayStamp returns a timestamp daysAgo days before a fixed reference
// morning, so tests are deterministic.
func dayStamp(daysAgo int) string {
	base := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return base.AddDate(0, 0, -daysAgo).Format(TimestampLayout)
}

func dayDate(daysAgo int) string {
	base := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return base.AddDate(0, 0, -daysAgo).Format(DateLayout)
}

func moodRecord(daysAgo, mood int) Record {
	return Record{Timestamp: dayStamp(daysAgo), Mood: &mood}
}

func habitRecord(daysAgo int, habits map[string]bool) Record {
	return Record{Timestamp: dayStamp(daysAgo), Habits: habits}
}

func sleepRecord(daysAgo int, hours float64, quality int) Record {
	return Record{Timestamp: dayStamp(daysAgo), SleepHours: &hours, SleepQuality: &quality}
}

func TestMoodTrendsImproving(t *testing.T) {
	records := make([]Record, 0, 14)
	for i := 0; i < 7; i++ {
		records = append(records, moodRecord(i, 5))
	}
	for i := 7; i < 14; i++ {
		records = append(records, moodRecord(i, 3))
	}

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)

	assert.Equal(t, "improving", trends.Trend)
	assert.Equal(t, 14, trends.TotalCheckins)
	assert.InDelta(t, 4.0, trends.AverageMood, 0.001)
	assert.InDelta(t, 1.0, trends.MoodVolatility, 0.001)
	assert.Equal(t, DayMood{Date: dayDate(0), Mood: 5}, trends.BestDay)
	assert.Equal(t, DayMood{Date: dayDate(7), Mood: 3}, trends.WorstDay)
	assert.Len(t, trends.RecentData, 7)
}

func TestMoodTrendsDeclining(t *testing.T) {
	records := make([]Record, 0, 14)
	for i := 0; i < 7; i++ {
		records = append(records, moodRecord(i, 2))
	}
	for i := 7; i < 14; i++ {
		records = append(records, moodRecord(i, 4))
	}

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, "declining", trends.Trend)
}

func TestMoodTrendsStableWithinThreshold(t *testing.T) {
	// Recent and older averages differ by less than 0.5.
	records := make([]Record, 0, 14)
	for i := 0; i < 14; i++ {
		records = append(records, moodRecord(i, 3))
	}
	records[0].Mood = intPtr(4)

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, "stable", trends.Trend)
}

func TestMoodTrendsStableWhenTooFewRecords(t *testing.T) {
	records := make([]Record, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, moodRecord(i, 5))
	}

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, "stable", trends.Trend)
}

func TestMoodTrendsDistributionTotalsMatch(t *testing.T) {
	records := []Record{
		moodRecord(0, 5), moodRecord(1, 5), moodRecord(2, 3),
		moodRecord(3, 1), moodRecord(4, 4),
	}

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)

	sum := 0
	for mood := 1; mood <= 5; mood++ {
		count, ok := trends.MoodDistribution[mood]
		require.True(t, ok, "distribution missing mood %d", mood)
		sum += count
	}
	assert.Equal(t, trends.TotalCheckins, sum)
	assert.Equal(t, 2, trends.MoodDistribution[5])
	assert.Equal(t, 0, trends.MoodDistribution[2])
}

func TestMoodTrendsFirstOccurrenceWinsTies(t *testing.T) {
	records := []Record{
		moodRecord(0, 4), moodRecord(1, 4), moodRecord(2, 2), moodRecord(3, 2),
	}

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, dayDate(0), trends.BestDay.Date)
	assert.Equal(t, dayDate(2), trends.WorstDay.Date)
}

func TestMoodTrendsSkipsUnusableRecords(t *testing.T) {
	bad := moodRecord(1, 5)
	bad.Timestamp = "yesterday-ish"
	records := []Record{
		moodRecord(0, 4),
		bad,
		{Timestamp: dayStamp(2)}, // no mood
		moodRecord(3, 2),
	}

	trends, err := newEngine(records...).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, trends.TotalCheckins)
}

func TestMoodTrendsErrors(t *testing.T) {
	_, err := newEngine().MoodTrends(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrNoCheckinData)

	_, err = newEngine(Record{Timestamp: dayStamp(0)}).MoodTrends(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrNoMoodData)
}

func TestMoodTrendsIdempotent(t *testing.T) {
	engine := newEngine(moodRecord(0, 4), moodRecord(1, 2), moodRecord(2, 5))
	userID := uuid.New()

	first, err := engine.MoodTrends(userID, 30)
	require.NoError(t, err)
	second, err := engine.MoodTrends(userID, 30)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMoodVolatilityKnownValues(t *testing.T) {
	trends, err := newEngine(moodRecord(0, 1), moodRecord(1, 5)).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, trends.MoodVolatility, 0.001)

	solo, err := newEngine(moodRecord(0, 4)).MoodTrends(uuid.New(), 30)
	require.NoError(t, err)
	assert.Zero(t, solo.MoodVolatility)
}

func TestHabitAnalysisAlternatingCompletion(t *testing.T) {
	records := make([]Record, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, habitRecord(i, map[string]bool{"ate_breakfast": i%2 == 0}))
	}

	analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
	require.NoError(t, err)

	stats, ok := analysis.Habits["ate_breakfast"]
	require.True(t, ok)
	assert.Equal(t, "Breakfast", stats.Name)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.001)
	assert.Equal(t, "Fair", stats.Status)
	assert.Equal(t, 30, stats.TotalDays)
	assert.Equal(t, 15, stats.CompletedDays)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.BestStreak)
}

func TestHabitStreaksFreezeAfterFirstRun(t *testing.T) {
	pattern := []bool{true, true, false, true, true, true}
	records := make([]Record, 0, len(pattern))
	for i, done := range pattern {
		records = append(records, habitRecord(i, map[string]bool{"exercise": done}))
	}

	analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
	require.NoError(t, err)

	stats := analysis.Habits["exercise"]
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 3, stats.BestStreak)
}

func TestHabitStreaksStartAfterGap(t *testing.T) {
	pattern := []bool{false, true, true}
	records := make([]Record, 0, len(pattern))
	for i, done := range pattern {
		records = append(records, habitRecord(i, map[string]bool{"hydration": done}))
	}

	analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
	require.NoError(t, err)

	stats := analysis.Habits["hydration"]
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.BestStreak)
}

func TestHabitStreaksBrokenByUntrackedDay(t *testing.T) {
	records := []Record{
		habitRecord(0, map[string]bool{"exercise": true}),
		habitRecord(1, map[string]bool{"hydration": true}), // exercise not tracked
		habitRecord(2, map[string]bool{"exercise": true}),
	}

	analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
	require.NoError(t, err)

	stats := analysis.Habits["exercise"]
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.BestStreak)
	assert.Equal(t, 2, stats.TotalDays)
}

func TestHabitStreakBounds(t *testing.T) {
	patterns := [][]bool{
		{true, true, true},
		{false, false},
		{true, false, true, true, false},
		{false, true, false, true},
	}
	for _, pattern := range patterns {
		records := make([]Record, 0, len(pattern))
		for i, done := range pattern {
			records = append(records, habitRecord(i, map[string]bool{"medication_taken": done}))
		}

		analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
		require.NoError(t, err)

		stats := analysis.Habits["medication_taken"]
		assert.GreaterOrEqual(t, stats.CurrentStreak, 0)
		assert.LessOrEqual(t, stats.CurrentStreak, stats.BestStreak)
		assert.LessOrEqual(t, stats.BestStreak, stats.TotalDays)
	}
}

func TestHabitAnalysisOnlyReportsTrackedHabits(t *testing.T) {
	records := []Record{
		habitRecord(0, map[string]bool{"exercise": true}),
		habitRecord(1, map[string]bool{"exercise": false}),
	}

	analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	assert.Len(t, analysis.Habits, 1)
	assert.Contains(t, analysis.Habits, "exercise")
}

func TestHabitAnalysisOverallCompletion(t *testing.T) {
	records := []Record{
		habitRecord(0, map[string]bool{"ate_breakfast": true, "exercise": true}),
		habitRecord(1, map[string]bool{"ate_breakfast": true, "exercise": true}),
		habitRecord(2, map[string]bool{"ate_breakfast": true, "exercise": false}),
		habitRecord(3, map[string]bool{"ate_breakfast": true, "exercise": false}),
	}

	analysis, err := newEngine(records...).HabitAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, analysis.Habits["ate_breakfast"].CompletionRate, 0.001)
	assert.InDelta(t, 50.0, analysis.Habits["exercise"].CompletionRate, 0.001)
	assert.InDelta(t, 75.0, analysis.OverallCompletion, 0.001)
}

func TestHabitAnalysisEmpty(t *testing.T) {
	_, err := newEngine().HabitAnalysis(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrNoCheckinData)
}

func TestSleepAnalysisAverages(t *testing.T) {
	records := []Record{
		sleepRecord(0, 8, 4),
		sleepRecord(1, 6, 2),
	}

	analysis, err := newEngine(records...).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, analysis.AverageHours, 0.001)
	assert.InDelta(t, 3.0, analysis.AverageQuality, 0.001)
	assert.Equal(t, 1, analysis.GoodSleepDays)
	assert.Equal(t, 1, analysis.PoorSleepDays)
	assert.InDelta(t, 90.0, analysis.SleepConsistency, 0.001)
	assert.Equal(t, 2, analysis.TotalRecords)
}

func TestSleepGoodPoorClassification(t *testing.T) {
	good, err := newEngine(sleepRecord(0, 8, 5)).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, 1, good.GoodSleepDays)
	assert.Equal(t, 0, good.PoorSleepDays)

	poor, err := newEngine(sleepRecord(0, 5, 1)).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, poor.GoodSleepDays)
	assert.Equal(t, 1, poor.PoorSleepDays)
}

func TestSleepConsistencyPerfectWhenUniform(t *testing.T) {
	records := []Record{
		sleepRecord(0, 7.5, 4),
		sleepRecord(1, 7.5, 3),
		sleepRecord(2, 7.5, 4),
	}

	analysis, err := newEngine(records...).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, analysis.SleepConsistency, 0.001)

	solo, err := newEngine(sleepRecord(0, 4, 3)).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, solo.SleepConsistency, 0.001)
}

func TestSleepRecommendations(t *testing.T) {
	rested := make([]Record, 0, 7)
	for i := 0; i < 7; i++ {
		rested = append(rested, sleepRecord(i, 8, 4))
	}
	analysis, err := newEngine(rested...).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	require.Len(t, analysis.Recommendations, 1)

	short, err := newEngine(sleepRecord(0, 5, 4), sleepRecord(1, 5.5, 4)).SleepAnalysis(uuid.New(), 30)
	require.NoError(t, err)
	require.NotEmpty(t, short.Recommendations)
	assert.Contains(t, short.Recommendations[0], "7-8 hours")
}

func TestSleepAnalysisErrors(t *testing.T) {
	_, err := newEngine().SleepAnalysis(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrNoCheckinData)

	_, err = newEngine(moodRecord(0, 4)).SleepAnalysis(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrNoSleepData)
}

func TestWellnessScoreAllGoodInputs(t *testing.T) {
	records := make([]Record, 0, 7)
	for i := 0; i < 7; i++ {
		rec := sleepRecord(i, 8, 4)
		rec.Mood = intPtr(4)
		rec.Habits = map[string]bool{
			"ate_breakfast": true, "brushed_teeth": true, "medication_taken": true,
			"exercise": true, "hydration": true, "social_interaction": true,
		}
		records = append(records, rec)
	}

	score, err := newEngine(records...).WellnessScore(uuid.New(), 7)
	require.NoError(t, err)

	assert.InDelta(t, 75.0, score.MoodScore, 0.001)
	assert.InDelta(t, 100.0, score.HabitScore, 0.001)
	assert.InDelta(t, 87.5, score.SleepScore, 0.001)
	assert.InDelta(t, 86.3, score.OverallScore, 0.001)
	assert.Equal(t, "Excellent", score.ScoreLevel)
	assert.Len(t, score.Recommendations, 1)
}

func TestWellnessScoreWeightedSum(t *testing.T) {
	records := []Record{
		func() Record {
			rec := sleepRecord(0, 6.5, 3)
			rec.Mood = intPtr(2)
			rec.Habits = map[string]bool{"exercise": true, "hydration": false}
			return rec
		}(),
		moodRecord(1, 5),
	}

	score, err := newEngine(records...).WellnessScore(uuid.New(), 7)
	require.NoError(t, err)

	expected := score.MoodScore*0.4 + score.HabitScore*0.3 + score.SleepScore*0.3
	assert.InDelta(t, expected, score.OverallScore, 0.05)
}

func TestWellnessScoreDefaultsToMidline(t *testing.T) {
	// A record with no mood, habits, or sleep scores 50 on every component.
	energy := 3
	score, err := newEngine(Record{Timestamp: dayStamp(0), Energy: &energy}).WellnessScore(uuid.New(), 7)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, score.MoodScore, 0.001)
	assert.InDelta(t, 50.0, score.HabitScore, 0.001)
	assert.InDelta(t, 50.0, score.SleepScore, 0.001)
	assert.InDelta(t, 50.0, score.OverallScore, 0.001)
	assert.Equal(t, "Fair", score.ScoreLevel)
	assert.Len(t, score.Recommendations, 3)
}

func TestWellnessScoreIgnoresSocialInteraction(t *testing.T) {
	// Social interaction counts in habit analysis but not in the habit
	// component of the wellness score.
	records := []Record{
		habitRecord(0, map[string]bool{"social_interaction": true}),
		habitRecord(1, map[string]bool{"social_interaction": true}),
	}
	engine := newEngine(records...)

	analysis, err := engine.HabitAnalysis(uuid.New(), 7)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, analysis.Habits["social_interaction"].CompletionRate, 0.001)

	score, err := engine.WellnessScore(uuid.New(), 7)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, score.HabitScore, 0.001)
}

func TestWellnessScoreBounds(t *testing.T) {
	rec := sleepRecord(0, 3, 1)
	rec.Mood = intPtr(1)
	rec.Habits = map[string]bool{
		"ate_breakfast": false, "brushed_teeth": false, "medication_taken": false,
		"exercise": false, "hydration": false,
	}

	score, err := newEngine(rec).WellnessScore(uuid.New(), 7)
	require.NoError(t, err)

	for name, value := range map[string]float64{
		"overall": score.OverallScore,
		"mood":    score.MoodScore,
		"habit":   score.HabitScore,
		"sleep":   score.SleepScore,
	} {
		assert.GreaterOrEqual(t, value, 0.0, name)
		assert.LessOrEqual(t, value, 100.0, name)
	}
	assert.Equal(t, "Needs Attention", score.ScoreLevel)
}

func TestHistoryReturnsEmptySliceWithoutError(t *testing.T) {
	records, err := newEngine().History(uuid.New(), 30)
	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHistoryReturnsWindow(t *testing.T) {
	engine := newEngine(moodRecord(0, 4), moodRecord(1, 3))
	records, err := engine.History(uuid.New(), 30)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, dayStamp(0), records[0].Timestamp)
}

func TestCompletionRate(t *testing.T) {
	records := []Record{
		moodRecord(0, 4),
		moodRecord(1, 3),
		moodRecord(2, 4),
	}

	rate, err := newEngine(records...).CompletionRate(uuid.New(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, rate.DaysCompleted)
	assert.Equal(t, 4, rate.DaysMissed)
	assert.Equal(t, 7, rate.TotalDays)
	assert.InDelta(t, 42.9, rate.Rate, 0.001)
}

func TestCompletionRateCountsDaysOnce(t *testing.T) {
	morning := moodRecord(0, 4)
	evening := moodRecord(0, 3)
	evening.Timestamp = time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC).Format(TimestampLayout)
	unparsable := Record{Timestamp: "???", Mood: intPtr(3)}

	rate, err := newEngine(morning, evening, unparsable).CompletionRate(uuid.New(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, rate.DaysCompleted)
}

func TestCompletionRateEmpty(t *testing.T) {
	_, err := newEngine().CompletionRate(uuid.New(), 7)
	assert.ErrorIs(t, err, ErrNoCheckinData)
}

func TestTaskWeeklyStatsKeyedByName(t *testing.T) {
	records := []Record{
		habitRecord(0, map[string]bool{"exercise": true, "hydration": false}),
		habitRecord(1, map[string]bool{"exercise": true}),
	}

	stats, err := newEngine(records...).TaskWeeklyStats(uuid.New(), 7)
	require.NoError(t, err)

	assert.Contains(t, stats.Habits, "Exercise")
	assert.Contains(t, stats.Habits, "Hydration")
	assert.NotContains(t, stats.Habits, "exercise")
	assert.InDelta(t, 100.0, stats.Habits["Exercise"].CompletionRate, 0.001)
}

func TestQuantitativeSummaries(t *testing.T) {
	first := moodRecord(0, 2)
	first.Scales = map[string]float64{"hopelessness_level": 4}
	second := moodRecord(1, 4)
	hours1, hours2 := 7.5, 6.5
	first.SleepHours = &hours1
	second.SleepHours = &hours2

	summaries, err := newEngine(first, second).QuantitativeSummaries(
		uuid.New(), 30, []string{"mood", "sleep_hours", "hopelessness_level", "unknown_field"})
	require.NoError(t, err)

	mood := summaries["mood"]
	assert.Equal(t, 2, mood.Count)
	assert.InDelta(t, 3.0, mood.Average, 0.001)
	assert.InDelta(t, 2.0, mood.Min, 0.001)
	assert.InDelta(t, 4.0, mood.Max, 0.001)
	require.NotNil(t, mood.Average100)
	assert.InDelta(t, 50.0, *mood.Average100, 0.001)

	sleep := summaries["sleep_hours"]
	assert.Equal(t, 2, sleep.Count)
	assert.InDelta(t, 7.0, sleep.Average, 0.001)
	assert.Nil(t, sleep.Average100)

	custom := summaries["hopelessness_level"]
	assert.Equal(t, 1, custom.Count)
	assert.InDelta(t, 4.0, custom.Average, 0.001)
	require.NotNil(t, custom.Average100)
	assert.InDelta(t, 75.0, *custom.Average100, 0.001)

	assert.NotContains(t, summaries, "unknown_field")
}

func TestQuantitativeSummariesEmpty(t *testing.T) {
	_, err := newEngine().QuantitativeSummaries(uuid.New(), 30, []string{"mood"})
	assert.ErrorIs(t, err, ErrNoCheckinData)
}

func TestSourceFailureWrapsAnalysisError(t *testing.T) {
	engine := NewAnalytics(&stubSource{err: errors.New("connection refused")})

	_, err := engine.MoodTrends(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrAnalysisFailed)

	_, err = engine.WellnessScore(uuid.New(), 7)
	assert.ErrorIs(t, err, ErrAnalysisFailed)

	_, err = engine.History(uuid.New(), 30)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalysesAreIdempotent(t *testing.T) {
	rec := sleepRecord(0, 7, 4)
	rec.Mood = intPtr(3)
	rec.Habits = map[string]bool{"exercise": true}
	engine := newEngine(rec, moodRecord(1, 5))
	userID := uuid.New()

	habits1, err := engine.HabitAnalysis(userID, 30)
	require.NoError(t, err)
	habits2, err := engine.HabitAnalysis(userID, 30)
	require.NoError(t, err)
	assert.Equal(t, habits1, habits2)

	score1, err := engine.WellnessScore(userID, 7)
	require.NoError(t, err)
	score2, err := engine.WellnessScore(userID, 7)
	require.NoError(t, err)
	assert.Equal(t, score1, score2)
}

func intPtr(v int) *int { return &v }
