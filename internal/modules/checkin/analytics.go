package checkin

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoCheckinData means the user has no records in the window.
	ErrNoCheckinData = errors.New("no check-in data available")
	// ErrNoMoodData means no record had both a mood and a valid timestamp.
	ErrNoMoodData = errors.New("no valid mood data found")
	// ErrNoSleepData means no record had sleep hours, quality, and a valid timestamp.
	ErrNoSleepData = errors.New("no valid sleep data found")
	// ErrAnalysisFailed wraps record-source failures.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// Fixed thresholds the scoring contract depends on. Changing any of
// these changes user-visible scores and trends.
const (
	moodTrendThreshold = 0.5
	trendRecentWindow  = 7
	trendCompareWindow = 14

	moodWeight  = 0.4
	habitWeight = 0.3
	sleepWeight = 0.3
)

var trackedHabits = []struct{ key, name string }{
	{"ate_breakfast", "Breakfast"},
	{"brushed_teeth", "Teeth Brushing"},
	{"medication_taken", "Medication"},
	{"exercise", "Exercise"},
	{"hydration", "Hydration"},
	{"social_interaction", "Social Interaction"},
}

// The wellness composite scores five habits; social interaction is
// tracked in habit analysis but not counted here.
var scoredHabitKeys = []string{
	"ate_breakfast", "brushed_teeth", "medication_taken", "exercise", "hydration",
}

// RecordSource supplies a user's recent check-in records, newest first.
// Implementations return at most limit records and never re-order them;
// every analysis relies on newest-first input.
type RecordSource interface {
	RecentRecords(userID uuid.UUID, limit int) ([]Record, error)
}

// Analytics computes read-only statistics over check-in records. It
// holds no state between calls; every method fetches a fresh snapshot
// from its source, so concurrent calls are safe as long as the source is.
type Analytics struct {
	source RecordSource
}

// NewAnalytics creates a new Analytics engine backed by source.
func NewAnalytics(source RecordSource) *Analytics {
	return &Analytics{source: source}
}

func (a *Analytics) load(userID uuid.UUID, days int) ([]Record, error) {
	records, err := a.source.RecentRecords(userID, days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return records, nil
}

// MoodTrends analyzes mood over the window: average, volatility, a
// three-way trend, best/worst days, and the 1-5 distribution.
func (a *Analytics) MoodTrends(userID uuid.UUID, days int) (*MoodTrends, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoCheckinData
	}

	type moodEntry struct {
		date      string
		mood      int
		timestamp string
	}

	valid := make([]moodEntry, 0, len(records))
	for _, rec := range records {
		if rec.Mood == nil {
			continue
		}
		when, ok := parseTimestamp(rec.Timestamp)
		if !ok {
			continue
		}
		valid = append(valid, moodEntry{
			date:      when.Format(DateLayout),
			mood:      *rec.Mood,
			timestamp: rec.Timestamp,
		})
	}
	if len(valid) == 0 {
		return nil, ErrNoMoodData
	}

	moods := make([]float64, len(valid))
	for i, e := range valid {
		moods[i] = float64(e.mood)
	}

	// Trend compares the newest seven entries against the seven before
	// them. With fewer than eight entries there is nothing to compare.
	trend := "stable"
	if len(valid) > trendRecentWindow {
		recent := mean(moods[:trendRecentWindow])
		older := mean(moods[trendRecentWindow:min(trendCompareWindow, len(moods))])
		switch {
		case recent > older+moodTrendThreshold:
			trend = "improving"
		case recent < older-moodTrendThreshold:
			trend = "declining"
		}
	}

	best, worst := valid[0], valid[0]
	for _, e := range valid[1:] {
		if e.mood > best.mood {
			best = e
		}
		if e.mood < worst.mood {
			worst = e
		}
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, e := range valid {
		if e.mood >= 1 && e.mood <= 5 {
			distribution[e.mood]++
		}
	}

	recentData := make([]MoodPoint, 0, trendRecentWindow)
	for _, e := range valid[:min(trendRecentWindow, len(valid))] {
		recentData = append(recentData, MoodPoint{
			Date:      e.date,
			Mood:      e.mood,
			Timestamp: e.timestamp,
		})
	}

	return &MoodTrends{
		PeriodDays:       days,
		TotalCheckins:    len(valid),
		AverageMood:      round2(mean(moods)),
		MoodVolatility:   round2(stddev(moods)),
		Trend:            trend,
		BestDay:          DayMood{Date: best.date, Mood: best.mood},
		WorstDay:         DayMood{Date: worst.date, Mood: worst.mood},
		MoodDistribution: distribution,
		RecentData:       recentData,
	}, nil
}

// HabitAnalysis reports completion rates and streaks for every tracked
// habit that appears at least once in the window.
func (a *Analytics) HabitAnalysis(userID uuid.UUID, days int) (*HabitAnalysis, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoCheckinData
	}

	habits := make(map[string]HabitStats)
	var rateSum float64
	for _, h := range trackedHabits {
		total, completed := 0, 0
		for _, rec := range records {
			done, present := rec.Habits[h.key]
			if !present {
				continue
			}
			total++
			if done {
				completed++
			}
		}
		if total == 0 {
			continue
		}

		rate := round1(float64(completed) / float64(total) * 100)
		current, bestStreak := habitStreaks(records, h.key)
		habits[h.key] = HabitStats{
			Name:           h.name,
			CompletionRate: rate,
			TotalDays:      total,
			CompletedDays:  completed,
			CurrentStreak:  current,
			BestStreak:     bestStreak,
			Status:         habitStatus(rate),
		}
		rateSum += rate
	}

	overall := 0.0
	if len(habits) > 0 {
		overall = round1(rateSum / float64(len(habits)))
	}

	return &HabitAnalysis{
		PeriodDays:        days,
		Habits:            habits,
		OverallCompletion: overall,
	}, nil
}

// SleepAnalysis reports sleep duration and quality statistics plus
// rule-based recommendations.
func (a *Analytics) SleepAnalysis(userID uuid.UUID, days int) (*SleepAnalysis, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoCheckinData
	}

	type sleepEntry struct {
		date    string
		hours   float64
		quality int
	}

	valid := make([]sleepEntry, 0, len(records))
	for _, rec := range records {
		if rec.SleepHours == nil || rec.SleepQuality == nil {
			continue
		}
		when, ok := parseTimestamp(rec.Timestamp)
		if !ok {
			continue
		}
		valid = append(valid, sleepEntry{
			date:    when.Format(DateLayout),
			hours:   *rec.SleepHours,
			quality: *rec.SleepQuality,
		})
	}
	if len(valid) == 0 {
		return nil, ErrNoSleepData
	}

	hours := make([]float64, len(valid))
	qualities := make([]float64, len(valid))
	good, poor := 0, 0
	for i, e := range valid {
		hours[i] = e.hours
		qualities[i] = float64(e.quality)
		if e.hours >= 7 && e.quality >= 4 {
			good++
		}
		if e.hours < 6 || e.quality <= 2 {
			poor++
		}
	}

	avgHours := round1(mean(hours))
	avgQuality := round1(mean(qualities))

	consistency := 100.0
	if len(hours) >= 2 {
		consistency = round1(math.Max(0, 100-variance(hours)*10))
	}

	recentData := make([]SleepPoint, 0, trendRecentWindow)
	for _, e := range valid[:min(trendRecentWindow, len(valid))] {
		recentData = append(recentData, SleepPoint{
			Date:    e.date,
			Hours:   e.hours,
			Quality: e.quality,
		})
	}

	return &SleepAnalysis{
		PeriodDays:       days,
		TotalRecords:     len(valid),
		AverageHours:     avgHours,
		AverageQuality:   avgQuality,
		GoodSleepDays:    good,
		PoorSleepDays:    poor,
		SleepConsistency: consistency,
		Recommendations:  sleepRecommendations(avgHours, avgQuality, poor),
		RecentData:       recentData,
	}, nil
}

// WellnessScore combines mood, habit, and sleep sub-scores into one
// weighted 0-100 composite.
func (a *Analytics) WellnessScore(userID uuid.UUID, days int) (*WellnessScore, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoCheckinData
	}

	moodScore := round1(moodComponent(records))
	habitScore := round1(habitComponent(records))
	sleepScore := round1(sleepComponent(records))
	overall := round1(moodScore*moodWeight + habitScore*habitWeight + sleepScore*sleepWeight)

	return &WellnessScore{
		OverallScore:    overall,
		MoodScore:       moodScore,
		HabitScore:      habitScore,
		SleepScore:      sleepScore,
		PeriodDays:      days,
		ScoreLevel:      scoreLevel(overall),
		Recommendations: wellnessRecommendations(moodScore, habitScore, sleepScore),
	}, nil
}

// History returns the raw record window. No data is an empty slice,
// not an error.
func (a *Analytics) History(userID uuid.UUID, days int) ([]Record, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// CompletionRate reports the share of days in the window that have at
// least one check-in with a valid timestamp.
func (a *Analytics) CompletionRate(userID uuid.UUID, days int) (*CompletionRate, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoCheckinData
	}

	seen := make(map[string]struct{})
	for _, rec := range records {
		when, ok := parseTimestamp(rec.Timestamp)
		if !ok {
			continue
		}
		seen[when.Format(DateLayout)] = struct{}{}
	}

	completed := len(seen)
	return &CompletionRate{
		PeriodDays:    days,
		Rate:          round1(float64(completed) / float64(days) * 100),
		DaysCompleted: completed,
		DaysMissed:    days - completed,
		TotalDays:     days,
	}, nil
}

// TaskWeeklyStats is the habit analysis keyed by display name instead
// of raw habit key, for the weekly summary view.
func (a *Analytics) TaskWeeklyStats(userID uuid.UUID, days int) (*HabitAnalysis, error) {
	analysis, err := a.HabitAnalysis(userID, days)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]HabitStats, len(analysis.Habits))
	for _, stats := range analysis.Habits {
		byName[stats.Name] = stats
	}
	analysis.Habits = byName
	return analysis, nil
}

// QuantitativeSummaries computes count, average, min, and max for each
// requested field. Fields with no values in the window are omitted.
func (a *Analytics) QuantitativeSummaries(userID uuid.UUID, days int, fields []string) (map[string]FieldSummary, error) {
	records, err := a.load(userID, days)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoCheckinData
	}

	summaries := make(map[string]FieldSummary)
	for _, field := range fields {
		var values []float64
		for _, rec := range records {
			if v, ok := rec.Value(field); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		minVal, maxVal := values[0], values[0]
		for _, v := range values[1:] {
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}

		summary := FieldSummary{
			Count:   len(values),
			Average: round2(mean(values)),
			Min:     minVal,
			Max:     maxVal,
		}
		if field != "sleep_hours" {
			converted := round1(ScoreTo100(summary.Average))
			summary.Average100 = &converted
		}
		summaries[field] = summary
	}

	return summaries, nil
}

// habitStreaks walks records newest-first. The current streak is the
// length of the first completed run encountered and freezes once that
// run breaks; the best streak is the longest run anywhere in the window.
// A record without the habit key breaks a run.
func habitStreaks(records []Record, key string) (current, best int) {
	temp := 0
	firstRunDone := false
	for _, rec := range records {
		if rec.Habits[key] {
			temp++
			if !firstRunDone {
				current = temp
			}
			if temp > best {
				best = temp
			}
		} else {
			if temp > 0 {
				firstRunDone = true
			}
			temp = 0
		}
	}
	return current, best
}

func habitStatus(rate float64) string {
	switch {
	case rate >= 90:
		return "Excellent"
	case rate >= 75:
		return "Good"
	case rate >= 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func moodComponent(records []Record) float64 {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		mood := 3.0
		if rec.Mood != nil {
			mood = float64(*rec.Mood)
		}
		values = append(values, mood)
	}
	if len(values) == 0 {
		return 50
	}
	return (mean(values) - 1) * 25
}

func habitComponent(records []Record) float64 {
	possible, completed := 0, 0
	for _, rec := range records {
		for _, key := range scoredHabitKeys {
			done, present := rec.Habits[key]
			if !present {
				continue
			}
			possible++
			if done {
				completed++
			}
		}
	}
	if possible == 0 {
		return 50
	}
	return float64(completed) / float64(possible) * 100
}

func sleepComponent(records []Record) float64 {
	var scores []float64
	for _, rec := range records {
		if rec.SleepHours == nil || rec.SleepQuality == nil {
			continue
		}
		hourScore := hourBandScore(*rec.SleepHours)
		qualityScore := float64(*rec.SleepQuality-1) * 25
		scores = append(scores, (hourScore+qualityScore)/2)
	}
	if len(scores) == 0 {
		return 50
	}
	return mean(scores)
}

func hourBandScore(hours float64) float64 {
	switch {
	case hours >= 7 && hours <= 9:
		return 100
	case hours >= 6 && hours <= 10:
		return 80
	default:
		return 40
	}
}

func scoreLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Attention"
	}
}

func sleepRecommendations(avgHours, avgQuality float64, poorDays int) []string {
	recs := []string{}
	if avgHours < 7 {
		recs = append(recs, "Try to get at least 7-8 hours of sleep per night")
	}
	if avgHours > 9 {
		recs = append(recs, "You may be sleeping more than you need, which can affect energy levels")
	}
	if avgQuality < 3 {
		recs = append(recs, "Work on a consistent bedtime routine to improve sleep quality")
	}
	if poorDays > 3 {
		recs = append(recs, "You had several poor sleep days this period, consider talking to a specialist")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your sleep habits look solid, keep it up")
	}
	return recs
}

func wellnessRecommendations(moodScore, habitScore, sleepScore float64) []string {
	recs := []string{}
	if moodScore < 60 {
		recs = append(recs, "Consider activities that lift your mood, like exercise or time with friends")
	}
	if habitScore < 60 {
		recs = append(recs, "Focus on building consistent daily habits")
	}
	if sleepScore < 60 {
		recs = append(recs, "Prioritize sleep, it affects both mood and energy")
	}
	if len(recs) == 0 {
		recs = append(recs, "You're doing great, keep up the good work")
	}
	return recs
}

func parseTimestamp(ts string) (time.Time, bool) {
	when, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return time.Time{}, false
	}
	return when, true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is the population variance.
func variance(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation, 0 for fewer than two
// samples.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Sqrt(variance(values))
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
