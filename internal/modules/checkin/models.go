package checkin

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TimestampLayout is the wire format for check-in timestamps. It sorts
// lexicographically in chronological order, so string comparison and
// SQL ORDER BY both work on it.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the day portion of TimestampLayout.
const DateLayout = "2006-01-02"

// Checkin represents one daily self-reported wellness entry.
type Checkin struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_checkins_user_time" json:"user_id"`
	Timestamp         string         `gorm:"size:19;not null;index:idx_checkins_user_time" json:"timestamp"`
	Mood              *int           `json:"mood,omitempty"`
	Energy            *int           `json:"energy,omitempty"`
	AteBreakfast      *bool          `json:"ate_breakfast,omitempty"`
	BrushedTeeth      *bool          `json:"brushed_teeth,omitempty"`
	MedicationTaken   *bool          `json:"medication_taken,omitempty"`
	Exercise          *bool          `json:"exercise,omitempty"`
	Hydration         *bool          `json:"hydration,omitempty"`
	SocialInteraction *bool          `json:"social_interaction,omitempty"`
	SleepHours        *float64       `json:"sleep_hours,omitempty"`
	SleepQuality      *int           `json:"sleep_quality,omitempty"`
	Note              string         `gorm:"size:280" json:"note,omitempty"`
	Scales            datatypes.JSON `gorm:"type:jsonb" json:"scales,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// Record is the read-only snapshot of a check-in consumed by the
// analytics engine. Habit keys are present in the map only when the
// habit was reported that day; a false value means reported-but-skipped.
type Record struct {
	Timestamp    string             `json:"timestamp"`
	Mood         *int               `json:"mood,omitempty"`
	Energy       *int               `json:"energy,omitempty"`
	Habits       map[string]bool    `json:"habits,omitempty"`
	SleepHours   *float64           `json:"sleep_hours,omitempty"`
	SleepQuality *int               `json:"sleep_quality,omitempty"`
	Scales       map[string]float64 `json:"scales,omitempty"`
}

// Record converts a stored check-in row into its analytics snapshot.
func (c *Checkin) Record() Record {
	rec := Record{
		Timestamp:    c.Timestamp,
		Mood:         c.Mood,
		Energy:       c.Energy,
		SleepHours:   c.SleepHours,
		SleepQuality: c.SleepQuality,
	}

	habits := make(map[string]bool)
	for key, val := range map[string]*bool{
		"ate_breakfast":      c.AteBreakfast,
		"brushed_teeth":      c.BrushedTeeth,
		"medication_taken":   c.MedicationTaken,
		"exercise":           c.Exercise,
		"hydration":          c.Hydration,
		"social_interaction": c.SocialInteraction,
	} {
		if val != nil {
			habits[key] = *val
		}
	}
	if len(habits) > 0 {
		rec.Habits = habits
	}

	if len(c.Scales) > 0 {
		var scales map[string]float64
		if err := json.Unmarshal(c.Scales, &scales); err == nil && len(scales) > 0 {
			rec.Scales = scales
		}
	}

	return rec
}

// Value returns the numeric value of a named field when the record has
// one. Built-in fields resolve first, then any custom scale field.
func (r Record) Value(field string) (float64, bool) {
	switch field {
	case "mood":
		if r.Mood != nil {
			return float64(*r.Mood), true
		}
	case "energy":
		if r.Energy != nil {
			return float64(*r.Energy), true
		}
	case "sleep_hours":
		if r.SleepHours != nil {
			return *r.SleepHours, true
		}
	case "sleep_quality":
		if r.SleepQuality != nil {
			return float64(*r.SleepQuality), true
		}
	default:
		if v, ok := r.Scales[field]; ok {
			return v, true
		}
	}
	return 0, false
}

// --- Analysis result types embedded in this package ---

// DayMood is a single dated mood value.
type DayMood struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
}

// MoodPoint is one entry of the recent-mood series.
type MoodPoint struct {
	Date      string `json:"date"`
	Mood      int    `json:"mood"`
	Timestamp string `json:"timestamp"`
}

// MoodTrends summarizes mood statistics over a window of check-ins.
type MoodTrends struct {
	PeriodDays       int         `json:"period_days"`
	TotalCheckins    int         `json:"total_checkins"`
	AverageMood      float64     `json:"average_mood"`
	MoodVolatility   float64     `json:"mood_volatility"`
	Trend            string      `json:"trend"`
	BestDay          DayMood     `json:"best_day"`
	WorstDay         DayMood     `json:"worst_day"`
	MoodDistribution map[int]int `json:"mood_distribution"`
	RecentData       []MoodPoint `json:"recent_data"`
}

// HabitStats describes completion and streaks for a single habit.
type HabitStats struct {
	Name           string  `json:"name"`
	CompletionRate float64 `json:"completion_rate"`
	TotalDays      int     `json:"total_days"`
	CompletedDays  int     `json:"completed_days"`
	CurrentStreak  int     `json:"current_streak"`
	BestStreak     int     `json:"best_streak"`
	Status         string  `json:"status"`
}

// HabitAnalysis aggregates per-habit stats over a window of check-ins.
type HabitAnalysis struct {
	PeriodDays        int                   `json:"period_days"`
	Habits            map[string]HabitStats `json:"habits"`
	OverallCompletion float64               `json:"overall_completion"`
}

// SleepPoint is one entry of the recent-sleep series.
type SleepPoint struct {
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Quality int     `json:"quality"`
}

// SleepAnalysis summarizes sleep statistics over a window of check-ins.
type SleepAnalysis struct {
	PeriodDays       int          `json:"period_days"`
	TotalRecords     int          `json:"total_records"`
	AverageHours     float64      `json:"average_hours"`
	AverageQuality   float64      `json:"average_quality"`
	GoodSleepDays    int          `json:"good_sleep_days"`
	PoorSleepDays    int          `json:"poor_sleep_days"`
	SleepConsistency float64      `json:"sleep_consistency"`
	Recommendations  []string     `json:"recommendations"`
	RecentData       []SleepPoint `json:"recent_data"`
}

// WellnessScore is the weighted composite of mood, habit, and sleep
// sub-scores on a 0-100 scale.
type WellnessScore struct {
	OverallScore    float64  `json:"overall_score"`
	MoodScore       float64  `json:"mood_score"`
	HabitScore      float64  `json:"habit_score"`
	SleepScore      float64  `json:"sleep_score"`
	PeriodDays      int      `json:"period_days"`
	ScoreLevel      string   `json:"score_level"`
	Recommendations []string `json:"recommendations"`
}

// CompletionRate reports how many days in the window have a check-in.
type CompletionRate struct {
	PeriodDays    int     `json:"period_days"`
	Rate          float64 `json:"rate"`
	DaysCompleted int     `json:"days_completed"`
	DaysMissed    int     `json:"days_missed"`
	TotalDays     int     `json:"total_days"`
}

// FieldSummary holds descriptive statistics for one quantitative field.
// Average100 is the average projected onto the 0-100 scale and is set
// for 1-5 scale fields only.
type FieldSummary struct {
	Count      int      `json:"count"`
	Average    float64  `json:"average"`
	Min        float64  `json:"min"`
	Max        float64  `json:"max"`
	Average100 *float64 `json:"average_100,omitempty"`
}
