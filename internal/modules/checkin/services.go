package checkin

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckinInput carries the fields a user can report in one check-in.
// Every field is optional; absent fields stay absent on the stored row.
type CheckinInput struct {
	Mood              *int               `json:"mood"`
	Energy            *int               `json:"energy"`
	AteBreakfast      *bool              `json:"ate_breakfast"`
	BrushedTeeth      *bool              `json:"brushed_teeth"`
	MedicationTaken   *bool              `json:"medication_taken"`
	Exercise          *bool              `json:"exercise"`
	Hydration         *bool              `json:"hydration"`
	SocialInteraction *bool              `json:"social_interaction"`
	SleepHours        *float64           `json:"sleep_hours"`
	SleepQuality      *int               `json:"sleep_quality"`
	Note              string             `json:"note"`
	Scales            map[string]float64 `json:"scales"`
}

// CheckinService handles check-in submission and retrieval.
type CheckinService struct {
	db *gorm.DB
}

// NewCheckinService creates a new CheckinService.
func NewCheckinService(db *gorm.DB) *CheckinService {
	return &CheckinService{db: db}
}

// Create validates and stores a new daily check-in.
func (s *CheckinService) Create(userID uuid.UUID, input *CheckinInput) (*Checkin, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := now.Format(DateLayout)

	var existing Checkin
	if err := s.db.Where("user_id = ? AND timestamp LIKE ?", userID, today+"%").First(&existing).Error; err == nil {
		return nil, errors.New("already checked in today")
	}

	check := &Checkin{
		UserID:            userID,
		Timestamp:         now.Format(TimestampLayout),
		Mood:              input.Mood,
		Energy:            input.Energy,
		AteBreakfast:      input.AteBreakfast,
		BrushedTeeth:      input.BrushedTeeth,
		MedicationTaken:   input.MedicationTaken,
		Exercise:          input.Exercise,
		Hydration:         input.Hydration,
		SocialInteraction: input.SocialInteraction,
		SleepHours:        input.SleepHours,
		SleepQuality:      input.SleepQuality,
		Note:              input.Note,
	}

	if len(input.Scales) > 0 {
		raw, err := json.Marshal(input.Scales)
		if err != nil {
			return nil, err
		}
		check.Scales = datatypes.JSON(raw)
	}

	if err := s.db.Create(check).Error; err != nil {
		return nil, err
	}

	return check, nil
}

// Today returns today's check-in for a user, if one exists.
func (s *CheckinService) Today(userID uuid.UUID) (*Checkin, error) {
	today := time.Now().UTC().Format(DateLayout)
	var check Checkin
	if err := s.db.Where("user_id = ? AND timestamp LIKE ?", userID, today+"%").First(&check).Error; err != nil {
		return nil, err
	}
	return &check, nil
}

func validateInput(input *CheckinInput) error {
	if err := checkScale("mood", input.Mood); err != nil {
		return err
	}
	if err := checkScale("energy", input.Energy); err != nil {
		return err
	}
	if err := checkScale("sleep_quality", input.SleepQuality); err != nil {
		return err
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return errors.New("sleep_hours must be between 0 and 24")
	}
	for name, value := range input.Scales {
		if value < 1 || value > 5 {
			return errors.New(name + " must be between 1 and 5")
		}
	}

	hasHabit := input.AteBreakfast != nil || input.BrushedTeeth != nil ||
		input.MedicationTaken != nil || input.Exercise != nil ||
		input.Hydration != nil || input.SocialInteraction != nil
	if input.Mood == nil && input.Energy == nil && input.SleepHours == nil &&
		input.SleepQuality == nil && !hasHabit && len(input.Scales) == 0 {
		return errors.New("check-in must include at least one field")
	}

	return nil
}

func checkScale(name string, value *int) error {
	if value != nil && (*value < 1 || *value > 5) {
		return errors.New(name + " must be between 1 and 5")
	}
	return nil
}

// RecordStore loads check-in snapshots for the analytics engine,
// most recent first.
type RecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// RecentRecords returns up to limit records for a user, newest first.
func (s *RecordStore) RecentRecords(userID uuid.UUID, limit int) ([]Record, error) {
	var rows []Checkin
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Record())
	}
	return records, nil
}
