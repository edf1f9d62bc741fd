package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OnboardingState struct {
	UserId                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Mode                   string         `gorm:"type:varchar(16);default:'tutorial'"`
	QuestionsAnswered      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	QuestionsAnsweredCount int            `gorm:"default:0"`
	MilestonesCompleted    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	PersonaSignals         datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	DaysOfInteraction      int            `gorm:"default:0"`
	LastInteractionDay     string         `gorm:"type:varchar(10)"`
	ToughLoveEnabled       bool           `gorm:"default:false"`
	GraduatedAt            *time.Time
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (OnboardingState) TableName() string {
	return "onboarding_states"
}

type QuestionAnswer struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_answers_user_question,priority:1"`
	QuestionId string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_answers_user_question,priority:2"`
	Answer     string    `gorm:"type:text;not null"`
	Quality    string    `gorm:"type:varchar(16);default:'partial'"`
	Confidence float64   `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (QuestionAnswer) TableName() string {
	return "question_answers"
}
