package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_user_created,priority:1"`
	SessionId string    `gorm:"type:varchar(128);index"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_chat_messages_user_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
