package mapper

import (
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		UserId:    msg.UserId,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	out := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		out[i] = m.ToEntity(msg)
	}
	return out
}
