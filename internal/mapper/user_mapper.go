package mapper

import (
	"time"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var deletedAt *time.Time
	if u.DeletedAt.Valid {
		t := u.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: u.DeletedAt.Valid,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	out := make([]*entity.User, len(users))
	for i, u := range users {
		out[i] = m.ToEntity(u)
	}
	return out
}
