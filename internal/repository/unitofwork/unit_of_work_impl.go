package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ai-companion-be/internal/repository/contract"
	"ai-companion-be/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) JournalEntryRepository() contract.JournalEntryRepository {
	return implementation.NewJournalEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EntityMentionRepository() contract.EntityMentionRepository {
	return implementation.NewEntityMentionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LeadRepository() contract.LeadRepository {
	return implementation.NewLeadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) KnownEntityRepository() contract.KnownEntityRepository {
	return implementation.NewKnownEntityRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GlossaryTermRepository() contract.GlossaryTermRepository {
	return implementation.NewGlossaryTermRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TaskRepository() contract.TaskRepository {
	return implementation.NewTaskRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GoalRepository() contract.GoalRepository {
	return implementation.NewGoalRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OnboardingStateRepository() contract.OnboardingStateRepository {
	return implementation.NewOnboardingStateRepository(u.getDB())
}

func (u *UnitOfWorkImpl) QuestionAnswerRepository() contract.QuestionAnswerRepository {
	return implementation.NewQuestionAnswerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProviderRegistrationRepository() contract.ProviderRegistrationRepository {
	return implementation.NewProviderRegistrationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SyncAuditLogRepository() contract.SyncAuditLogRepository {
	return implementation.NewSyncAuditLogRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DreamRunRepository() contract.DreamRunRepository {
	return implementation.NewDreamRunRepository(u.getDB())
}
