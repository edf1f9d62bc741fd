package unitofwork

import (
	"context"

	"ai-companion-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatMessageRepository() contract.ChatMessageRepository

	JournalEntryRepository() contract.JournalEntryRepository
	EntityMentionRepository() contract.EntityMentionRepository
	LeadRepository() contract.LeadRepository

	KnownEntityRepository() contract.KnownEntityRepository
	GlossaryTermRepository() contract.GlossaryTermRepository

	TaskRepository() contract.TaskRepository
	GoalRepository() contract.GoalRepository

	OnboardingStateRepository() contract.OnboardingStateRepository
	QuestionAnswerRepository() contract.QuestionAnswerRepository

	ProviderRegistrationRepository() contract.ProviderRegistrationRepository
	SyncAuditLogRepository() contract.SyncAuditLogRepository

	DreamRunRepository() contract.DreamRunRepository
}
