package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/extract"
)

type IExtractionService interface {
	Parse(ctx context.Context, transcript *dto.DayTranscript) *dto.ExtractedRecordSet
	Route(ctx context.Context, userId uuid.UUID, day time.Time, records *dto.ExtractedRecordSet) dto.RoutingCounts
}

// extractionService parses the day transcript into typed records and routes
// them into durable stores. Routing is resolve-or-lead for entities and
// upsert-based everywhere else, so reprocessing a day is harmless.
type extractionService struct {
	uowFactory unitofwork.RepositoryFactory
	extractor  *extract.Extractor
	log        logger.ILogger
}

func NewExtractionService(
	uowFactory unitofwork.RepositoryFactory,
	extractor *extract.Extractor,
	log logger.ILogger,
) IExtractionService {
	return &extractionService{
		uowFactory: uowFactory,
		extractor:  extractor,
		log:        log,
	}
}

func (s *extractionService) Parse(ctx context.Context, transcript *dto.DayTranscript) *dto.ExtractedRecordSet {
	return s.extractor.Parse(ctx, transcript)
}

// Route fans one record set out into the store. A parent journal entry is
// written first; mentions and leads link back to it. Per-record failures
// are swallowed and only reduce the reported counts.
func (s *extractionService) Route(ctx context.Context, userId uuid.UUID, day time.Time, records *dto.ExtractedRecordSet) dto.RoutingCounts {
	counts := dto.RoutingCounts{}
	if records.IsEmpty() {
		return counts
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	journal := &entity.JournalEntry{
		Id:        uuid.New(),
		UserId:    userId,
		Date:      day,
		Summary:   summarizeRecords(records),
		CreatedAt: time.Now(),
	}
	if err := uow.JournalEntryRepository().Create(ctx, journal); err != nil {
		// Without a parent entry there is nothing to link against; the
		// whole routing pass degrades to a counted failure.
		s.log.Error("extraction", "failed to create journal entry", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userId,
		})
		counts.Failures++
		return counts
	}
	counts.JournalId = journal.Id.String()

	for _, rec := range records.Entities {
		resolved, err := s.routeEntity(ctx, uow, userId, journal.Id, rec)
		if err != nil {
			s.log.Warn("extraction", "entity routing failed", map[string]interface{}{
				"error": err.Error(),
				"name":  rec.Name,
			})
			counts.Failures++
			continue
		}
		if resolved {
			counts.Mentions++
		} else {
			counts.Leads++
		}
	}

	for _, rec := range records.Tasks {
		if err := s.routeTask(ctx, uow, userId, rec); err != nil {
			s.log.Warn("extraction", "task routing failed", map[string]interface{}{
				"error": err.Error(),
				"title": rec.Title,
			})
			counts.Failures++
			continue
		}
		counts.Tasks++
	}

	for _, rec := range records.GlossaryCandidates {
		created, err := s.routeGlossary(ctx, uow, userId, rec)
		if err != nil {
			s.log.Warn("extraction", "glossary routing failed", map[string]interface{}{
				"error": err.Error(),
				"term":  rec.Term,
			})
			counts.Failures++
			continue
		}
		if created {
			counts.Glossary++
		}
	}

	if len(records.QuestionAnswers) > 0 {
		answered := s.routeAnswers(ctx, uow, userId, records.QuestionAnswers, &counts)
		if answered > 0 {
			if err := s.recordAnswersOnState(ctx, uow, userId, records.QuestionAnswers); err != nil {
				s.log.Warn("extraction", "failed to update onboarding answers", map[string]interface{}{
					"error":   err.Error(),
					"user_id": userId,
				})
			}
		}
	}

	return counts
}

// routeEntity resolves a mention against known entities by case-insensitive
// name match. A hit becomes a mention link, a miss becomes a lead. The
// returned flag reports which side the record landed on.
func (s *extractionService) routeEntity(ctx context.Context, uow unitofwork.UnitOfWork, userId, journalId uuid.UUID, rec dto.ExtractedEntity) (bool, error) {
	known, err := uow.KnownEntityRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.NameILike{Name: rec.Name},
	)
	if err != nil {
		return false, err
	}

	if known != nil {
		return true, uow.EntityMentionRepository().Create(ctx, &entity.EntityMention{
			Id:             uuid.New(),
			UserId:         userId,
			JournalEntryId: journalId,
			KnownEntityId:  known.Id,
			Context:        rec.Context,
			Sentiment:      rec.Sentiment,
			CreatedAt:      time.Now(),
		})
	}

	return false, uow.LeadRepository().Create(ctx, &entity.Lead{
		Id:               uuid.New(),
		UserId:           userId,
		JournalEntryId:   journalId,
		MentionText:      rec.Name,
		Context:          rec.Context,
		RelationshipType: inferRelationship(rec.Context),
		CreatedAt:        time.Now(),
	})
}

func (s *extractionService) routeTask(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, rec dto.ExtractedTask) error {
	task := &entity.Task{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       rec.Title,
		Description: rec.Description,
		Context:     rec.Context,
		Priority:    rec.Priority,
		Status:      constant.TaskStatusOpen,
		IsExplicit:  rec.IsExplicit,
		CreatedAt:   time.Now(),
	}
	if rec.DueDate != "" {
		if due, err := time.Parse(constant.DayFormat, rec.DueDate); err == nil {
			task.DueDate = &due
		}
	}
	return uow.TaskRepository().Create(ctx, task)
}

// routeGlossary deduplicates by case-insensitive term before writing.
func (s *extractionService) routeGlossary(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, rec dto.GlossaryCandidate) (bool, error) {
	existing, err := uow.GlossaryTermRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByTermLower{Term: rec.Term},
	)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	err = uow.GlossaryTermRepository().Create(ctx, &entity.GlossaryTerm{
		Id:         uuid.New(),
		UserId:     userId,
		Term:       rec.Term,
		Definition: rec.Definition,
		TermType:   rec.TermType,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *extractionService) routeAnswers(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, answers []dto.ExtractedAnswer, counts *dto.RoutingCounts) int {
	written := 0
	for _, rec := range answers {
		err := uow.QuestionAnswerRepository().Upsert(ctx, &entity.QuestionAnswer{
			Id:         uuid.New(),
			UserId:     userId,
			QuestionId: rec.QuestionId,
			Answer:     rec.Answer,
			Quality:    rec.Quality,
			Confidence: rec.Confidence,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			s.log.Warn("extraction", "answer routing failed", map[string]interface{}{
				"error":       err.Error(),
				"question_id": rec.QuestionId,
			})
			counts.Failures++
			continue
		}
		counts.Answers++
		written++
	}
	return written
}

// recordAnswersOnState mirrors newly extracted answers into the onboarding
// state map the progression machine reads.
func (s *extractionService) recordAnswersOnState(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, answers []dto.ExtractedAnswer) error {
	state, err := uow.OnboardingStateRepository().FindByUserId(ctx, userId)
	if err != nil {
		return err
	}
	if state == nil {
		state = &entity.OnboardingState{
			UserId:              userId,
			Mode:                constant.OnboardingModeTutorial,
			QuestionsAnswered:   make(map[string]string),
			MilestonesCompleted: make(map[string]time.Time),
			PersonaSignals:      make(map[string]string),
			CreatedAt:           time.Now(),
		}
		if err := uow.OnboardingStateRepository().Create(ctx, state); err != nil {
			return err
		}
	}
	if state.QuestionsAnswered == nil {
		state.QuestionsAnswered = make(map[string]string)
	}

	for _, rec := range answers {
		state.QuestionsAnswered[rec.QuestionId] = rec.Answer
	}
	state.QuestionsAnsweredCount = len(state.QuestionsAnswered)
	return uow.OnboardingStateRepository().Update(ctx, state)
}

func summarizeRecords(records *dto.ExtractedRecordSet) string {
	return fmt.Sprintf("%d entities, %d tasks, %d commitments, %d emotional markers (%s strategy)",
		len(records.Entities), len(records.Tasks), len(records.Commitments),
		len(records.EmotionalMarkers), records.Strategy)
}

// inferRelationship classifies a lead's relationship from context keywords.
func inferRelationship(context string) string {
	lower := strings.ToLower(context)
	for _, relType := range []string{"family", "colleague", "friend", "business"} {
		for _, keyword := range constant.RelationshipKeywords[relType] {
			if strings.Contains(lower, keyword) {
				return relType
			}
		}
	}
	return "unknown"
}
