package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/memory"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/events"
	pkgNats "ai-companion-be/pkg/nats"
)

type IDreamService interface {
	NeedsToRun(ctx context.Context, userId uuid.UUID) (bool, error)
	Run(ctx context.Context, userId uuid.UUID, transcript *dto.DayTranscript) *dto.DreamRunResult
	RunIfNeeded(ctx context.Context, userId uuid.UUID) (*dto.DreamRunResult, error)
	GetRunHistory(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.DreamRun, error)
}

// dreamService sequences the nightly phases. The failure contract is
// degrade-don't-abort: a phase error is appended to the run's error list
// and replaced with that phase's zero-value output, so the envelope is
// always complete and downstream phases always get well-typed input.
type dreamService struct {
	uowFactory     unitofwork.RepositoryFactory
	syncService    ISyncService
	extraction     IExtractionService
	reflection     IReflectionService
	planning       IPlanningService
	accountability IAccountabilityService
	progression    IProgressionService
	runStamps      *memory.RunStampRepository
	eventPublisher *pkgNats.Publisher
	cfg            config.DreamConfig
	log            logger.ILogger
}

func NewDreamService(
	uowFactory unitofwork.RepositoryFactory,
	syncService ISyncService,
	extraction IExtractionService,
	reflection IReflectionService,
	planning IPlanningService,
	accountability IAccountabilityService,
	progression IProgressionService,
	runStamps *memory.RunStampRepository,
	eventPublisher *pkgNats.Publisher,
	cfg config.DreamConfig,
	log logger.ILogger,
) IDreamService {
	return &dreamService{
		uowFactory:     uowFactory,
		syncService:    syncService,
		extraction:     extraction,
		reflection:     reflection,
		planning:       planning,
		accountability: accountability,
		progression:    progression,
		runStamps:      runStamps,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		log:            log,
	}
}

// NeedsToRun reports whether no completed run exists inside the staleness
// window. It is a best-effort check, not a lock: two near-simultaneous
// invocations may both run, which idempotent routing tolerates.
func (s *dreamService) NeedsToRun(ctx context.Context, userId uuid.UUID) (bool, error) {
	cutoff := time.Now().Add(-s.cfg.StalenessWindow)

	if last, ok := s.runStamps.Last(userId); ok && last.After(cutoff) {
		return false, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	run, err := uow.DreamRunRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.DreamRunStatusCompleted},
		specification.RanAfter{After: cutoff},
	)
	if err != nil {
		return false, err
	}
	return run == nil, nil
}

func (s *dreamService) RunIfNeeded(ctx context.Context, userId uuid.UUID) (*dto.DreamRunResult, error) {
	needed, err := s.NeedsToRun(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !needed {
		return nil, nil
	}
	return s.Run(ctx, userId, nil), nil
}

// Run executes the full pipeline unconditionally. When transcript is nil it
// is resolved from the user's own same-day messages merged with provider
// sync output. A day with no material at all produces a well-formed empty
// envelope, which is a documented degenerate case, not an error.
func (s *dreamService) Run(ctx context.Context, userId uuid.UUID, transcript *dto.DayTranscript) *dto.DreamRunResult {
	now := time.Now()
	result := &dto.DreamRunResult{
		RunId:  uuid.New(),
		UserId: userId,
		RanAt:  now,
	}

	result.Sync = s.syncService.SyncAll(ctx, userId)
	for _, sr := range result.Sync {
		for _, e := range sr.Errors {
			result.Errors = append(result.Errors, fmt.Sprintf("sync(%s): %s", sr.Category, e))
		}
	}

	if transcript == nil {
		transcript = s.resolveTranscript(ctx, userId, now, result)
	}

	if transcript.IsEmpty() {
		result.Empty = true
		s.persistRun(ctx, result)
		return result
	}

	s.runExtraction(ctx, userId, transcript, result)
	s.runReflection(ctx, userId, now, result)
	s.runPlanning(ctx, userId, now, result)
	s.runAccountability(ctx, userId, result)
	s.runProgression(ctx, userId, now, result)

	s.persistRun(ctx, result)
	s.publishCompletedEvent(ctx, result)
	return result
}

// resolveTranscript merges the user's own same-day messages with whatever
// the sync phase just pulled, time-sorted.
func (s *dreamService) resolveTranscript(ctx context.Context, userId uuid.UUID, now time.Time, result *dto.DreamRunResult) *dto.DayTranscript {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	transcript := &dto.DayTranscript{Date: day}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedBetween{From: day, To: day.AddDate(0, 0, 1)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("transcript: %s", err.Error()))
	}
	seenSessions := make(map[string]bool)
	for _, msg := range messages {
		t := msg.CreatedAt
		transcript.Messages = append(transcript.Messages, dto.TranscriptMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: &t,
		})
		if msg.SessionId != "" && !seenSessions[msg.SessionId] {
			seenSessions[msg.SessionId] = true
			transcript.SourceSessionIds = append(transcript.SourceSessionIds, msg.SessionId)
		}
	}

	if synced := s.syncService.GetCombinedTranscript(userId, day); synced != nil {
		transcript.Messages = append(transcript.Messages, synced.Messages...)
		transcript.SourceSessionIds = append(transcript.SourceSessionIds, synced.SourceSessionIds...)
		sort.SliceStable(transcript.Messages, func(i, j int) bool {
			ti, tj := transcript.Messages[i].Timestamp, transcript.Messages[j].Timestamp
			if ti == nil || tj == nil {
				return false
			}
			return ti.Before(*tj)
		})
	}

	return transcript
}

func (s *dreamService) runExtraction(ctx context.Context, userId uuid.UUID, transcript *dto.DayTranscript, result *dto.DreamRunResult) {
	records := s.extraction.Parse(ctx, transcript)
	result.Extraction = *records
	result.Routing = s.extraction.Route(ctx, userId, transcript.Date, records)
	if result.Routing.Failures > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("routing: %d record(s) failed", result.Routing.Failures))
	}
}

func (s *dreamService) runReflection(ctx context.Context, userId uuid.UUID, now time.Time, result *dto.DreamRunResult) {
	history, err := s.loadHistory(ctx, userId, now)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("reflection history: %s", err.Error()))
	}
	out, err := s.reflection.Reflect(ctx, userId, &result.Extraction, history)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("reflection: %s", err.Error()))
	}
	if out != nil {
		result.Reflection = *out
	}
}

func (s *dreamService) runPlanning(ctx context.Context, userId uuid.UUID, now time.Time, result *dto.DreamRunResult) {
	out, err := s.planning.Plan(ctx, userId, now)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("planning: %s", err.Error()))
		return
	}
	result.Planner = *out
	if err := s.planning.Save(ctx, userId, out); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("planning save: %s", err.Error()))
	}
}

func (s *dreamService) runAccountability(ctx context.Context, userId uuid.UUID, result *dto.DreamRunResult) {
	enabled, err := s.accountability.IsEnabled(ctx, userId)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("accountability: %s", err.Error()))
		return
	}
	if !enabled {
		return
	}
	result.ToughLove = s.accountability.Analyze(&result.Extraction, &result.Planner)
}

func (s *dreamService) runProgression(ctx context.Context, userId uuid.UUID, now time.Time, result *dto.DreamRunResult) {
	if err := s.progression.RecordInteraction(ctx, userId, now); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("progression interaction: %s", err.Error()))
	}
	if result.Routing.Tasks > 0 {
		if _, err := s.progression.RecordMilestone(ctx, userId, "first_task"); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("progression milestone: %s", err.Error()))
		}
	}
	out, err := s.progression.CheckProgression(ctx, userId)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("progression: %s", err.Error()))
		return
	}
	result.Progression = *out
}

// loadHistory collects the extraction output of completed runs inside the
// rolling window, oldest first.
func (s *dreamService) loadHistory(ctx context.Context, userId uuid.UUID, now time.Time) ([]dto.ExtractedRecordSet, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	runs, err := uow.DreamRunRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.DreamRunStatusCompleted},
		specification.RanAfter{After: now.AddDate(0, 0, -s.cfg.HistoryWindowDays)},
		specification.OrderBy{Field: "ran_at"},
	)
	if err != nil {
		return nil, err
	}
	history := make([]dto.ExtractedRecordSet, 0, len(runs))
	for _, run := range runs {
		history = append(history, run.Result.Extraction)
	}
	return history, nil
}

func (s *dreamService) persistRun(ctx context.Context, result *dto.DreamRunResult) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	run := &entity.DreamRun{
		Id:        result.RunId,
		UserId:    result.UserId,
		Status:    constant.DreamRunStatusCompleted,
		Result:    *result,
		Errors:    result.Errors,
		RanAt:     result.RanAt,
		CreatedAt: time.Now(),
	}
	if err := uow.DreamRunRepository().Create(ctx, run); err != nil {
		s.log.Error("dream", "failed to persist run", map[string]interface{}{
			"error":   err.Error(),
			"user_id": result.UserId,
		})
		return
	}
	s.runStamps.Stamp(result.UserId, result.RanAt)
}

func (s *dreamService) publishCompletedEvent(ctx context.Context, result *dto.DreamRunResult) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: constant.EventDreamRunCompleted,
		Data: map[string]interface{}{
			"run_id":  result.RunId,
			"user_id": result.UserId,
			"errors":  len(result.Errors),
			"empty":   result.Empty,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("dream", "failed to publish run event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *dreamService) GetRunHistory(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.DreamRun, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DreamRunRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "ran_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
}
