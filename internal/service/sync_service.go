package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/config"
	"ai-companion-be/internal/constant"
	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/specification"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/events"
	pkgNats "ai-companion-be/pkg/nats"
	"ai-companion-be/pkg/provider"
)

type ISyncService interface {
	GetActiveProviders(ctx context.Context, userId uuid.UUID) ([]*entity.ProviderRegistration, error)
	SyncProvider(ctx context.Context, reg *entity.ProviderRegistration) dto.SyncResult
	SyncAll(ctx context.Context, userId uuid.UUID) []dto.SyncResult
	GetCombinedTranscript(userId uuid.UUID, day time.Time) *dto.DayTranscript
}

// syncService pulls incremental content from registered providers. The
// cursor on a registration only ever advances after a fully successful
// fetch; a failed sync leaves it untouched so the next run retries from
// the same point.
type syncService struct {
	uowFactory       unitofwork.RepositoryFactory
	registry         *provider.Registry
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	cfg              config.SyncConfig
	log              logger.ILogger

	// Normalized messages buffered between SyncAll and the transcript
	// merge, keyed by user. Drained by GetCombinedTranscript.
	mu      sync.Mutex
	pending map[uuid.UUID][]syncedMessage
}

type syncedMessage struct {
	msg       dto.TranscriptMessage
	sessionId string
}

func NewSyncService(
	uowFactory unitofwork.RepositoryFactory,
	registry *provider.Registry,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	cfg config.SyncConfig,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		uowFactory:       uowFactory,
		registry:         registry,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		cfg:              cfg,
		log:              log,
		pending:          make(map[uuid.UUID][]syncedMessage),
	}
}

func (s *syncService) GetActiveProviders(ctx context.Context, userId uuid.UUID) ([]*entity.ProviderRegistration, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProviderRegistrationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByStatusIn{Statuses: []string{constant.ProviderStatusActive, constant.ProviderStatusError}},
	)
}

// SyncAll syncs each of the user's providers in sequence. Sequential order
// keeps per-provider rate limits honest and the merged timestamp ordering
// simple.
func (s *syncService) SyncAll(ctx context.Context, userId uuid.UUID) []dto.SyncResult {
	regs, err := s.GetActiveProviders(ctx, userId)
	if err != nil {
		s.log.Error("sync", "failed to list providers", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userId,
		})
		return []dto.SyncResult{}
	}

	results := make([]dto.SyncResult, 0, len(regs))
	for _, reg := range regs {
		results = append(results, s.SyncProvider(ctx, reg))
	}
	return results
}

func (s *syncService) SyncProvider(ctx context.Context, reg *entity.ProviderRegistration) dto.SyncResult {
	result := dto.SyncResult{
		ProviderId: reg.Id,
		Category:   reg.Category,
	}

	if reg.LastExtractionAt != nil && time.Since(*reg.LastExtractionAt) < s.cfg.CoolDown {
		result.Skipped = true
		return result
	}

	p, err := s.registry.Build(reg.Category, reg.ConnectionConfig)
	if err != nil {
		s.recordFailure(ctx, reg, err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	cursor := reg.ExtractionCursor
	var items []provider.ContentItem
	for len(items) < s.cfg.MaxItems {
		fetched, err := p.Fetch(ctx, cursor, s.cfg.MaxItems-len(items))
		if err != nil {
			// Cursor stays where it was; the next run retries from the
			// same point. Items already fetched this attempt are dropped,
			// which at-least-once routing tolerates.
			s.recordFailure(ctx, reg, err)
			result.Errors = append(result.Errors, err.Error())
			return result
		}
		items = append(items, fetched.Items...)
		cursor = fetched.NewCursor
		if !fetched.HasMore {
			break
		}
	}

	for _, item := range items {
		s.bufferMessages(reg, item)
		s.auditItem(ctx, reg, item)
	}
	result.ItemsProcessed = len(items)

	if err := s.advanceCursor(ctx, reg, cursor); err != nil {
		s.log.Error("sync", "failed to advance cursor", map[string]interface{}{
			"error":       err.Error(),
			"provider_id": reg.Id,
		})
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	s.publishSyncedEvent(ctx, reg, len(items))
	return result
}

// advanceCursor commits the new position together with the sync timestamp
// and clears any prior error state.
func (s *syncService) advanceCursor(ctx context.Context, reg *entity.ProviderRegistration, cursor provider.Cursor) error {
	now := time.Now()
	reg.ExtractionCursor = cursor
	reg.LastExtractionAt = &now
	reg.Status = constant.ProviderStatusActive
	reg.LastError = ""
	reg.ErrorCount = 0

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProviderRegistrationRepository().Update(ctx, reg)
}

func (s *syncService) recordFailure(ctx context.Context, reg *entity.ProviderRegistration, cause error) {
	reg.LastError = cause.Error()
	reg.ErrorCount++
	reg.Status = constant.ProviderStatusError

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProviderRegistrationRepository().Update(ctx, reg); err != nil {
		s.log.Error("sync", "failed to record provider failure", map[string]interface{}{
			"error":       err.Error(),
			"provider_id": reg.Id,
		})
	}
}

// bufferMessages normalizes one content item into transcript messages and
// holds them for the next GetCombinedTranscript call.
func (s *syncService) bufferMessages(reg *entity.ProviderRegistration, item provider.ContentItem) {
	messages := normalizeItem(reg, item)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[reg.UserId] = append(s.pending[reg.UserId], messages...)
}

// GetCombinedTranscript drains the buffered provider messages for one day,
// time-sorted. Returns nil when nothing was synced.
func (s *syncService) GetCombinedTranscript(userId uuid.UUID, day time.Time) *dto.DayTranscript {
	s.mu.Lock()
	buffered := s.pending[userId]
	delete(s.pending, userId)
	s.mu.Unlock()

	if len(buffered) == 0 {
		return nil
	}

	sort.SliceStable(buffered, func(i, j int) bool {
		ti, tj := buffered[i].msg.Timestamp, buffered[j].msg.Timestamp
		if ti == nil || tj == nil {
			return false
		}
		return ti.Before(*tj)
	})

	transcript := &dto.DayTranscript{Date: day}
	seenSessions := make(map[string]bool)
	for _, m := range buffered {
		transcript.Messages = append(transcript.Messages, m.msg)
		if m.sessionId != "" && !seenSessions[m.sessionId] {
			seenSessions[m.sessionId] = true
			transcript.SourceSessionIds = append(transcript.SourceSessionIds, m.sessionId)
		}
	}
	return transcript
}

func (s *syncService) auditItem(ctx context.Context, reg *entity.ProviderRegistration, item provider.ContentItem) {
	payload, err := json.Marshal(dto.SyncAuditMessage{
		UserId:     reg.UserId,
		ProviderId: reg.Id,
		SourceId:   item.SourceId,
		SourceType: item.SourceType,
		SourceDate: item.SourceDate,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("sync", "failed to publish audit message", map[string]interface{}{
			"error":     err.Error(),
			"source_id": item.SourceId,
		})
	}
}

func (s *syncService) publishSyncedEvent(ctx context.Context, reg *entity.ProviderRegistration, count int) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: constant.EventProviderSynced,
		Data: map[string]interface{}{
			"provider_id": reg.Id,
			"user_id":     reg.UserId,
			"category":    reg.Category,
			"items":       count,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("sync", "failed to publish synced event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// normalizeItem converts provider content into transcript messages per the
// category's rule. Transcript sessions split into per-turn messages with
// speaker-role inference; everything else wraps into a single message.
func normalizeItem(reg *entity.ProviderRegistration, item provider.ContentItem) []syncedMessage {
	ts := item.SourceDate
	switch reg.Category {
	case "transcript":
		ownSpeaker := reg.ConnectionConfig["speaker"]
		var messages []syncedMessage
		for _, line := range strings.Split(item.Content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			speaker, text, ok := splitSpeakerTurn(line)
			if !ok {
				speaker, text = "", line
			}
			role := constant.ChatMessageRoleAssistant
			if speaker != "" && strings.EqualFold(speaker, ownSpeaker) {
				role = constant.ChatMessageRoleUser
			}
			t := ts
			messages = append(messages, syncedMessage{
				msg: dto.TranscriptMessage{
					Role:      role,
					Content:   text,
					Timestamp: &t,
				},
				sessionId: item.SourceId,
			})
		}
		return messages
	default:
		t := ts
		return []syncedMessage{{
			msg: dto.TranscriptMessage{
				Role:      constant.ChatMessageRoleAssistant,
				Content:   item.Content,
				Timestamp: &t,
			},
			sessionId: item.SourceId,
		}}
	}
}

// splitSpeakerTurn parses "Speaker Name: text" turns. Speaker labels are
// short; a colon deep into the line is message punctuation, not a label.
func splitSpeakerTurn(line string) (speaker, text string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > 40 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
