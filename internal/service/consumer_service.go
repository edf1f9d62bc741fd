package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/logger"
	"ai-companion-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains sync audit messages off the in-process bus and
// persists them. The unique (provider, source) key absorbs redelivery.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SyncAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal audit message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages must not loop forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	log := &entity.SyncAuditLog{
		Id:         uuid.New(),
		UserId:     payload.UserId,
		ProviderId: payload.ProviderId,
		SourceId:   payload.SourceId,
		SourceType: payload.SourceType,
		SourceDate: payload.SourceDate,
		CreatedAt:  time.Now(),
	}
	if err := uow.SyncAuditLogRepository().Create(ctx, log); err != nil {
		cs.log.Error("consumer", "failed to persist audit log", map[string]interface{}{
			"error":       err.Error(),
			"provider_id": payload.ProviderId,
			"source_id":   payload.SourceId,
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "sync item audited", map[string]interface{}{
		"provider_id": payload.ProviderId,
		"source_id":   payload.SourceId,
		"source_type": payload.SourceType,
	})
	msg.Ack()
}
