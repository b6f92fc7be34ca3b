package eventbridge

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/events"
	pkgerrors "atomcms/pkg/errors"
)

const eventSource = "atomcms"

// entriesPerCall is the PutEvents API limit.
const entriesPerCall = 10

// EventBridgePublisher publishes domain events to an EventBridge bus.
type EventBridgePublisher struct {
	client  *awseventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewEventBridgePublisher creates a new EventBridgePublisher
func NewEventBridgePublisher(client *awseventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &EventBridgePublisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single domain event
func (p *EventBridgePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends multiple domain events, chunked to the PutEvents limit
func (p *EventBridgePublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	entries := make([]types.PutEventsRequestEntry, 0, len(domainEvents))
	for _, event := range domainEvents {
		detail, err := json.Marshal(event)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to marshal event detail")
		}
		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.busName),
			Source:       aws.String(eventSource),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(event.GetTimestamp()),
		})
	}

	for start := 0; start < len(entries); start += entriesPerCall {
		end := start + entriesPerCall
		if end > len(entries) {
			end = len(entries)
		}

		result, err := p.client.PutEvents(ctx, &awseventbridge.PutEventsInput{
			Entries: entries[start:end],
		})
		if err != nil {
			return pkgerrors.NewUnavailableError("event bus")
		}
		if result.FailedEntryCount > 0 {
			for _, entry := range result.Entries {
				if entry.ErrorCode != nil {
					p.logger.Error("event rejected by bus",
						zap.String("errorCode", aws.ToString(entry.ErrorCode)),
						zap.String("errorMessage", aws.ToString(entry.ErrorMessage)))
				}
			}
			return pkgerrors.NewInternalError("event bus rejected entries")
		}
	}

	p.logger.Debug("published domain events", zap.Int("count", len(domainEvents)))
	return nil
}
