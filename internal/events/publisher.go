package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects published on the menu stream
const (
	SubjectMenuItemCreated  = "menu.item.created"
	SubjectMenuItemUpdated  = "menu.item.updated"
	SubjectMenuItemDeleted  = "menu.item.deleted"
	SubjectMenuComboCreated = "menu.combo.created"
	SubjectImportCompleted  = "menu.import.completed"
	SubjectSyncCompleted    = "menu.sync.completed"
)

// MenuEvent is the wire format for menu domain events
type MenuEvent struct {
	EventID    string                 `json:"eventId"`
	EventType  string                 `json:"eventType"`
	TenantID   string                 `json:"tenantId"`
	OutletID   string                 `json:"outletId,omitempty"`
	EntityID   string                 `json:"entityId,omitempty"`
	EntityName string                 `json:"entityName,omitempty"`
	ActorID    string                 `json:"actorId,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Publisher emits menu domain events over NATS. Publishing is
// fire-and-forget: failures are logged, never surfaced to the caller.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS and returns a menu events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("menu-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "menu-events"),
	}, nil
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// PublishItemCreated publishes a menu.item.created event
func (p *Publisher) PublishItemCreated(ctx context.Context, tenantID, outletID, itemID, itemName, actorID string) error {
	event := p.newEvent(SubjectMenuItemCreated, tenantID, outletID)
	event.EntityID = itemID
	event.EntityName = itemName
	event.ActorID = actorID
	return p.publish(event)
}

// PublishItemUpdated publishes a menu.item.updated event
func (p *Publisher) PublishItemUpdated(ctx context.Context, tenantID, outletID, itemID, itemName, actorID string) error {
	event := p.newEvent(SubjectMenuItemUpdated, tenantID, outletID)
	event.EntityID = itemID
	event.EntityName = itemName
	event.ActorID = actorID
	return p.publish(event)
}

// PublishItemDeleted publishes a menu.item.deleted event
func (p *Publisher) PublishItemDeleted(ctx context.Context, tenantID, outletID, itemID, actorID string) error {
	event := p.newEvent(SubjectMenuItemDeleted, tenantID, outletID)
	event.EntityID = itemID
	event.ActorID = actorID
	return p.publish(event)
}

// PublishComboCreated publishes a menu.combo.created event
func (p *Publisher) PublishComboCreated(ctx context.Context, tenantID, outletID, comboID, comboName, actorID string) error {
	event := p.newEvent(SubjectMenuComboCreated, tenantID, outletID)
	event.EntityID = comboID
	event.EntityName = comboName
	event.ActorID = actorID
	return p.publish(event)
}

// PublishImportCompleted publishes a menu.import.completed event with
// the run's aggregate counts.
func (p *Publisher) PublishImportCompleted(ctx context.Context, tenantID, outletID, actorID string, created, updated, skipped, failed int, dryRun bool) error {
	event := p.newEvent(SubjectImportCompleted, tenantID, outletID)
	event.ActorID = actorID
	event.Payload = map[string]interface{}{
		"created": created,
		"updated": updated,
		"skipped": skipped,
		"failed":  failed,
		"dryRun":  dryRun,
	}
	return p.publish(event)
}

// PublishSyncCompleted publishes a menu.sync.completed event
func (p *Publisher) PublishSyncCompleted(ctx context.Context, tenantID, sourceOutletID, actorID string, targets int, success bool) error {
	event := p.newEvent(SubjectSyncCompleted, tenantID, sourceOutletID)
	event.ActorID = actorID
	event.Payload = map[string]interface{}{
		"targets": targets,
		"success": success,
	}
	return p.publish(event)
}

func (p *Publisher) newEvent(eventType, tenantID, outletID string) *MenuEvent {
	return &MenuEvent{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		TenantID:   tenantID,
		OutletID:   outletID,
		OccurredAt: time.Now().UTC(),
	}
}

// publish serializes and sends an event asynchronously so the request
// path never blocks on the broker.
func (p *Publisher) publish(event *MenuEvent) error {
	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).Error("Failed to marshal menu event")
			return
		}

		if err := p.conn.Publish(event.EventType, data); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
				"tenantId":  event.TenantID,
				"outletId":  event.OutletID,
			}).WithError(err).Error("Failed to publish menu event")
			return
		}

		p.logger.WithFields(logrus.Fields{
			"eventType": event.EventType,
			"tenantId":  event.TenantID,
			"outletId":  event.OutletID,
		}).Debug("Menu event published")
	}()

	return nil
}
