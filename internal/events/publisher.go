// Package events publishes incident lifecycle events to NATS JetStream so
// downstream consumers (alerting, analytics exports) can react without
// polling the API. The stream is provisioned idempotently on startup.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	streamName = "DRONE_EVENTS"

	// SubjectIncidentCreated and SubjectIncidentMerged are the published
	// subjects under the incident.> wildcard.
	SubjectIncidentCreated = "incident.created"
	SubjectIncidentMerged  = "incident.merged"
)

// IncidentEvent is the wire payload for both subjects.
type IncidentEvent struct {
	IncidentID string    `json:"incident_id"`
	Action     string    `json:"action"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// Publisher is a JetStream-backed event publisher. It satisfies the ingest
// service's EventPublisher interface.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *zap.Logger
}

// NewPublisher connects to NATS and ensures the event stream exists.
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"incident.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("ensure stream %s: %w", streamName, err)
	}

	logger.Info("event publisher connected", zap.String("stream", streamName))
	return &Publisher{nc: nc, js: js, logger: logger}, nil
}

// IncidentCreated publishes an incident.created event.
func (p *Publisher) IncidentCreated(ctx context.Context, incidentID uuid.UUID) error {
	return p.publish(ctx, SubjectIncidentCreated, incidentID, "created")
}

// IncidentMerged publishes an incident.merged event.
func (p *Publisher) IncidentMerged(ctx context.Context, incidentID uuid.UUID) error {
	return p.publish(ctx, SubjectIncidentMerged, incidentID, "merged")
}

func (p *Publisher) publish(ctx context.Context, subject string, incidentID uuid.UUID, action string) error {
	payload, err := json.Marshal(IncidentEvent{
		IncidentID: incidentID.String(),
		Action:     action,
		EmittedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(subject, payload, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("nats drain", zap.Error(err))
	}
}
