package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to every event type.
const SubjectPrefix = "applio."

// NATSClient is the subset of *nats.Conn used for publishing.
type NATSClient interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes events as JSON on applio.<type>.
type NATSPublisher struct {
	nc NATSClient
}

// NewNATSPublisher wraps an open connection.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: conn}
}

// Connect dials url and returns a publisher plus a close func.
func Connect(url string) (*NATSPublisher, func(), error) {
	conn, err := nats.Connect(url, nats.Name("applio"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to nats: %w", err)
	}
	return NewNATSPublisher(conn), conn.Close, nil
}

// Publish implements Publisher.
func (p *NATSPublisher) Publish(_ context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.nc.Publish(SubjectPrefix+string(evt.Type), data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
