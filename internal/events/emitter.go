// Package events publishes generated portfolios and wheels to NATS so
// downstream consumers (trackers, evaluators) can subscribe without
// coupling to the optimizer.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/lotokit/loto-optimizer/internal/portfolio"
	"github.com/lotokit/loto-optimizer/internal/wheel"
)

// Event types published on the subject.
const (
	TypePortfolio = "portfolio"
	TypeWheel     = "wheel"
)

// Event is the wire envelope for generated results.
type Event struct {
	Type      string                 `json:"type"`
	Strategy  string                 `json:"strategy"`
	Tickets   portfolio.Portfolio    `json:"tickets"`
	Stats     *portfolio.Stats       `json:"stats,omitempty"`
	Report    *wheel.GuaranteeReport `json:"report,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Emitter publishes events to a NATS subject.
type Emitter struct {
	conn    *nats.Conn
	subject string
}

// NewEmitter connects to NATS.
func NewEmitter(natsURL, subject string) (*Emitter, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Emitter{conn: conn, subject: subject}, nil
}

// EmitPortfolio publishes a coverage-optimized (or baseline) portfolio.
func (e *Emitter) EmitPortfolio(strategy string, pf portfolio.Portfolio, stats *portfolio.Stats) error {
	return e.publish(Event{
		Type:      TypePortfolio,
		Strategy:  strategy,
		Tickets:   pf,
		Stats:     stats,
		Timestamp: time.Now().Unix(),
	})
}

// EmitWheel publishes a wheel with its guarantee report.
func (e *Emitter) EmitWheel(pf portfolio.Portfolio, report *wheel.GuaranteeReport) error {
	return e.publish(Event{
		Type:      TypeWheel,
		Strategy:  report.Type + "_wheel",
		Tickets:   pf,
		Report:    report,
		Timestamp: time.Now().Unix(),
	})
}

func (e *Emitter) publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.conn.Publish(e.subject, data)
}

// Close drops the NATS connection.
func (e *Emitter) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}
