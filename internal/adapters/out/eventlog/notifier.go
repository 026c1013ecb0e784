// Package eventlog implements the EventNotifier port on top of the service
// log. Events are wrapped in a CloudEvents-style envelope and written by a
// background worker, so publishing never blocks or fails the caller that
// committed the change.
package eventlog

import (
	"context"
	"sync"
	"time"

	"orders/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// envelopeSource identifies this service as the event producer.
	envelopeSource = "urn:service:orders"

	// envelopeSpecVersion is the CloudEvents spec version of the envelope.
	envelopeSpecVersion = "1.0"

	// DefaultBufferSize is used when the configured buffer size is not
	// positive.
	DefaultBufferSize = 64
)

// envelope is the CloudEvents-style record written to the log.
type envelope struct {
	specVersion string
	id          string
	source      string
	eventType   string
	time        time.Time
	data        eventData
}

type eventData struct {
	orderID        string
	customerID     string
	status         string
	previousStatus string
}

// Notifier logs order events asynchronously. Notify enqueues into a bounded
// buffer served by a single worker goroutine; when the buffer is full the
// event is dropped and the drop itself is logged.
type Notifier struct {
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
	events chan envelope
	done   chan struct{}
}

// NewNotifier creates a notifier with a buffer of bufferSize events and
// starts its worker. Call Close during shutdown to flush the buffer.
func NewNotifier(logger *zap.Logger, bufferSize int) *Notifier {
	return newNotifier(logger, bufferSize, time.Now)
}

func newNotifier(logger *zap.Logger, bufferSize int, now func() time.Time) *Notifier {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	n := &Notifier{
		logger: logger,
		now:    now,
		events: make(chan envelope, bufferSize),
		done:   make(chan struct{}),
	}

	go n.run()

	return n
}

// Notify enqueues the event for logging. It never blocks: when the buffer is
// full or the notifier is closed the event is dropped with a warning.
func (n *Notifier) Notify(_ context.Context, event ports.OrderEvent) {
	if event.Order == nil {
		n.logger.Warn("event without order dropped", zap.String("event_type", event.Type))
		return
	}

	env := envelope{
		specVersion: envelopeSpecVersion,
		id:          uuid.NewString(),
		source:      envelopeSource,
		eventType:   event.Type,
		time:        n.now().UTC(),
		data: eventData{
			orderID:    event.Order.ID().String(),
			customerID: event.Order.CustomerID(),
			status:     event.Order.Status().String(),
		},
	}
	if event.Type == ports.EventOrderUpdated {
		env.data.previousStatus = event.PreviousStatus.String()
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.logger.Warn("notifier closed, event dropped",
			zap.String("event_type", event.Type),
			zap.String("order_id", env.data.orderID),
		)
		return
	}

	select {
	case n.events <- env:
	default:
		n.logger.Warn("event buffer full, event dropped",
			zap.String("event_type", event.Type),
			zap.String("order_id", env.data.orderID),
		)
	}
}

// Close stops accepting events and flushes what is already buffered.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.events)
	n.mu.Unlock()

	<-n.done
}

func (n *Notifier) run() {
	defer close(n.done)

	for env := range n.events {
		fields := []zap.Field{
			zap.String("specversion", env.specVersion),
			zap.String("id", env.id),
			zap.String("source", env.source),
			zap.String("type", env.eventType),
			zap.Time("time", env.time),
			zap.String("order_id", env.data.orderID),
			zap.String("customer_id", env.data.customerID),
			zap.String("status", env.data.status),
		}
		if env.data.previousStatus != "" {
			fields = append(fields, zap.String("previous_status", env.data.previousStatus))
		}

		n.logger.Info("order event", fields...)
	}
}
