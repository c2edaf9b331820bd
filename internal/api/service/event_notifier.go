package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/corebank/payment-service/internal/platform/messaging/producers"
	"github.com/panjf2000/ants/v2"
)

// publishTimeout bounds a single event publish once a worker picks it up
const publishTimeout = 5 * time.Second

// AsyncEventNotifier publishes terminal payment events through a bounded
// worker pool so the payment workflow never blocks on the broker. Publish
// failures are logged and dropped: events are a side channel, not part of
// the payment's durability guarantee.
type AsyncEventNotifier struct {
	pool     *ants.Pool
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewAsyncEventNotifier creates a notifier backed by a worker pool of the given size
func NewAsyncEventNotifier(logger *slog.Logger, producer producers.MessagePublisher, poolSize int) (*AsyncEventNotifier, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &AsyncEventNotifier{
		pool:     pool,
		producer: producer,
		logger:   logger,
	}, nil
}

// PaymentFinalized submits the terminal event for publishing and returns
// immediately. Only terminal payments produce events.
func (n *AsyncEventNotifier) PaymentFinalized(p *payment.Payment) {
	if !p.Status.Terminal() {
		return
	}

	event := payment.NewEvent(p)

	err := n.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := n.producer.Publish(ctx, event.PaymentID.String(), event); err != nil {
			n.logger.Warn("Failed to publish payment event",
				"payment_id", event.PaymentID.String(),
				"status", string(event.Status),
				"error", err,
			)
		}
	})
	if err != nil {
		n.logger.Warn("Failed to submit payment event for publishing",
			"payment_id", event.PaymentID.String(),
			"error", err,
		)
	}
}

// Close releases the worker pool; queued tasks that have not started are dropped
func (n *AsyncEventNotifier) Close() {
	n.pool.Release()
}
