package analytics

import (
	"context"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/kafka"
)

// Collector buffers analytics events and publishes them to Kafka off the
// request path. Events are dropped, not blocked on, when the buffer fills.
type Collector struct {
	producer *kafka.Producer
	eventCh  chan interface{}
	logger   *slog.Logger
	done     chan struct{}
}

func NewCollector(producer *kafka.Producer, bufferSize int) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	return &Collector{
		producer: producer,
		eventCh:  make(chan interface{}, bufferSize),
		logger:   slog.Default().With("component", "analytics-collector"),
		done:     make(chan struct{}),
	}
}

func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					return
				}
				if err := c.producer.Publish(ctx, kafka.Event{
					Key:   "analytics",
					Value: event,
				}); err != nil {
					c.logger.Error("failed to publish analytics event", "error", err)
				}
			case <-ctx.Done():
				c.drainRemaining()
				return
			}
		}
	}()
	c.logger.Info("analytics collector started", "buffer_size", cap(c.eventCh))
}

func (c *Collector) Track(event interface{}) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Warn("analytics event dropped (buffer full)")
	}
}

func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

// drainRemaining flushes whatever is still buffered in a single batch write.
func (c *Collector) drainRemaining() {
	var remaining []kafka.Event
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				c.flush(remaining)
				return
			}
			remaining = append(remaining, kafka.Event{Key: "analytics", Value: event})
		default:
			c.flush(remaining)
			return
		}
	}
}

func (c *Collector) flush(events []kafka.Event) {
	if len(events) == 0 {
		return
	}
	if err := c.producer.PublishBatch(context.Background(), events); err != nil {
		c.logger.Error("failed to flush remaining events", "count", len(events), "error", err)
	}
}
