package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

// MemoryQueue is a buffered channel drained by a single worker goroutine.
type MemoryQueue struct {
	mailer Mailer
	log    *zap.Logger
	queue  chan Message
	wg     sync.WaitGroup
	once   sync.Once
}

func NewMemoryQueue(mailer Mailer, l *zap.Logger, size int) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	q := &MemoryQueue{
		mailer: mailer,
		log:    l,
		queue:  make(chan Message, size),
	}

	q.wg.Add(1)
	go q.worker()
	return q
}

func (q *MemoryQueue) worker() {
	defer q.wg.Done()
	for m := range q.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := q.mailer.Send(ctx, m); err != nil {
			q.log.Warn("email delivery failed",
				zap.String("kind", m.Kind),
				zap.String("to", m.To),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, m Message) {
	select {
	case q.queue <- m:
	default:
		q.log.Warn("notification queue full, dropping message", zap.String("kind", m.Kind))
	}
}

// Close delivers what is already queued and stops the worker.
func (q *MemoryQueue) Close() {
	q.once.Do(func() {
		close(q.queue)
		q.wg.Wait()
	})
}
