package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendEmail = "email:send"

// AsynqQueue hands messages to Redis so any API replica's worker can
// deliver them.
type AsynqQueue struct {
	client *asynq.Client
	log    *zap.Logger
}

func NewAsynqQueue(opt asynq.RedisClientOpt, l *zap.Logger) *AsynqQueue {
	return &AsynqQueue{client: asynq.NewClient(opt), log: l}
}

func NewEmailTask(m Message) (*asynq.Task, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendEmail, b, asynq.MaxRetry(0)), nil
}

func (q *AsynqQueue) Enqueue(ctx context.Context, m Message) {
	task, err := NewEmailTask(m)
	if err != nil {
		q.log.Warn("failed to build email task", zap.String("kind", m.Kind), zap.Error(err))
		return
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn("failed to enqueue email", zap.String("kind", m.Kind), zap.Error(err))
	}
}

func (q *AsynqQueue) Close() {
	if err := q.client.Close(); err != nil {
		q.log.Warn("asynq client close", zap.Error(err))
	}
}

// HandleEmailTask delivers one queued message. Failures are logged and not
// retried.
func HandleEmailTask(mailer Mailer, l *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var m Message
		if err := json.Unmarshal(t.Payload(), &m); err != nil {
			return fmt.Errorf("decode email task: %w", asynq.SkipRetry)
		}
		if err := mailer.Send(ctx, m); err != nil {
			l.Warn("email delivery failed",
				zap.String("kind", m.Kind),
				zap.String("to", m.To),
				zap.Error(err),
			)
		}
		return nil
	}
}

// NewAsynqWorker builds the server that consumes email tasks.
func NewAsynqWorker(opt asynq.RedisClientOpt, mailer Mailer, l *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 4,
		Logger:      l.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSendEmail, HandleEmailTask(mailer, l))
	return srv, mux
}
