package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// ErrQueueClosed is returned by Enqueue and Dequeue after Close.
var ErrQueueClosed = errors.New("queue closed")

// JobQueue carries score job ids from the API to the worker.
type JobQueue interface {
	Enqueue(ctx context.Context, jobID uuid.UUID) error
	// Dequeue blocks until a job id is available. It returns ok=false when nothing
	// arrived before its internal wait elapsed, so callers can re-check shutdown.
	Dequeue(ctx context.Context) (uuid.UUID, bool, error)
	Close()
}

type memoryQueue struct {
	jobs chan uuid.UUID
	done chan struct{}
}

func NewMemoryQueue(size int) JobQueue {
	if size <= 0 {
		size = 100
	}
	return &memoryQueue{
		jobs: make(chan uuid.UUID, size),
		done: make(chan struct{}),
	}
}

func (q *memoryQueue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	select {
	case q.jobs <- jobID:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *memoryQueue) Dequeue(ctx context.Context) (uuid.UUID, bool, error) {
	select {
	case jobID := <-q.jobs:
		return jobID, true, nil
	case <-q.done:
		return uuid.Nil, false, ErrQueueClosed
	case <-ctx.Done():
		return uuid.Nil, false, ctx.Err()
	}
}

func (q *memoryQueue) Close() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}

// valkeyQueue is a list-backed queue: LPUSH to enqueue, BRPOP to consume.
type valkeyQueue struct {
	client valkey.Client
	key    string
	wait   float64
}

func NewValkeyQueue(ctx context.Context, address, password, key string) (JobQueue, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &valkeyQueue{client: client, key: key, wait: 5}, nil
}

func (q *valkeyQueue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	cmd := q.client.B().Lpush().Key(q.key).Element(jobID.String()).Build()
	if err := q.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to add job (%s) to the queue: %w", jobID, err)
	}
	return nil
}

func (q *valkeyQueue) Dequeue(ctx context.Context) (uuid.UUID, bool, error) {
	cmd := q.client.B().Brpop().Key(q.key).Timeout(q.wait).Build()

	arr, err := q.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to pop job: %w", err)
	}

	if len(arr) != 2 {
		return uuid.Nil, false, fmt.Errorf("unexpected BRPOP reply of %d elements", len(arr))
	}

	jobID, err := uuid.Parse(arr[1])
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("invalid job id %q in queue: %w", arr[1], err)
	}

	return jobID, true, nil
}

func (q *valkeyQueue) Close() {
	q.client.Close()
}
