package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobQueue) Dequeue(ctx context.Context) (uuid.UUID, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockJobQueue) Close() {
	m.Called()
}

type MockWorker struct {
	mock.Mock
}

func (m *MockWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockWorker) Stop() {
	m.Called()
}

func (m *MockWorker) EnqueueJob(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}
