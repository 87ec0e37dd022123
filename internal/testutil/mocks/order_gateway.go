// Package mocks provides shared mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/payment-reconciler/internal/domain"
	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
)

// MockOrderGateway provides a testify mock of ports.OrderGateway
type MockOrderGateway struct {
	mock.Mock
}

func (m *MockOrderGateway) FindOrder(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderGateway) SetStatus(ctx context.Context, id string, status domain.OrderStatus, note string) error {
	args := m.Called(ctx, id, status, note)
	return args.Error(0)
}

// MockNotificationLogger provides a testify mock of ports.NotificationLogger
type MockNotificationLogger struct {
	mock.Mock
}

func (m *MockNotificationLogger) Log(ctx context.Context, entry ports.NotificationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
