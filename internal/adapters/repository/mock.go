package repository

import (
	"context"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

func (m *MockOrderRepository) Create(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) TransitionMigrationState(ctx context.Context, id uuid.UUID, expected []domain.MigrationState, next domain.MigrationState) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CompleteMigration(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	args := m.Called(ctx, id, completedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) FailMigration(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockOrderRepository) FindSweepCandidates(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkTempSwept(ctx context.Context, id uuid.UUID, sweptAt time.Time) error {
	args := m.Called(ctx, id, sweptAt)
	return args.Error(0)
}

type MockOrderFileRepository struct {
	mock.Mock
}

func NewMockOrderFileRepository() *MockOrderFileRepository {
	return &MockOrderFileRepository{}
}

func (m *MockOrderFileRepository) Create(ctx context.Context, file domain.OrderFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockOrderFileRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderFile, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.OrderFile), args.Error(1)
}

func (m *MockOrderFileRepository) FindByOrderIDAndRole(ctx context.Context, orderID uuid.UUID, role domain.FileRole) (*domain.OrderFile, error) {
	args := m.Called(ctx, orderID, role)
	return args.Get(0).(*domain.OrderFile), args.Error(1)
}

func (m *MockOrderFileRepository) SetPermanentKey(ctx context.Context, orderID uuid.UUID, role domain.FileRole, permKey string) error {
	args := m.Called(ctx, orderID, role, permKey)
	return args.Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
	orderRepo     *MockOrderRepository
	orderFileRepo *MockOrderFileRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		orderRepo:     &MockOrderRepository{},
		orderFileRepo: &MockOrderFileRepository{},
	}
}

func (m *MockUnitOfWork) OrderRepo() port.OrderRepository {
	return m.orderRepo
}

func (m *MockUnitOfWork) OrderFileRepo() port.OrderFileRepository {
	return m.orderFileRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetOrderRepoMock() *MockOrderRepository {
	return m.orderRepo
}

func (m *MockUnitOfWork) GetOrderFileRepoMock() *MockOrderFileRepository {
	return m.orderFileRepo
}
