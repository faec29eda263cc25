package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"stream-ledger.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) ApplyDelta(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Mock LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	args := m.Called(ctx, accountID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) SumByAccount(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Mock MediaRepository
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MediaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MediaItem), args.Error(1)
}

// Mock MediaUnlockRepository
type MockMediaUnlockRepository struct {
	mock.Mock
}

func (m *MockMediaUnlockRepository) Create(ctx context.Context, unlock *entities.MediaUnlock) error {
	args := m.Called(ctx, unlock)
	return args.Error(0)
}

func (m *MockMediaUnlockRepository) GetByAccountAndMedia(ctx context.Context, accountID, mediaID uuid.UUID) (*entities.MediaUnlock, error) {
	args := m.Called(ctx, accountID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MediaUnlock), args.Error(1)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByProviderRef(ctx context.Context, providerRef string) (*entities.Payment, error) {
	args := m.Called(ctx, providerRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payment), args.Get(1).(int64), args.Error(2)
}

// Mock WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, request *entities.WithdrawalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) GetPendingByAccount(ctx context.Context, accountID uuid.UUID) (*entities.WithdrawalRequest, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) Update(ctx context.Context, request *entities.WithdrawalRequest, from entities.WithdrawalStatus) error {
	args := m.Called(ctx, request, from)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WithdrawalRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawalRepository) ListByStatus(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WithdrawalRequest), args.Get(1).(int64), args.Error(2)
}

// Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

// Mock BalanceCache
type MockBalanceCache struct {
	mock.Mock
}

func (m *MockBalanceCache) Get(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, bool) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *MockBalanceCache) Set(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) {
	m.Called(ctx, accountID, balance)
}

func (m *MockBalanceCache) Invalidate(ctx context.Context, accountIDs ...uuid.UUID) {
	m.Called(ctx, accountIDs)
}
