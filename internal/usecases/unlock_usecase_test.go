package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/usecases"
)

func newUnlockFixture() (*usecases.UnlockUsecase, *MockMediaRepository, *MockMediaUnlockRepository, *MockWalletRepository, *MockLedgerRepository, *MockUnitOfWork, *MockBalanceCache) {
	mediaRepo := new(MockMediaRepository)
	unlockRepo := new(MockMediaUnlockRepository)
	walletRepo := new(MockWalletRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUnitOfWork)
	cache := new(MockBalanceCache)
	uc := usecases.NewUnlockUsecase(mediaRepo, unlockRepo, walletRepo, ledgerRepo, uow, cache, "TOK")
	return uc, mediaRepo, unlockRepo, walletRepo, ledgerRepo, uow, cache
}

func TestUnlockMedia_Success(t *testing.T) {
	uc, mediaRepo, unlockRepo, walletRepo, ledgerRepo, uow, cache := newUnlockFixture()

	viewerID := uuid.New()
	ownerID := uuid.New()
	mediaID := uuid.New()
	cost := decimal.NewFromInt(25)

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: ownerID, Title: "backstage clip", TokenCost: cost,
	}, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(nil, domainerrors.ErrNotFound)
	walletRepo.On("GetBalance", mock.Anything, viewerID).Return(decimal.NewFromInt(100), nil)
	unlockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.MediaUnlock")).Return(nil)
	walletRepo.On("ApplyDelta", mock.Anything, viewerID, cost.Neg()).Return(decimal.NewFromInt(75), nil)
	walletRepo.On("ApplyDelta", mock.Anything, ownerID, cost).Return(decimal.NewFromInt(25), nil)
	ledgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*entities.LedgerEntry")).Return(nil)
	cache.On("Invalidate", mock.Anything, mock.Anything)

	result, err := uc.UnlockMedia(context.Background(), viewerID, mediaID)

	assert.NoError(t, err)
	assert.False(t, result.AlreadyUnlocked)
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, viewerID, result.Unlock.AccountID)
	assert.True(t, result.Unlock.Price.Equal(cost))

	walletRepo.AssertExpectations(t)
	unlockRepo.AssertExpectations(t)
	ledgerRepo.AssertNumberOfCalls(t, "Append", 2)
	cache.AssertCalled(t, "Invalidate", mock.Anything, []uuid.UUID{viewerID, ownerID})
}

func TestUnlockMedia_LedgerEntriesBalance(t *testing.T) {
	uc, mediaRepo, unlockRepo, walletRepo, ledgerRepo, uow, cache := newUnlockFixture()

	viewerID := uuid.New()
	ownerID := uuid.New()
	mediaID := uuid.New()
	cost := decimal.NewFromInt(10)

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: ownerID, Title: "clip", TokenCost: cost,
	}, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(nil, domainerrors.ErrNotFound)
	walletRepo.On("GetBalance", mock.Anything, viewerID).Return(decimal.NewFromInt(50), nil)
	unlockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	walletRepo.On("ApplyDelta", mock.Anything, viewerID, cost.Neg()).Return(decimal.NewFromInt(40), nil)
	walletRepo.On("ApplyDelta", mock.Anything, ownerID, cost).Return(decimal.NewFromInt(10), nil)

	var entries []*entities.LedgerEntry
	ledgerRepo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		entries = append(entries, args.Get(1).(*entities.LedgerEntry))
	}).Return(nil)
	cache.On("Invalidate", mock.Anything, mock.Anything)

	_, err := uc.UnlockMedia(context.Background(), viewerID, mediaID)
	assert.NoError(t, err)

	// One debit, one deposit, same reference, signed amounts net to zero.
	assert.Len(t, entries, 2)
	debit, deposit := entries[0], entries[1]
	assert.Equal(t, entities.EntryTypeDebit, debit.Type)
	assert.Equal(t, viewerID, debit.AccountID)
	assert.True(t, debit.BalanceAfter.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, entities.EntryTypeDeposit, deposit.Type)
	assert.Equal(t, ownerID, deposit.AccountID)
	assert.Equal(t, entities.ReferenceTypeMediaUnlock, debit.ReferenceType)
	assert.Equal(t, debit.ReferenceID, deposit.ReferenceID)
	assert.True(t, debit.SignedAmount().Add(deposit.SignedAmount()).IsZero())
}

func TestUnlockMedia_AlreadyUnlocked(t *testing.T) {
	uc, mediaRepo, unlockRepo, walletRepo, _, uow, cache := newUnlockFixture()

	viewerID := uuid.New()
	mediaID := uuid.New()
	existing := &entities.MediaUnlock{ID: uuid.New(), AccountID: viewerID, MediaID: mediaID, Price: decimal.NewFromInt(25)}

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: uuid.New(), TokenCost: decimal.NewFromInt(25),
	}, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(existing, nil)
	walletRepo.On("GetBalance", mock.Anything, viewerID).Return(decimal.NewFromInt(75), nil)

	result, err := uc.UnlockMedia(context.Background(), viewerID, mediaID)

	assert.NoError(t, err)
	assert.True(t, result.AlreadyUnlocked)
	assert.Equal(t, existing.ID, result.Unlock.ID)
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(75)))

	// No mutation and no invalidation on the idempotent path.
	walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestUnlockMedia_InsufficientFunds(t *testing.T) {
	uc, mediaRepo, unlockRepo, walletRepo, _, uow, _ := newUnlockFixture()

	viewerID := uuid.New()
	mediaID := uuid.New()

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: uuid.New(), TokenCost: decimal.NewFromInt(15),
	}, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(nil, domainerrors.ErrNotFound)
	walletRepo.On("GetBalance", mock.Anything, viewerID).Return(decimal.NewFromInt(10), nil)

	result, err := uc.UnlockMedia(context.Background(), viewerID, mediaID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	var insufficientErr *domainerrors.InsufficientFundsError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Required.Equal(decimal.NewFromInt(15)))
	assert.True(t, insufficientErr.Available.Equal(decimal.NewFromInt(10)))

	unlockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnlockMedia_OwnerCannotUnlockOwnMedia(t *testing.T) {
	uc, mediaRepo, _, _, _, uow, _ := newUnlockFixture()

	ownerID := uuid.New()
	mediaID := uuid.New()

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: ownerID, TokenCost: decimal.NewFromInt(25),
	}, nil)

	result, err := uc.UnlockMedia(context.Background(), ownerID, mediaID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyOwner)
	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestUnlockMedia_PublicMediaRejected(t *testing.T) {
	uc, mediaRepo, _, _, _, _, _ := newUnlockFixture()

	mediaID := uuid.New()
	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: uuid.New(), IsPublic: true,
	}, nil)

	result, err := uc.UnlockMedia(context.Background(), uuid.New(), mediaID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestUnlockMedia_MediaNotFound(t *testing.T) {
	uc, mediaRepo, _, _, _, _, _ := newUnlockFixture()

	mediaID := uuid.New()
	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(nil, domainerrors.ErrNotFound)

	result, err := uc.UnlockMedia(context.Background(), uuid.New(), mediaID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUnlockMedia_LostInsertRace(t *testing.T) {
	uc, mediaRepo, unlockRepo, walletRepo, _, uow, cache := newUnlockFixture()

	viewerID := uuid.New()
	mediaID := uuid.New()
	winner := &entities.MediaUnlock{ID: uuid.New(), AccountID: viewerID, MediaID: mediaID, Price: decimal.NewFromInt(25)}

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: uuid.New(), TokenCost: decimal.NewFromInt(25),
	}, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)

	// The in-transaction check misses, then the insert loses to a
	// concurrent retry that committed first.
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(nil, domainerrors.ErrNotFound).Once()
	walletRepo.On("GetBalance", mock.Anything, viewerID).Return(decimal.NewFromInt(100), nil)
	unlockRepo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists)
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(winner, nil)

	result, err := uc.UnlockMedia(context.Background(), viewerID, mediaID)

	assert.NoError(t, err)
	assert.True(t, result.AlreadyUnlocked)
	assert.Equal(t, winner.ID, result.Unlock.ID)
	walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestUnlockMedia_DebitFailureAbortsTransaction(t *testing.T) {
	uc, mediaRepo, unlockRepo, walletRepo, ledgerRepo, uow, _ := newUnlockFixture()

	viewerID := uuid.New()
	ownerID := uuid.New()
	mediaID := uuid.New()
	cost := decimal.NewFromInt(25)
	dbErr := errors.New("connection reset")

	mediaRepo.On("GetByID", mock.Anything, mediaID).Return(&entities.MediaItem{
		ID: mediaID, OwnerID: ownerID, TokenCost: cost,
	}, nil)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	unlockRepo.On("GetByAccountAndMedia", mock.Anything, viewerID, mediaID).Return(nil, domainerrors.ErrNotFound)
	walletRepo.On("GetBalance", mock.Anything, viewerID).Return(decimal.NewFromInt(100), nil)
	unlockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	walletRepo.On("ApplyDelta", mock.Anything, viewerID, cost.Neg()).Return(decimal.Decimal{}, dbErr)

	result, err := uc.UnlockMedia(context.Background(), viewerID, mediaID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)
	// The owner credit never runs once the debit fails.
	walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, ownerID, cost)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}
