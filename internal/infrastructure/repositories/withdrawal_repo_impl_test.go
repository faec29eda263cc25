package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
)

func TestWithdrawalRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	request := &entities.WithdrawalRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	}
	require.NoError(t, repo.Create(ctx, request))

	got, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, accountID, got.AccountID)
	require.Equal(t, entities.WithdrawalStatusPending, got.Status)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(100)))

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWithdrawalRepository_GetPendingByAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	_, err := repo.GetPendingByAccount(ctx, accountID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	rejected := &entities.WithdrawalRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(60),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusRejected,
	}
	require.NoError(t, repo.Create(ctx, rejected))

	// A settled request does not count as pending.
	_, err = repo.GetPendingByAccount(ctx, accountID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	pending := &entities.WithdrawalRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	}
	require.NoError(t, repo.Create(ctx, pending))

	got, err := repo.GetPendingByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, pending.ID, got.ID)
}

func TestWithdrawalRepository_UpdatePersistsReviewFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	request := &entities.WithdrawalRequest{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromInt(100),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	}
	require.NoError(t, repo.Create(ctx, request))

	reviewerID := uuid.New()
	reviewedAt := time.Now()
	request.Status = entities.WithdrawalStatusApproved
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &reviewedAt
	request.ReviewNote = null.StringFrom("payout details verified")
	require.NoError(t, repo.Update(ctx, request, entities.WithdrawalStatusPending))

	got, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusApproved, got.Status)
	require.Equal(t, reviewerID, *got.ReviewedBy)
	require.NotNil(t, got.ReviewedAt)
	require.Equal(t, "payout details verified", got.ReviewNote.String)
}

func TestWithdrawalRepository_UpdateUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)

	err := repo.Update(context.Background(), &entities.WithdrawalRequest{
		ID:     uuid.New(),
		Status: entities.WithdrawalStatusApproved,
	}, entities.WithdrawalStatusPending)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWithdrawalRepository_UpdateGuardsStatusTransition(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	request := &entities.WithdrawalRequest{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromInt(100),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	}
	require.NoError(t, repo.Create(ctx, request))

	// Two reviewers load the same request while it is still pending.
	first, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)

	first.Status = entities.WithdrawalStatusApproved
	require.NoError(t, repo.Update(ctx, first, entities.WithdrawalStatusPending))

	// The second reviewer's copy is stale; the guard rejects the
	// transition instead of settling the request a second time.
	second.Status = entities.WithdrawalStatusApproved
	err = repo.Update(ctx, second, entities.WithdrawalStatusPending)
	require.ErrorIs(t, err, domainerrors.ErrNotPending)

	got, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusApproved, got.Status)
}

func TestWithdrawalRepository_SinglePendingPerAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	require.NoError(t, repo.Create(ctx, &entities.WithdrawalRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(60),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	}))

	// The partial unique index fires even when the application-level
	// pending check was raced past.
	err := repo.Create(ctx, &entities.WithdrawalRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(80),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// Settled requests do not block a new pending one.
	require.NoError(t, repo.Create(ctx, &entities.WithdrawalRequest{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromInt(60),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
	}))
	require.NoError(t, repo.Create(ctx, &entities.WithdrawalRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(90),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusRejected,
	}))
}

func TestWithdrawalRepository_Listings(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	statuses := []entities.WithdrawalStatus{
		entities.WithdrawalStatusRejected,
		entities.WithdrawalStatusApproved,
		entities.WithdrawalStatusPending,
	}
	for i, status := range statuses {
		require.NoError(t, repo.Create(ctx, &entities.WithdrawalRequest{
			AccountID: accountID,
			Amount:    decimal.NewFromInt(int64(50 * (i + 1))),
			Currency:  "TOK",
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &entities.WithdrawalRequest{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromInt(75),
		Currency:  "TOK",
		Status:    entities.WithdrawalStatusPending,
		CreatedAt: base.Add(-time.Hour),
	}))

	byAccount, total, err := repo.ListByAccount(ctx, accountID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, byAccount, 3)
	// Newest first for the account history.
	require.Equal(t, entities.WithdrawalStatusPending, byAccount[0].Status)

	queue, total, err := repo.ListByStatus(ctx, entities.WithdrawalStatusPending, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, queue, 2)
	// Oldest first so reviewers drain the queue in arrival order.
	require.True(t, queue[0].CreatedAt.Before(queue[1].CreatedAt))
}
