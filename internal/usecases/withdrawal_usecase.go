package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/domain/repositories"
	"stream-ledger.backend/pkg/logger"
)

// WithdrawalUsecase manages creator payout requests. Creation only
// validates and records the request; the wallet debit and ledger entry
// happen at approval, which re-validates the balance because the funds
// stay spendable in between.
type WithdrawalUsecase struct {
	withdrawalRepo repositories.WithdrawalRepository
	walletRepo     repositories.WalletRepository
	ledgerRepo     repositories.LedgerRepository
	uow            repositories.UnitOfWork
	cache          BalanceCache
	currency       string
	minWithdrawal  decimal.Decimal
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	withdrawalRepo repositories.WithdrawalRepository,
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	uow repositories.UnitOfWork,
	cache BalanceCache,
	currency string,
	minWithdrawal decimal.Decimal,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		withdrawalRepo: withdrawalRepo,
		walletRepo:     walletRepo,
		ledgerRepo:     ledgerRepo,
		uow:            uow,
		cache:          cache,
		currency:       currency,
		minWithdrawal:  minWithdrawal,
	}
}

// CreateRequest records a PENDING withdrawal request. No wallet or
// ledger mutation happens here.
func (u *WithdrawalUsecase) CreateRequest(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*entities.WithdrawalRequest, error) {
	if amount.LessThan(u.minWithdrawal) {
		return nil, &domainerrors.BelowMinimumError{Minimum: u.minWithdrawal, Requested: amount}
	}

	var request *entities.WithdrawalRequest
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		balance, err := u.walletRepo.GetBalance(txCtx, accountID)
		if err != nil {
			return err
		}
		if balance.LessThan(amount) {
			return domainerrors.NewInsufficientFunds(amount, balance)
		}

		if _, err := u.withdrawalRepo.GetPendingByAccount(txCtx, accountID); err == nil {
			return domainerrors.ErrDuplicatePending
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		request = &entities.WithdrawalRequest{
			ID:        uuid.New(),
			AccountID: accountID,
			Amount:    amount,
			Currency:  u.currency,
			Status:    entities.WithdrawalStatusPending,
		}
		if err := u.withdrawalRepo.Create(txCtx, request); err != nil {
			// Partial unique index on (account, PENDING): a concurrent
			// request slipped in between the check and this insert.
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.ErrDuplicatePending
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "withdrawal requested",
		zap.String("account_id", accountID.String()),
		zap.String("amount", amount.String()),
	)
	return request, nil
}

// Review settles a pending request. Approval re-checks the balance,
// debits the wallet and appends the matching DEBIT entry in one
// transaction; rejection only flips the status.
func (u *WithdrawalUsecase) Review(ctx context.Context, requestID uuid.UUID, decision entities.ReviewDecision, reviewerID uuid.UUID, note string) (*entities.WithdrawalRequest, error) {
	if decision != entities.ReviewDecisionApprove && decision != entities.ReviewDecisionReject {
		return nil, domainerrors.ErrInvalidInput
	}

	var request *entities.WithdrawalRequest
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		request, err = u.withdrawalRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status != entities.WithdrawalStatusPending {
			return domainerrors.ErrNotPending
		}

		now := time.Now()
		request.ReviewedBy = &reviewerID
		request.ReviewedAt = &now
		request.ReviewNote = null.NewString(note, note != "")

		if decision == entities.ReviewDecisionReject {
			request.Status = entities.WithdrawalStatusRejected
			return u.withdrawalRepo.Update(txCtx, request, entities.WithdrawalStatusPending)
		}

		// The balance may have been spent since the request was made;
		// nothing was reserved.
		balance, err := u.walletRepo.GetBalance(txCtx, request.AccountID)
		if err != nil {
			return err
		}
		if balance.LessThan(request.Amount) {
			return domainerrors.NewInsufficientFunds(request.Amount, balance)
		}

		newBalance, err := u.walletRepo.ApplyDelta(txCtx, request.AccountID, request.Amount.Neg())
		if err != nil {
			return err
		}
		if err := u.ledgerRepo.Append(txCtx, &entities.LedgerEntry{
			AccountID:     request.AccountID,
			Type:          entities.EntryTypeDebit,
			Amount:        request.Amount,
			Currency:      u.currency,
			BalanceAfter:  newBalance,
			ReferenceType: entities.ReferenceTypeWithdrawal,
			ReferenceID:   request.ID,
			Description:   fmt.Sprintf("Withdrawal payout %s", request.ID),
		}); err != nil {
			return err
		}

		request.Status = entities.WithdrawalStatusApproved
		return u.withdrawalRepo.Update(txCtx, request, entities.WithdrawalStatusPending)
	})
	if err != nil {
		return nil, err
	}

	if request.Status == entities.WithdrawalStatusApproved && u.cache != nil {
		u.cache.Invalidate(ctx, request.AccountID)
	}
	logger.Info(ctx, "withdrawal reviewed",
		zap.String("request_id", requestID.String()),
		zap.String("decision", string(decision)),
		zap.String("reviewer_id", reviewerID.String()),
	)
	return request, nil
}

// ListByAccount lists an account's withdrawal requests
func (u *WithdrawalUsecase) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	return u.withdrawalRepo.ListByAccount(ctx, accountID, limit, offset)
}

// ListByStatus lists the review queue for a given state
func (u *WithdrawalUsecase) ListByStatus(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	return u.withdrawalRepo.ListByStatus(ctx, status, limit, offset)
}
