package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/domain/repositories"
	"stream-ledger.backend/pkg/logger"
)

// PaymentUsecase credits external token purchases into wallets. The
// provider reference is the idempotency key: the payment notification
// source delivers at least once, and redelivery must not double-credit.
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	accountRepo repositories.AccountRepository
	walletRepo  repositories.WalletRepository
	ledgerRepo  repositories.LedgerRepository
	uow         repositories.UnitOfWork
	cache       BalanceCache
	currency    string
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	accountRepo repositories.AccountRepository,
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	uow repositories.UnitOfWork,
	cache BalanceCache,
	currency string,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		walletRepo:  walletRepo,
		ledgerRepo:  ledgerRepo,
		uow:         uow,
		cache:       cache,
		currency:    currency,
	}
}

// CreditPaymentInput is one provider notification.
type CreditPaymentInput struct {
	ProviderRef string
	AccountID   uuid.UUID
	Tokens      decimal.Decimal
	RawPayload  string
}

// CreditPayment credits the account wallet for one external purchase.
// A provider reference seen before returns the stored payment with
// AlreadyProcessed set and leaves the wallet untouched.
func (u *PaymentUsecase) CreditPayment(ctx context.Context, input CreditPaymentInput) (*entities.CreditResult, error) {
	if input.ProviderRef == "" || !input.Tokens.IsPositive() {
		return nil, domainerrors.ErrInvalidInput
	}
	if _, err := u.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	if existing, err := u.paymentRepo.GetByProviderRef(ctx, input.ProviderRef); err == nil {
		return u.alreadyProcessed(ctx, existing)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	var result entities.CreditResult
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		payment := &entities.Payment{
			ID:          uuid.New(),
			ProviderRef: input.ProviderRef,
			AccountID:   input.AccountID,
			Tokens:      input.Tokens,
			Status:      entities.PaymentStatusSucceeded,
			RawPayload:  null.NewString(input.RawPayload, input.RawPayload != ""),
		}
		if err := u.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}

		newBalance, err := u.walletRepo.ApplyDelta(txCtx, input.AccountID, input.Tokens)
		if err != nil {
			return err
		}

		if err := u.ledgerRepo.Append(txCtx, &entities.LedgerEntry{
			AccountID:     input.AccountID,
			Type:          entities.EntryTypeDeposit,
			Amount:        input.Tokens,
			Currency:      u.currency,
			BalanceAfter:  newBalance,
			ReferenceType: entities.ReferenceTypePayment,
			ReferenceID:   payment.ID,
			Description:   fmt.Sprintf("Token purchase %s", input.ProviderRef),
			Metadata:      input.RawPayload,
		}); err != nil {
			return err
		}

		result = entities.CreditResult{Payment: payment, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		// Two deliveries can race past the fast path; the unique
		// provider_ref column decides, the loser reads the winner's row.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			existing, gerr := u.paymentRepo.GetByProviderRef(ctx, input.ProviderRef)
			if gerr != nil {
				return nil, gerr
			}
			return u.alreadyProcessed(ctx, existing)
		}
		return nil, err
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, input.AccountID)
	}
	logger.Info(ctx, "payment credited",
		zap.String("provider_ref", input.ProviderRef),
		zap.String("account_id", input.AccountID.String()),
		zap.String("tokens", input.Tokens.String()),
	)
	return &result, nil
}

// GetPayments lists an account's payment history
func (u *PaymentUsecase) GetPayments(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	return u.paymentRepo.GetByAccountID(ctx, accountID, limit, offset)
}

func (u *PaymentUsecase) alreadyProcessed(ctx context.Context, payment *entities.Payment) (*entities.CreditResult, error) {
	balance, err := u.walletRepo.GetBalance(ctx, payment.AccountID)
	if err != nil {
		return nil, err
	}
	return &entities.CreditResult{AlreadyProcessed: true, Payment: payment, NewBalance: balance}, nil
}
