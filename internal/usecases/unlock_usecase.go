package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/domain/repositories"
	"stream-ledger.backend/pkg/logger"
)

// UnlockUsecase settles one-time media purchases: the viewer's wallet
// is debited, the owner's credited, and both sides get a ledger entry
// referencing the unlock, all in one transaction.
type UnlockUsecase struct {
	mediaRepo  repositories.MediaRepository
	unlockRepo repositories.MediaUnlockRepository
	walletRepo repositories.WalletRepository
	ledgerRepo repositories.LedgerRepository
	uow        repositories.UnitOfWork
	cache      BalanceCache
	currency   string
}

// NewUnlockUsecase creates a new unlock usecase
func NewUnlockUsecase(
	mediaRepo repositories.MediaRepository,
	unlockRepo repositories.MediaUnlockRepository,
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	uow repositories.UnitOfWork,
	cache BalanceCache,
	currency string,
) *UnlockUsecase {
	return &UnlockUsecase{
		mediaRepo:  mediaRepo,
		unlockRepo: unlockRepo,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		uow:        uow,
		cache:      cache,
		currency:   currency,
	}
}

// UnlockMedia charges the viewer once for permanent access to a priced
// media item. Repeating the call is safe: an existing unlock is
// returned with AlreadyUnlocked set and no financial mutation. The
// already-unlocked check and the charge share one transaction so a
// concurrent retry can never charge twice.
func (u *UnlockUsecase) UnlockMedia(ctx context.Context, viewerID, mediaID uuid.UUID) (*entities.UnlockResult, error) {
	media, err := u.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if media.OwnerID == viewerID {
		return nil, domainerrors.ErrAlreadyOwner
	}
	if media.IsPublic {
		return nil, domainerrors.ErrInvalidInput
	}

	var result entities.UnlockResult
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.unlockRepo.GetByAccountAndMedia(txCtx, viewerID, mediaID)
		if err == nil {
			balance, berr := u.walletRepo.GetBalance(txCtx, viewerID)
			if berr != nil {
				return berr
			}
			result = entities.UnlockResult{AlreadyUnlocked: true, Unlock: existing, NewBalance: balance}
			return nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		balance, err := u.walletRepo.GetBalance(txCtx, viewerID)
		if err != nil {
			return err
		}
		if balance.LessThan(media.TokenCost) {
			return domainerrors.NewInsufficientFunds(media.TokenCost, balance)
		}

		unlock := &entities.MediaUnlock{
			ID:        uuid.New(),
			AccountID: viewerID,
			MediaID:   mediaID,
			Price:     media.TokenCost,
		}
		if err := u.unlockRepo.Create(txCtx, unlock); err != nil {
			return err
		}

		// Debit side first: a failed debit must never leave a credit
		// with no matching debit.
		viewerBalance, err := u.walletRepo.ApplyDelta(txCtx, viewerID, media.TokenCost.Neg())
		if err != nil {
			return err
		}
		if err := u.ledgerRepo.Append(txCtx, &entities.LedgerEntry{
			AccountID:     viewerID,
			Type:          entities.EntryTypeDebit,
			Amount:        media.TokenCost,
			Currency:      u.currency,
			BalanceAfter:  viewerBalance,
			ReferenceType: entities.ReferenceTypeMediaUnlock,
			ReferenceID:   unlock.ID,
			Description:   fmt.Sprintf("Unlocked media %q", media.Title),
		}); err != nil {
			return err
		}

		ownerBalance, err := u.walletRepo.ApplyDelta(txCtx, media.OwnerID, media.TokenCost)
		if err != nil {
			return err
		}
		if err := u.ledgerRepo.Append(txCtx, &entities.LedgerEntry{
			AccountID:     media.OwnerID,
			Type:          entities.EntryTypeDeposit,
			Amount:        media.TokenCost,
			Currency:      u.currency,
			BalanceAfter:  ownerBalance,
			ReferenceType: entities.ReferenceTypeMediaUnlock,
			ReferenceID:   unlock.ID,
			Description:   fmt.Sprintf("Earnings from media %q", media.Title),
		}); err != nil {
			return err
		}

		result = entities.UnlockResult{Unlock: unlock, NewBalance: viewerBalance}
		return nil
	})
	if err != nil {
		// A concurrent retry can lose the insert race after the
		// in-transaction check; surface it as already unlocked.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			existing, gerr := u.unlockRepo.GetByAccountAndMedia(ctx, viewerID, mediaID)
			if gerr != nil {
				return nil, gerr
			}
			balance, berr := u.walletRepo.GetBalance(ctx, viewerID)
			if berr != nil {
				return nil, berr
			}
			return &entities.UnlockResult{AlreadyUnlocked: true, Unlock: existing, NewBalance: balance}, nil
		}
		return nil, err
	}

	if !result.AlreadyUnlocked {
		if u.cache != nil {
			u.cache.Invalidate(ctx, viewerID, media.OwnerID)
		}
		logger.Info(ctx, "media unlocked",
			zap.String("viewer_id", viewerID.String()),
			zap.String("media_id", mediaID.String()),
			zap.String("token_cost", media.TokenCost.String()),
		)
	}
	return &result, nil
}
