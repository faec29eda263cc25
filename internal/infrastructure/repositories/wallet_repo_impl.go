package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db       *gorm.DB
	currency string
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB, currency string) *WalletRepository {
	return &WalletRepository{db: db, currency: currency}
}

// GetByAccountID gets a wallet by account ID
func (r *WalletRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("account_id = ?", accountID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetBalance returns the current balance, zero when no wallet row exists.
func (r *WalletRepository) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := r.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// ApplyDelta atomically adds delta to the wallet balance, creating the
// wallet at zero first if absent. The mutation is a guarded in-place
// UPDATE, never a read-modify-write in application code, so concurrent
// settlements on the same wallet cannot both spend the same balance.
func (r *WalletRepository) ApplyDelta(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db)

	seed := models.Wallet{
		ID:        uuid.New(),
		AccountID: accountID,
		Balance:   decimal.Zero,
		Currency:  r.currency,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "account_id"}}, DoNothing: true}).
		Create(&seed).Error; err != nil {
		return decimal.Zero, err
	}

	// The balance guard in the WHERE clause is redundant with the
	// precondition checks in the settlement operations, but the store
	// must uphold non-negativity on its own as well.
	res := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("account_id = ? AND balance + ? >= 0", accountID, delta).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		available, err := r.GetBalance(ctx, accountID)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, domainerrors.NewInsufficientFunds(delta.Neg(), available)
	}

	var m models.Wallet
	if err := db.WithContext(ctx).Where("account_id = ?", accountID).First(&m).Error; err != nil {
		return decimal.Zero, err
	}
	return m.Balance, nil
}

func (r *WalletRepository) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		AccountID: m.AccountID,
		Balance:   m.Balance,
		Currency:  m.Currency,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
