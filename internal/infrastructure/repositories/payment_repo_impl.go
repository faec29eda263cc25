package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"stream-ledger.backend/internal/domain/entities"
	domainerrors "stream-ledger.backend/internal/domain/errors"
	"stream-ledger.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment keyed by provider reference
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	m := &models.Payment{
		ID:          payment.ID,
		ProviderRef: payment.ProviderRef,
		AccountID:   payment.AccountID,
		Tokens:      payment.Tokens,
		Status:      string(payment.Status),
		CreatedAt:   payment.CreatedAt,
	}
	if payment.RawPayload.Valid {
		m.RawPayload = &payment.RawPayload.String
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByProviderRef gets a payment by its idempotency key
func (r *PaymentRepository) GetByProviderRef(ctx context.Context, providerRef string) (*entities.Payment, error) {
	var m models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("provider_ref = ?", providerRef).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByAccountID gets payments for an account with pagination
func (r *PaymentRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Payment{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Where("account_id = ?", accountID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.Payment
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, r.toEntity(&rows[i]))
	}
	return payments, total, nil
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	p := &entities.Payment{
		ID:          m.ID,
		ProviderRef: m.ProviderRef,
		AccountID:   m.AccountID,
		Tokens:      m.Tokens,
		Status:      entities.PaymentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
	if m.RawPayload != nil {
		p.RawPayload = null.StringFrom(*m.RawPayload)
	}
	return p
}
