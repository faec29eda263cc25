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

// WithdrawalRepository implements withdrawal request data operations
type WithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create creates a new withdrawal request
func (r *WithdrawalRepository) Create(ctx context.Context, request *entities.WithdrawalRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	now := time.Now()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(r.toModel(request)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a withdrawal request by ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetPendingByAccount returns the account's PENDING request if any
func (r *WithdrawalRepository) GetPendingByAccount(ctx context.Context, accountID uuid.UUID) (*entities.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, string(entities.WithdrawalStatusPending)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists review outcome fields. The status guard makes the
// transition conditional: a request already moved out of `from` by a
// concurrent reviewer is left untouched and the caller's transaction
// rolls back.
func (r *WithdrawalRepository) Update(ctx context.Context, request *entities.WithdrawalRequest, from entities.WithdrawalStatus) error {
	request.UpdatedAt = time.Now()
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", request.ID, string(from)).
		Updates(map[string]interface{}{
			"status":      string(request.Status),
			"reviewed_by": request.ReviewedBy,
			"reviewed_at": request.ReviewedAt,
			"review_note": request.ReviewNote.Ptr(),
			"updated_at":  request.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
			Where("id = ?", request.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrNotPending
	}
	return nil
}

// ListByAccount lists an account's withdrawal requests newest first
func (r *WithdrawalRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	return r.list(ctx, "account_id = ?", accountID, limit, offset)
}

// ListByStatus lists withdrawal requests in a given state, oldest first
// so reviewers work the queue in arrival order.
func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("status = ?", string(status)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.WithdrawalRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(rows), total, nil
}

func (r *WithdrawalRepository) list(ctx context.Context, cond string, arg interface{}, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where(cond, arg).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.WithContext(ctx).Where(cond, arg).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.WithdrawalRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(rows), total, nil
}

func (r *WithdrawalRepository) toModel(e *entities.WithdrawalRequest) *models.WithdrawalRequest {
	return &models.WithdrawalRequest{
		ID:         e.ID,
		AccountID:  e.AccountID,
		Amount:     e.Amount,
		Currency:   e.Currency,
		Status:     string(e.Status),
		ReviewedBy: e.ReviewedBy,
		ReviewedAt: e.ReviewedAt,
		ReviewNote: e.ReviewNote.Ptr(),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (r *WithdrawalRepository) toEntity(m *models.WithdrawalRequest) *entities.WithdrawalRequest {
	e := &entities.WithdrawalRequest{
		ID:         m.ID,
		AccountID:  m.AccountID,
		Amount:     m.Amount,
		Currency:   m.Currency,
		Status:     entities.WithdrawalStatus(m.Status),
		ReviewedBy: m.ReviewedBy,
		ReviewedAt: m.ReviewedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.ReviewNote != nil {
		e.ReviewNote = null.StringFrom(*m.ReviewNote)
	}
	return e
}

func (r *WithdrawalRepository) toEntities(rows []models.WithdrawalRequest) []*entities.WithdrawalRequest {
	out := make([]*entities.WithdrawalRequest, 0, len(rows))
	for i := range rows {
		out = append(out, r.toEntity(&rows[i]))
	}
	return out
}
