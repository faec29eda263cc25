package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"stream-ledger.backend/internal/domain/entities"
	"stream-ledger.backend/internal/infrastructure/models"
)

// LedgerRepository implements append-only ledger operations
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes one immutable ledger entry
func (r *LedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	m := &models.LedgerEntry{
		ID:            entry.ID,
		AccountID:     entry.AccountID,
		Type:          string(entry.Type),
		Amount:        entry.Amount,
		Currency:      entry.Currency,
		BalanceAfter:  entry.BalanceAfter,
		ReferenceType: string(entry.ReferenceType),
		ReferenceID:   entry.ReferenceID,
		Description:   entry.Description,
		Metadata:      entry.Metadata,
		CreatedAt:     entry.CreatedAt,
	}
	if m.Metadata == "" {
		m.Metadata = "{}"
	}

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// ListByAccount lists ledger entries newest first with total count
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	db := GetDB(ctx, r.db)
	query := r.applyFilter(db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("account_id = ?", accountID), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []models.LedgerEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.LedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, r.toEntity(&rows[i]))
	}
	return entries, total, nil
}

// SumByAccount aggregates entry magnitudes over the filter
func (r *LedgerRepository) SumByAccount(ctx context.Context, accountID uuid.UUID, filter entities.LedgerFilter) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db)
	query := r.applyFilter(db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("account_id = ?", accountID), filter)

	var sum decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *LedgerRepository) applyFilter(query *gorm.DB, filter entities.LedgerFilter) *gorm.DB {
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if len(filter.ReferenceTypes) > 0 {
		refs := make([]string, 0, len(filter.ReferenceTypes))
		for _, rt := range filter.ReferenceTypes {
			refs = append(refs, string(rt))
		}
		query = query.Where("reference_type IN ?", refs)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	return query
}

func (r *LedgerRepository) toEntity(m *models.LedgerEntry) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Type:          entities.EntryType(m.Type),
		Amount:        m.Amount,
		Currency:      m.Currency,
		BalanceAfter:  m.BalanceAfter,
		ReferenceType: entities.ReferenceType(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		Description:   m.Description,
		Metadata:      m.Metadata,
		CreatedAt:     m.CreatedAt,
	}
}
