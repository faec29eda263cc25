package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"stream-ledger.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Wallet{},
		&models.LedgerEntry{},
		&models.MediaItem{},
		&models.MediaUnlock{},
		&models.Payment{},
		&models.WithdrawalRequest{},
	), "migrate schema")
	return db
}
