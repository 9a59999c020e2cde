package store

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one durable state slot: a key and a JSON-serialized value. All
// persisted state lives in six independently keyed rows of this table.
type Blob struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	keyAuthenticated = "authenticated"
	keyCurrentUser   = "current_user"
	keyCurrentView   = "current_view"
	keyUsers         = "users"
	keyPlans         = "plans"
	keyTransactions  = "transactions"
)

// loadBlob reads one slot into out. The second return is false when the
// slot has never been written, so callers can fall back to defaults.
func loadBlob(db *gorm.DB, key string, out any) (bool, error) {
	var blob Blob
	if err := db.First(&blob, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(blob.Value), out); err != nil {
		return false, err
	}
	return true, nil
}

// saveBlob replaces one slot wholesale. Write failures are deliberately
// unobserved: persistence is best-effort and the in-memory state stays
// authoritative for the life of the process.
func saveBlob(db *gorm.DB, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&Blob{Key: key, Value: string(raw)})
}
