package journal

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mintd/internal/providers"
	"mintd/internal/structures"
)

// ClaimRecord is one successful claim as seen by the audit journal.
type ClaimRecord struct {
	ID         int64  `gorm:"primaryKey"`
	Wallet     string `gorm:"index"`
	Tier       string `gorm:"not null"`
	Price      uint64 `gorm:"not null"`
	TokenIndex uint64 `gorm:"uniqueIndex"`
	URI        string `gorm:"not null"`
	Title      string
	CreatedAt  time.Time
}

type JournalInterface interface {
	RecordClaim(rec *ClaimRecord) error
	ClaimsByWallet(wallet string) ([]*ClaimRecord, error)
	Count() (int64, error)
	Close() error
}

// SqliteJournal persists successful claims after the arena transaction
// commits. It is an audit artifact: a write failure is reported to the
// caller for logging but never unwinds a committed claim.
type SqliteJournal struct {
	db *gorm.DB
}

func NewJournal(conf *structures.Config, log providers.Logger) (JournalInterface, error) {
	if !conf.Journal.Enabled || conf.Journal.Path == "" {
		log.Infof(providers.TypeApp, "Claim journal disabled")
		return &noopJournal{}, nil
	}

	db, err := gorm.Open(sqlite.Open(conf.Journal.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ClaimRecord{}); err != nil {
		return nil, err
	}

	log.Infof(providers.TypeApp, "Claim journal opened at %s", conf.Journal.Path)
	return &SqliteJournal{db: db}, nil
}

func (j *SqliteJournal) RecordClaim(rec *ClaimRecord) error {
	return j.db.Create(rec).Error
}

func (j *SqliteJournal) ClaimsByWallet(wallet string) ([]*ClaimRecord, error) {
	var records []*ClaimRecord
	err := j.db.Where("wallet = ?", wallet).Order("token_index asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (j *SqliteJournal) Count() (int64, error) {
	var count int64
	err := j.db.Model(&ClaimRecord{}).Count(&count).Error
	return count, err
}

func (j *SqliteJournal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type noopJournal struct{}

func (n *noopJournal) RecordClaim(_ *ClaimRecord) error { return nil }
func (n *noopJournal) ClaimsByWallet(_ string) ([]*ClaimRecord, error) {
	return nil, nil
}
func (n *noopJournal) Count() (int64, error) { return 0, nil }
func (n *noopJournal) Close() error          { return nil }
