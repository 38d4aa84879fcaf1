package versioner

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DefaultTable is used when no migration table is configured
const DefaultTable = "_storefront_migrations"

// MigrationRecord is one applied schema migration
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;size:255;column:version"`
	Name      string    `gorm:"size:255;column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// Versioner tracks which schema migrations have been applied
type Versioner struct {
	db    *gorm.DB
	table string
}

// NewVersioner creates a versioner backed by tableName
func NewVersioner(db *gorm.DB, tableName string) *Versioner {
	if tableName == "" {
		tableName = DefaultTable
	}
	return &Versioner{
		db:    db,
		table: tableName,
	}
}

// Table returns the tracking table name
func (v *Versioner) Table() string {
	return v.table
}

// Initialize creates the tracking table if needed
func (v *Versioner) Initialize() error {
	if err := v.db.Table(v.table).AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migration table %s: %w", v.table, err)
	}
	return nil
}

// Applied returns applied migrations ordered by version
func (v *Versioner) Applied() ([]MigrationRecord, error) {
	var records []MigrationRecord
	if err := v.db.Table(v.table).Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	return records, nil
}

// AppliedVersions returns applied versions in ascending order
func (v *Versioner) AppliedVersions() ([]string, error) {
	records, err := v.Applied()
	if err != nil {
		return nil, err
	}

	versions := make([]string, len(records))
	for i, r := range records {
		versions[i] = r.Version
	}
	return versions, nil
}

// RecordApplied records a version as applied
func (v *Versioner) RecordApplied(version, name string) error {
	record := MigrationRecord{
		Version:   version,
		Name:      name,
		AppliedAt: time.Now().UTC(),
	}
	if err := v.db.Table(v.table).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}
	return nil
}

// RemoveApplied deletes a version record (rollback)
func (v *Versioner) RemoveApplied(version string) error {
	if err := v.db.Table(v.table).Where("version = ?", version).Delete(&MigrationRecord{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", version, err)
	}
	return nil
}

// LatestVersion returns the highest applied version, or "" when none
func (v *Versioner) LatestVersion() (string, error) {
	var record MigrationRecord
	err := v.db.Table(v.table).Order("version DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest version: %w", err)
	}
	return record.Version, nil
}

// AppliedCount returns the number of applied migrations
func (v *Versioner) AppliedCount() (int64, error) {
	var count int64
	if err := v.db.Table(v.table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count applied migrations: %w", err)
	}
	return count, nil
}
