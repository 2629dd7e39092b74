package rdb

import "time"

// RevisionRecord is the RDB persistence model for domain Revision.
// Table name: revisions
type RevisionRecord struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	SourcePath string    `gorm:"type:text"`
	Source     string    `gorm:"type:text;not null"`
	Digest     string    `gorm:"type:text;not null;index"`
	Documents  int       `gorm:"not null"`
	Applied    bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (RevisionRecord) TableName() string { return "revisions" }
