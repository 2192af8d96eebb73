package model

import "time"

// Log is an activity entry. It is never updated, deleted or cascaded.
type Log struct {
	ID       uint      `gorm:"primaryKey"`
	Usuario  string    `gorm:"index"`
	Acao     string    `gorm:"type:varchar(255)"`
	DataHora time.Time `gorm:"not null;index"`
}

func (Log) TableName() string { return "logs" }
