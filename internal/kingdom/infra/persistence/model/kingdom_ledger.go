package model

import "time"

// model
type KingdomLedger struct {
	Id        string    `gorm:"column:id;type:varchar(32);comment:单例主键;primaryKey;not null;" json:"id"`
	Version   uint64    `gorm:"column:version;type:bigint UNSIGNED;comment:快照版本;not null;default:0;" json:"version"`
	Payload   string    `gorm:"column:payload;type:longtext;comment:王国与账本(JSON);not null;" json:"payload"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (m *KingdomLedger) TableName() string {
	return "kingdom_ledger"
}
