package models

type MessageModel struct {
	ID             uint    `gorm:"primaryKey"`
	AdminID        uint    `gorm:"not null;index"`
	HeadID         uint    `gorm:"not null;index:idx_head_status,priority:1"`
	Subject        string  `gorm:"size:200;not null"`
	MessageContent string  `gorm:"type:text;not null"`
	ComplaintID    *uint   `gorm:"index"`
	Status         string  `gorm:"size:20;not null;index:idx_head_status,priority:2"`
	ReplyContent   *string `gorm:"type:text"`
	RepliedAt      *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null;index"`
	ReadAt         *int64
	ResolvedAt     *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (MessageModel) TableName() string {
	return "admin_head_messages"
}
