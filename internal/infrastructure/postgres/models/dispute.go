package models

import "time"

type DisputeModel struct {
	ID               string `gorm:"primaryKey"`
	EscrowContractID string `gorm:"index;not null"`
	MilestoneID      *string
	TransactionID    *string
	RaisedBy         string `gorm:"not null"`
	ArbitratorID     string
	Status           string `gorm:"index"`
	Reason           string
	Evidence         string
	Resolution       string
	Contract         EscrowContractModel `gorm:"foreignKey:EscrowContractID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}

type DisputeCommentModel struct {
	ID        string       `gorm:"primaryKey"`
	DisputeID string       `gorm:"index;not null"`
	UserID    string       `gorm:"not null"`
	Comment   string
	Dispute   DisputeModel `gorm:"foreignKey:DisputeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt time.Time
}

func (DisputeCommentModel) TableName() string {
	return "dispute_comments"
}
