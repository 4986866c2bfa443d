package kafka

import (
	"encoding/json"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

type DisputeEvent struct {
	DisputeID  string `json:"dispute_id"`
	ContractID string `json:"contract_id"`
	RaisedBy   string `json:"raised_by"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	Resolution string `json:"resolution,omitempty"`
}

func NewDisputeMessage(event DisputeEvent) domain.Message {
	v, _ := json.Marshal(event)
	return domain.Message{Key: []byte(event.ContractID), Value: v}
}
