package kafka

import (
	"encoding/json"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

type ContractEvent struct {
	ContractID string  `json:"contract_id"`
	ClientID   string  `json:"client_id"`
	AuditorID  string  `json:"auditor_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
}

type TransactionEvent struct {
	TransactionID string  `json:"transaction_id"`
	ContractID    string  `json:"contract_id"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
}

func NewContractMessage(event ContractEvent) domain.Message {
	v, _ := json.Marshal(event)
	return domain.Message{Key: []byte(event.ContractID), Value: v}
}

func NewTransactionMessage(event TransactionEvent) domain.Message {
	v, _ := json.Marshal(event)
	return domain.Message{Key: []byte(event.ContractID), Value: v}
}
