package mappers

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	transaction := &domain.Transaction{
		ID:               model.ID,
		EscrowContractID: model.EscrowContractID,
		SenderID:         model.SenderID,
		RecipientID:      model.RecipientID,
		Amount:           model.Amount,
		Type:             domain.TransactionType(model.Type),
		Status:           domain.TransactionStatus(model.Status),
		SettlementHash:   model.SettlementHash,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	if model.MilestoneID != nil {
		transaction.MilestoneID = *model.MilestoneID
	}
	if model.IdempotencyKey != nil {
		transaction.IdempotencyKey = *model.IdempotencyKey
	}
	for i := range model.Approvals {
		transaction.Approvals = append(transaction.Approvals, ToDomainApproval(&model.Approvals[i]))
	}
	return transaction
}

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	model := &models.TransactionModel{
		ID:               transaction.ID,
		EscrowContractID: transaction.EscrowContractID,
		SenderID:         transaction.SenderID,
		RecipientID:      transaction.RecipientID,
		Amount:           transaction.Amount,
		Type:             string(transaction.Type),
		Status:           string(transaction.Status),
		SettlementHash:   transaction.SettlementHash,
		CreatedAt:        transaction.CreatedAt,
		UpdatedAt:        transaction.UpdatedAt,
	}
	if transaction.MilestoneID != "" {
		model.MilestoneID = &transaction.MilestoneID
	}
	if transaction.IdempotencyKey != "" {
		model.IdempotencyKey = &transaction.IdempotencyKey
	}
	return model
}

func ToDomainApproval(model *models.MultisigApprovalModel) *domain.MultisigApproval {
	return &domain.MultisigApproval{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		ApproverID:    model.ApproverID,
		Signature:     model.Signature,
		ApprovedAt:    model.ApprovedAt,
	}
}

func ToGORMApproval(approval *domain.MultisigApproval) *models.MultisigApprovalModel {
	return &models.MultisigApprovalModel{
		ID:            approval.ID,
		TransactionID: approval.TransactionID,
		ApproverID:    approval.ApproverID,
		Signature:     approval.Signature,
		ApprovedAt:    approval.ApprovedAt,
	}
}
