package mappers

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	dispute := &domain.Dispute{
		ID:               model.ID,
		EscrowContractID: model.EscrowContractID,
		RaisedBy:         model.RaisedBy,
		ArbitratorID:     model.ArbitratorID,
		Status:           domain.DisputeStatus(model.Status),
		Reason:           model.Reason,
		Evidence:         model.Evidence,
		Resolution:       model.Resolution,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	if model.MilestoneID != nil {
		dispute.MilestoneID = *model.MilestoneID
	}
	if model.TransactionID != nil {
		dispute.TransactionID = *model.TransactionID
	}
	return dispute
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	model := &models.DisputeModel{
		ID:               dispute.ID,
		EscrowContractID: dispute.EscrowContractID,
		RaisedBy:         dispute.RaisedBy,
		ArbitratorID:     dispute.ArbitratorID,
		Status:           string(dispute.Status),
		Reason:           dispute.Reason,
		Evidence:         dispute.Evidence,
		Resolution:       dispute.Resolution,
		CreatedAt:        dispute.CreatedAt,
		UpdatedAt:        dispute.UpdatedAt,
	}
	if dispute.MilestoneID != "" {
		model.MilestoneID = &dispute.MilestoneID
	}
	if dispute.TransactionID != "" {
		model.TransactionID = &dispute.TransactionID
	}
	return model
}

func ToDomainComment(model *models.DisputeCommentModel) *domain.DisputeComment {
	return &domain.DisputeComment{
		ID:        model.ID,
		DisputeID: model.DisputeID,
		UserID:    model.UserID,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMComment(comment *domain.DisputeComment) *models.DisputeCommentModel {
	return &models.DisputeCommentModel{
		ID:        comment.ID,
		DisputeID: comment.DisputeID,
		UserID:    comment.UserID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
}
