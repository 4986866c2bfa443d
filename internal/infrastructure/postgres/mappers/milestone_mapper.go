package mappers

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainMilestone(model *models.MilestoneModel) *domain.Milestone {
	return &domain.Milestone{
		ID:               model.ID,
		EscrowContractID: model.EscrowContractID,
		Title:            model.Title,
		Description:      model.Description,
		Amount:           model.Amount,
		Deadline:         model.Deadline,
		IsCompleted:      model.IsCompleted,
		CompletedAt:      model.CompletedAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMMilestone(milestone *domain.Milestone) *models.MilestoneModel {
	return &models.MilestoneModel{
		ID:               milestone.ID,
		EscrowContractID: milestone.EscrowContractID,
		Title:            milestone.Title,
		Description:      milestone.Description,
		Amount:           milestone.Amount,
		Deadline:         milestone.Deadline,
		IsCompleted:      milestone.IsCompleted,
		CompletedAt:      milestone.CompletedAt,
		CreatedAt:        milestone.CreatedAt,
		UpdatedAt:        milestone.UpdatedAt,
	}
}
