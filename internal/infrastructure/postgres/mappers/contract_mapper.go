package mappers

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainContract(model *models.EscrowContractModel) *domain.EscrowContract {
	return &domain.EscrowContract{
		ID:                model.ID,
		Title:             model.Title,
		Description:       model.Description,
		ClientID:          model.ClientID,
		AuditorID:         model.AuditorID,
		TotalAmount:       model.TotalAmount,
		Currency:          model.Currency,
		Status:            domain.EscrowStatus(model.Status),
		RequiresMultisig:  model.RequiresMultisig,
		SettlementAddress: model.SettlementAddress,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMContract(contract *domain.EscrowContract) *models.EscrowContractModel {
	return &models.EscrowContractModel{
		ID:                contract.ID,
		Title:             contract.Title,
		Description:       contract.Description,
		ClientID:          contract.ClientID,
		AuditorID:         contract.AuditorID,
		TotalAmount:       contract.TotalAmount,
		Currency:          contract.Currency,
		Status:            string(contract.Status),
		RequiresMultisig:  contract.RequiresMultisig,
		SettlementAddress: contract.SettlementAddress,
		CreatedAt:         contract.CreatedAt,
		UpdatedAt:         contract.UpdatedAt,
	}
}
