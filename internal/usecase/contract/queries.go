package usecase

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
	contractdto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/contract"
)

func (uc *DefaultContractUsecase) GetContractByID(contractID string) (*contractdto.ContractOutput, error) {
	contract, err := uc.ContractRepo.GetContractByID(contractID)
	if err != nil {
		return nil, err
	}
	milestones, err := uc.MilestoneRepo.ListByContractID(contractID)
	if err != nil {
		return nil, err
	}
	return &contractdto.ContractOutput{Contract: contract, Milestones: milestones}, nil
}

func (uc *DefaultContractUsecase) ListContracts(input *contractdto.ListContractsInput) (*contractdto.ListContractsOutput, error) {
	filter := domain.ContractFilter{
		Page:  input.Page,
		Limit: input.Limit,
	}
	if input.ClientID != "" {
		filter.ClientID = &input.ClientID
	}
	if input.AuditorID != "" {
		filter.AuditorID = &input.AuditorID
	}
	if input.Status != "" {
		status := domain.EscrowStatus(input.Status)
		filter.Status = &status
	}
	if input.Currency != "" {
		filter.Currency = &input.Currency
	}

	contracts, total, err := uc.ContractRepo.ListContracts(filter)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &contractdto.ListContractsOutput{
		Contracts: contracts,
		Pagination: contractdto.Pagination{
			CurrentPage:  int32(page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(limit),
		},
	}, nil
}
