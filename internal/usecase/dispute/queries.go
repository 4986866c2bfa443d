package usecase

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
	disputedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/dispute"
)

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	return uc.DisputeRepo.GetDisputeByID(disputeID)
}

func (uc *DefaultDisputeUsecase) ListDisputes(input *disputedto.ListDisputesInput) (*disputedto.ListDisputesOutput, error) {
	filter := domain.DisputeFilter{
		Page:  input.Page,
		Limit: input.Limit,
	}
	if input.ContractID != "" {
		filter.ContractID = &input.ContractID
	}
	if input.RaisedBy != "" {
		filter.RaisedBy = &input.RaisedBy
	}
	if input.ArbitratorID != "" {
		filter.ArbitratorID = &input.ArbitratorID
	}
	if input.Status != "" {
		status := domain.DisputeStatus(input.Status)
		filter.Status = &status
	}

	disputes, total, err := uc.DisputeRepo.ListDisputes(filter)
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

	return &disputedto.ListDisputesOutput{
		Disputes: disputes,
		Pagination: disputedto.Pagination{
			CurrentPage:  int32(page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(limit),
		},
	}, nil
}
