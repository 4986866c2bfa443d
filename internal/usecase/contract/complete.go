package usecase

import (
	"fmt"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

// CompleteContract moves an ACTIVE contract to COMPLETED. Every milestone
// must already be completed; transactions are not required to be settled
// because settlement happens outside this service.
func (uc *DefaultContractUsecase) CompleteContract(contractID string) error {
	milestones, err := uc.MilestoneRepo.ListByContractID(contractID)
	if err != nil {
		return err
	}
	for _, milestone := range milestones {
		if !milestone.IsCompleted {
			return fmt.Errorf("%w: milestone %s is not completed", domain.ErrInvalidTransition, milestone.ID)
		}
	}

	if err := uc.ContractRepo.TransitionStatus(
		contractID, domain.EscrowCompleted,
		domain.TransitionSources(domain.EscrowCompleted)...,
	); err != nil {
		return err
	}

	contract, err := uc.ContractRepo.GetContractByID(contractID)
	if err == nil {
		uc.publishContractEvent(contract, domain.EscrowCompleted)
		if uc.Metrics != nil {
			uc.Metrics.ContractsCompletedTotal.WithLabelValues(contract.Currency).Inc()
		}
	}
	return nil
}
