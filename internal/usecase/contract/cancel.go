package usecase

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
)

// CancelContract moves a PENDING or ACTIVE contract to CANCELLED.
// Cancellation is a terminal state, not erasure: the row stays.
// A disputed contract cannot be cancelled until the dispute settles.
func (uc *DefaultContractUsecase) CancelContract(contractID string) error {
	if err := uc.ContractRepo.TransitionStatus(
		contractID, domain.EscrowCancelled,
		domain.TransitionSources(domain.EscrowCancelled)...,
	); err != nil {
		return err
	}

	contract, err := uc.ContractRepo.GetContractByID(contractID)
	if err == nil {
		uc.publishContractEvent(contract, domain.EscrowCancelled)
		if uc.Metrics != nil {
			uc.Metrics.ContractsCancelledTotal.WithLabelValues(contract.Currency).Inc()
		}
	}
	return nil
}
