package usecase

import (
	"fmt"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

// ReactivateContract returns a DISPUTED contract to ACTIVE once every
// dispute raised against it is RESOLVED or CLOSED.
func (uc *DefaultContractUsecase) ReactivateContract(contractID string) error {
	for _, status := range []domain.DisputeStatus{domain.DisputeOpened, domain.DisputeInReview} {
		_, total, err := uc.DisputeRepo.ListDisputes(domain.DisputeFilter{
			ContractID: &contractID,
			Status:     &status,
		})
		if err != nil {
			return err
		}
		if total > 0 {
			return fmt.Errorf("%w: contract %s has an unsettled dispute",
				domain.ErrInvalidTransition, contractID)
		}
	}

	if err := uc.ContractRepo.TransitionStatus(
		contractID, domain.EscrowActive, domain.EscrowDisputed,
	); err != nil {
		return err
	}

	contract, err := uc.ContractRepo.GetContractByID(contractID)
	if err == nil {
		uc.publishContractEvent(contract, domain.EscrowActive)
	}
	return nil
}
