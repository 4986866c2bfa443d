package usecase

import (
	"fmt"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

// AssignArbitrator moves an OPENED dispute into review. Only a party to
// the disputed contract or an arbitrator may send a dispute to review,
// and the assignee must carry the arbitrator flag in the identity service.
func (uc *DefaultDisputeUsecase) AssignArbitrator(disputeID, actorID, arbitratorID string) error {
	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return err
	}
	contract, err := uc.ContractRepo.GetContractByID(dispute.EscrowContractID)
	if err != nil {
		return err
	}
	if !contract.IsParty(actorID) {
		allowed := false
		if uc.Profiles != nil {
			profile, err := uc.Profiles.GetProfile(actorID)
			if err != nil {
				return err
			}
			allowed = profile.IsArbitrator
		}
		if !allowed {
			return fmt.Errorf("%w: %s may not send dispute %s to review",
				domain.ErrUnauthorized, actorID, disputeID)
		}
	}

	if uc.Profiles != nil {
		profile, err := uc.Profiles.GetProfile(arbitratorID)
		if err != nil {
			return err
		}
		if !profile.IsArbitrator {
			return fmt.Errorf("%w: %s is not an arbitrator", domain.ErrUnauthorized, arbitratorID)
		}
	}
	return uc.DisputeRepo.AssignArbitrator(disputeID, arbitratorID)
}

// ResolveDispute records the binding resolution exactly once. Resolution
// does not itself move funds or touch the contract: binding "dispute
// resolved" to "funds move" stays with the caller.
func (uc *DefaultDisputeUsecase) ResolveDispute(disputeID, actorID, resolution string) error {
	if resolution == "" {
		return fmt.Errorf("%w: resolution text is required", domain.ErrValidation)
	}

	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return err
	}
	if dispute.ArbitratorID != "" {
		if actorID != dispute.ArbitratorID {
			return fmt.Errorf("%w: only the assigned arbitrator may resolve dispute %s",
				domain.ErrUnauthorized, disputeID)
		}
	} else if uc.Profiles != nil {
		profile, err := uc.Profiles.GetProfile(actorID)
		if err != nil {
			return err
		}
		if !profile.IsArbitrator {
			return fmt.Errorf("%w: %s is not an arbitrator", domain.ErrUnauthorized, actorID)
		}
	}

	if err := uc.DisputeRepo.Resolve(disputeID, resolution); err != nil {
		return err
	}

	dispute.Resolution = resolution
	uc.publishDisputeEvent(dispute, domain.DisputeResolved)
	if uc.Metrics != nil {
		uc.Metrics.DisputesResolvedTotal.WithLabelValues(disputeScope(dispute)).Inc()
	}
	return nil
}

// CloseDispute archives a RESOLVED dispute.
func (uc *DefaultDisputeUsecase) CloseDispute(disputeID string) error {
	return uc.DisputeRepo.Close(disputeID)
}
