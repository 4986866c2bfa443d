package usecase

import (
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/wund3run/arena-escrow-service/internal/domain"
)

// AddComment appends to the dispute thread. Comments are accepted only
// while the dispute is OPENED or IN_REVIEW, and only from the contract
// parties or the assigned arbitrator.
func (uc *DefaultDisputeUsecase) AddComment(disputeID, userID, text string) (*domain.DisputeComment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}

	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return nil, err
	}
	contract, err := uc.ContractRepo.GetContractByID(dispute.EscrowContractID)
	if err != nil {
		return nil, err
	}
	if !contract.IsParty(userID) && userID != dispute.ArbitratorID {
		return nil, fmt.Errorf("%w: %s may not comment on dispute %s",
			domain.ErrUnauthorized, userID, disputeID)
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	comment := &domain.DisputeComment{
		ID:        idGenerator(),
		DisputeID: disputeID,
		UserID:    userID,
		Comment:   text,
		CreatedAt: time.Now(),
	}
	if err := uc.DisputeRepo.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
