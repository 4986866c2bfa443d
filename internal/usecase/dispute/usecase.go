package usecase

import (
	"log/slog"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	publisher "github.com/wund3run/arena-escrow-service/internal/infrastructure/kafka"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/metrics"
	disputedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	CreateDispute(input *disputedto.CreateDisputeInput) (*domain.Dispute, error)
	AddComment(disputeID, userID, text string) (*domain.DisputeComment, error)
	AssignArbitrator(disputeID, actorID, arbitratorID string) error
	ResolveDispute(disputeID, actorID, resolution string) error
	CloseDispute(disputeID string) error
	GetDisputeByID(disputeID string) (*domain.Dispute, error)
	ListDisputes(input *disputedto.ListDisputesInput) (*disputedto.ListDisputesOutput, error)
}

type DefaultDisputeUsecase struct {
	DisputeRepo     domain.DisputeRepository
	ContractRepo    domain.ContractRepository
	MilestoneRepo   domain.MilestoneRepository
	TransactionRepo domain.TransactionRepository
	Profiles        domain.ProfileProvider
	Publisher       domain.PublisherPort
	Metrics         *metrics.EscrowMetrics
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	contractRepo domain.ContractRepository,
	milestoneRepo domain.MilestoneRepository,
	transactionRepo domain.TransactionRepository,
	profiles domain.ProfileProvider,
	pub domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics) *DefaultDisputeUsecase {

	return &DefaultDisputeUsecase{
		DisputeRepo:     disputeRepo,
		ContractRepo:    contractRepo,
		MilestoneRepo:   milestoneRepo,
		TransactionRepo: transactionRepo,
		Profiles:        profiles,
		Publisher:       pub,
		Metrics:         escrowMetrics,
	}
}

func (uc *DefaultDisputeUsecase) publishDisputeEvent(dispute *domain.Dispute, status domain.DisputeStatus) {
	if uc.Publisher == nil {
		return
	}
	go func(msg domain.Message) {
		if err := uc.Publisher.Publish(publisher.TopicDisputeEvents, msg); err != nil {
			slog.Error("failed to publish dispute event", "dispute_id", dispute.ID, "error", err.Error())
		}
	}(publisher.NewDisputeMessage(publisher.DisputeEvent{
		DisputeID:  dispute.ID,
		ContractID: dispute.EscrowContractID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		Status:     string(status),
		Resolution: dispute.Resolution,
	}))
}

func disputeScope(dispute *domain.Dispute) string {
	switch {
	case dispute.MilestoneID != "":
		return "milestone"
	case dispute.TransactionID != "":
		return "transaction"
	default:
		return "contract"
	}
}
