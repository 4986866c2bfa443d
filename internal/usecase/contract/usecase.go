package usecase

import (
	"log/slog"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	publisher "github.com/wund3run/arena-escrow-service/internal/infrastructure/kafka"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/metrics"
	contractdto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/contract"
)

type ContractUsecase interface {
	CreateContract(input *contractdto.CreateContractInput) (*contractdto.ContractOutput, error)
	CancelContract(contractID string) error
	CompleteContract(contractID string) error
	ReactivateContract(contractID string) error
	GetContractByID(contractID string) (*contractdto.ContractOutput, error)
	ListContracts(input *contractdto.ListContractsInput) (*contractdto.ListContractsOutput, error)
}

type DefaultContractUsecase struct {
	ContractRepo  domain.ContractRepository
	MilestoneRepo domain.MilestoneRepository
	DisputeRepo   domain.DisputeRepository
	Publisher     domain.PublisherPort
	Metrics       *metrics.EscrowMetrics
}

func NewDefaultContractUsecase(
	contractRepo domain.ContractRepository,
	milestoneRepo domain.MilestoneRepository,
	disputeRepo domain.DisputeRepository,
	pub domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics) *DefaultContractUsecase {

	return &DefaultContractUsecase{
		ContractRepo:  contractRepo,
		MilestoneRepo: milestoneRepo,
		DisputeRepo:   disputeRepo,
		Publisher:     pub,
		Metrics:       escrowMetrics,
	}
}

// publishContractEvent emits contract-status-changed best-effort. Failures
// are logged, never returned: delivery is not part of the correctness
// contract.
func (uc *DefaultContractUsecase) publishContractEvent(contract *domain.EscrowContract, status domain.EscrowStatus) {
	if uc.Publisher == nil {
		return
	}
	go func(msg domain.Message) {
		if err := uc.Publisher.Publish(publisher.TopicEscrowEvents, msg); err != nil {
			slog.Error("failed to publish contract event", "contract_id", contract.ID, "error", err.Error())
		}
	}(publisher.NewContractMessage(publisher.ContractEvent{
		ContractID: contract.ID,
		ClientID:   contract.ClientID,
		AuditorID:  contract.AuditorID,
		Status:     string(status),
		Amount:     contract.TotalAmount,
		Currency:   contract.Currency,
	}))
}
