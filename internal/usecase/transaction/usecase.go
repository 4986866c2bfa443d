package usecase

import (
	"log/slog"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	publisher "github.com/wund3run/arena-escrow-service/internal/infrastructure/kafka"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/metrics"
	transactiondto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/transaction"
)

type TransactionUsecase interface {
	CreateTransaction(input *transactiondto.CreateTransactionInput) (*domain.Transaction, error)
	ApproveTransaction(input *transactiondto.ApproveTransactionInput) (*domain.Transaction, error)
	MarkTransactionExecuted(transactionID, settlementHash string) error
	GetTransactionByID(transactionID string) (*domain.Transaction, error)
	ListContractTransactions(contractID string) ([]*domain.Transaction, error)
}

type DefaultTransactionUsecase struct {
	TransactionRepo domain.TransactionRepository
	ContractRepo    domain.ContractRepository
	MilestoneRepo   domain.MilestoneRepository
	Publisher       domain.PublisherPort
	Metrics         *metrics.EscrowMetrics
}

func NewDefaultTransactionUsecase(
	transactionRepo domain.TransactionRepository,
	contractRepo domain.ContractRepository,
	milestoneRepo domain.MilestoneRepository,
	pub domain.PublisherPort,
	escrowMetrics *metrics.EscrowMetrics) *DefaultTransactionUsecase {

	return &DefaultTransactionUsecase{
		TransactionRepo: transactionRepo,
		ContractRepo:    contractRepo,
		MilestoneRepo:   milestoneRepo,
		Publisher:       pub,
		Metrics:         escrowMetrics,
	}
}

func (uc *DefaultTransactionUsecase) publishTransactionEvent(transaction *domain.Transaction, status domain.TransactionStatus) {
	if uc.Publisher == nil {
		return
	}
	go func(msg domain.Message) {
		if err := uc.Publisher.Publish(publisher.TopicEscrowEvents, msg); err != nil {
			slog.Error("failed to publish transaction event", "transaction_id", transaction.ID, "error", err.Error())
		}
	}(publisher.NewTransactionMessage(publisher.TransactionEvent{
		TransactionID: transaction.ID,
		ContractID:    transaction.EscrowContractID,
		Type:          string(transaction.Type),
		Status:        string(status),
		Amount:        transaction.Amount,
	}))
}
