package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultContractRepository struct {
	db *gorm.DB
}

func NewDefaultContractRepository(db *gorm.DB) *DefaultContractRepository {
	return &DefaultContractRepository{db: db}
}

func (r *DefaultContractRepository) CreateContractWithMilestones(contract *domain.EscrowContract, milestones []*domain.Milestone) error {
	contractModel := mappers.ToGORMContract(contract)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contractModel).Error; err != nil {
			return err
		}
		for _, milestone := range milestones {
			milestoneModel := mappers.ToGORMMilestone(milestone)
			if err := tx.Create(milestoneModel).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		return tx.Create(&models.EscrowOperationStateModel{
			EntityID:      contract.ID,
			Operation:     "create_contract",
			StatusChanged: true,
			CompletedAt:   &now,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("%w: create contract with milestones: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *DefaultContractRepository) GetContractByID(contractID string) (*domain.EscrowContract, error) {
	var contractModel models.EscrowContractModel
	if err := r.db.First(&contractModel, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contract %s", domain.ErrNotFound, contractID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return mappers.ToDomainContract(&contractModel), nil
}

// TransitionStatus is a conditional update: the status write only lands when
// the stored status is still one of from. A zero rows-affected result is
// disambiguated into ErrNotFound vs ErrInvalidTransition with a follow-up read.
func (r *DefaultContractRepository) TransitionStatus(contractID string, to domain.EscrowStatus, from ...domain.EscrowStatus) error {
	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = string(s)
	}

	result := r.db.Model(&models.EscrowContractModel{}).
		Where("id = ? AND status IN (?)", contractID, fromStatuses).
		Update("status", string(to))
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.EscrowContractModel{}).Where("id = ?", contractID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: contract %s", domain.ErrNotFound, contractID)
		}
		return fmt.Errorf("%w: contract %s cannot move to %s", domain.ErrInvalidTransition, contractID, to)
	}
	return nil
}

func (r *DefaultContractRepository) ListContracts(filter domain.ContractFilter) ([]*domain.EscrowContract, int64, error) {
	query := r.db.Model(&models.EscrowContractModel{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.AuditorID != nil {
		query = query.Where("auditor_id = ?", *filter.AuditorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count failed: %v", domain.ErrPersistence, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	query = query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit)

	var contractModels []models.EscrowContractModel
	if err := query.Find(&contractModels).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	contracts := make([]*domain.EscrowContract, len(contractModels))
	for i := range contractModels {
		contracts[i] = mappers.ToDomainContract(&contractModels[i])
	}
	return contracts, total, nil
}
