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

type DefaultMilestoneRepository struct {
	db *gorm.DB
}

func NewDefaultMilestoneRepository(db *gorm.DB) *DefaultMilestoneRepository {
	return &DefaultMilestoneRepository{db: db}
}

func (r *DefaultMilestoneRepository) CreateMilestone(milestone *domain.Milestone) error {
	milestoneModel := mappers.ToGORMMilestone(milestone)
	if err := r.db.Create(milestoneModel).Error; err != nil {
		return fmt.Errorf("%w: create milestone: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *DefaultMilestoneRepository) GetMilestoneByID(milestoneID string) (*domain.Milestone, error) {
	var milestoneModel models.MilestoneModel
	if err := r.db.First(&milestoneModel, "id = ?", milestoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: milestone %s", domain.ErrNotFound, milestoneID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return mappers.ToDomainMilestone(&milestoneModel), nil
}

// ListByContractID orders by created_at with id as a tiebreaker so the
// "oldest first" contract holds even for rows created in the same instant.
func (r *DefaultMilestoneRepository) ListByContractID(contractID string) ([]*domain.Milestone, error) {
	var milestoneModels []models.MilestoneModel
	if err := r.db.Where("escrow_contract_id = ?", contractID).
		Order("created_at ASC, id ASC").
		Find(&milestoneModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	milestones := make([]*domain.Milestone, len(milestoneModels))
	for i := range milestoneModels {
		milestones[i] = mappers.ToDomainMilestone(&milestoneModels[i])
	}
	return milestones, nil
}

func (r *DefaultMilestoneRepository) SetCompletion(milestoneID string, completed bool) error {
	updates := map[string]interface{}{
		"is_completed": completed,
		"completed_at": nil,
	}
	if completed {
		now := time.Now()
		updates["completed_at"] = &now
	}

	result := r.db.Model(&models.MilestoneModel{}).Where("id = ?", milestoneID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: milestone %s", domain.ErrNotFound, milestoneID)
	}
	return nil
}
