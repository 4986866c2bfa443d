package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

func (r *DefaultDisputeRepository) CreateDispute(dispute *domain.Dispute) error {
	disputeModel := mappers.ToGORMDispute(dispute)
	if err := r.db.Create(disputeModel).Error; err != nil {
		return fmt.Errorf("%w: create dispute: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.First(&disputeModel, "id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: dispute %s", domain.ErrNotFound, disputeID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	dispute := mappers.ToDomainDispute(&disputeModel)

	comments, err := r.ListComments(disputeID)
	if err != nil {
		return nil, err
	}
	dispute.Comments = comments
	return dispute, nil
}

// AddComment re-checks the dispute status under a row lock in the same
// database transaction as the insert, so a comment can never land on a
// dispute that resolved concurrently.
func (r *DefaultDisputeRepository) AddComment(comment *domain.DisputeComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var disputeModel models.DisputeModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&disputeModel, "id = ?", comment.DisputeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: dispute %s", domain.ErrNotFound, comment.DisputeID)
			}
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if domain.DisputeStatus(disputeModel.Status).Terminal() {
			return fmt.Errorf("%w: dispute %s is %s", domain.ErrInvalidTransition, comment.DisputeID, disputeModel.Status)
		}
		if err := tx.Create(mappers.ToGORMComment(comment)).Error; err != nil {
			return fmt.Errorf("%w: create comment: %v", domain.ErrPersistence, err)
		}
		return nil
	})
}

func (r *DefaultDisputeRepository) ListComments(disputeID string) ([]*domain.DisputeComment, error) {
	var commentModels []models.DisputeCommentModel
	if err := r.db.Where("dispute_id = ?", disputeID).
		Order("created_at ASC, id ASC").
		Find(&commentModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	comments := make([]*domain.DisputeComment, len(commentModels))
	for i := range commentModels {
		comments[i] = mappers.ToDomainComment(&commentModels[i])
	}
	return comments, nil
}

func (r *DefaultDisputeRepository) AssignArbitrator(disputeID, arbitratorID string) error {
	result := r.db.Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", disputeID, string(domain.DisputeOpened)).
		Updates(map[string]interface{}{
			"arbitrator_id": arbitratorID,
			"status":        string(domain.DisputeInReview),
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyMissedUpdate(r.db, disputeID, domain.ErrInvalidTransition)
	}
	return nil
}

// Resolve uses a conditional update keyed on the non-terminal statuses so
// that concurrent resolvers cannot both win; the loser sees
// ErrAlreadyResolved and the stored resolution text is never overwritten.
func (r *DefaultDisputeRepository) Resolve(disputeID, resolution string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.DisputeModel{}).
			Where("id = ? AND status IN (?)", disputeID,
				[]string{string(domain.DisputeOpened), string(domain.DisputeInReview)}).
			Updates(map[string]interface{}{
				"status":     string(domain.DisputeResolved),
				"resolution": resolution,
			})
		if result.Error != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
		}
		if result.RowsAffected == 0 {
			return r.classifyMissedUpdate(tx, disputeID, domain.ErrAlreadyResolved)
		}
		now := time.Now()
		return tx.Create(&models.EscrowOperationStateModel{
			EntityID:      disputeID,
			Operation:     "resolve_dispute",
			StatusChanged: true,
			CompletedAt:   &now,
		}).Error
	})
	return err
}

func (r *DefaultDisputeRepository) Close(disputeID string) error {
	result := r.db.Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", disputeID, string(domain.DisputeResolved)).
		Update("status", string(domain.DisputeClosed))
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyMissedUpdate(r.db, disputeID, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *DefaultDisputeRepository) ListDisputes(filter domain.DisputeFilter) ([]*domain.Dispute, int64, error) {
	query := r.db.Model(&models.DisputeModel{})

	if filter.ContractID != nil {
		query = query.Where("escrow_contract_id = ?", *filter.ContractID)
	}
	if filter.RaisedBy != nil {
		query = query.Where("raised_by = ?", *filter.RaisedBy)
	}
	if filter.ArbitratorID != nil {
		query = query.Where("arbitrator_id = ?", *filter.ArbitratorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
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

	var disputeModels []models.DisputeModel
	if err := query.Find(&disputeModels).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModels[i])
	}
	return disputes, total, nil
}

// classifyMissedUpdate runs on the caller's handle so the disambiguating
// read stays inside an open transaction when there is one.
func (r *DefaultDisputeRepository) classifyMissedUpdate(db *gorm.DB, disputeID string, guardErr error) error {
	var count int64
	if err := db.Model(&models.DisputeModel{}).Where("id = ?", disputeID).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: dispute %s", domain.ErrNotFound, disputeID)
	}
	return fmt.Errorf("%w: dispute %s", guardErr, disputeID)
}
