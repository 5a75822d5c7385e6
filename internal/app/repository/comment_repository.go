package repository

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
	FindByProductID(productID string) ([]model.Comment, error)
	Update(comment *model.Comment) error
	DeleteByIDs(ids []uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	logger.Debug("Creating comment in database", map[string]interface{}{
		"user_id":    comment.UserID,
		"product_id": comment.ProductID,
		"parent_id":  comment.ParentID,
	})

	if err := r.db.Create(comment).Error; err != nil {
		logger.Error("Failed to create comment in database", err, map[string]interface{}{
			"user_id":    comment.UserID,
			"product_id": comment.ProductID,
		})
		return err
	}
	return nil
}

func (r *commentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByProductID returns the flat comment list for one product, most
// recent first. The tree builder relies on this ordering.
func (r *commentRepository) FindByProductID(productID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("product_id = ?", productID).
		Order("date DESC").
		Find(&comments).Error
	if err != nil {
		logger.Error("Failed to list comments from database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	logger.Debug("Updating comment in database", map[string]interface{}{
		"comment_id": comment.ID,
	})

	if err := r.db.Save(comment).Error; err != nil {
		logger.Error("Failed to update comment in database", err, map[string]interface{}{
			"comment_id": comment.ID,
		})
		return err
	}
	return nil
}

// DeleteByIDs removes a comment together with its reply subtree. The
// caller collects the subtree ids; deleting them in one statement keeps
// the cascade atomic.
func (r *commentRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	logger.Debug("Deleting comments from database", map[string]interface{}{
		"count": len(ids),
	})

	if err := r.db.Where("id IN ?", ids).Delete(&model.Comment{}).Error; err != nil {
		logger.Error("Failed to delete comments from database", err, map[string]interface{}{
			"count": len(ids),
		})
		return err
	}
	return nil
}
