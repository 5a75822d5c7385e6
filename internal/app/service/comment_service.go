package service

import (
	"errors"
	"time"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/policy"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrCommentParentNotFound = errors.New("parent comment not found on this product")
)

type CommentService interface {
	GetProductComments(productID string) ([]*model.CommentNode, error)
	CreateComment(actor policy.Identity, req model.CreateCommentRequest) (*model.Comment, error)
	UpdateComment(actor policy.Identity, commentID uint, body string) (*model.Comment, error)
	DeleteComment(actor policy.Identity, commentID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	productRepo repository.ProductRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
	}
}

// GetProductComments returns the product's comments as a forest of reply
// trees, most recent first at every level.
func (s *commentService) GetProductComments(productID string) ([]*model.CommentNode, error) {
	comments, err := s.commentRepo.FindByProductID(productID)
	if err != nil {
		logger.Error("Failed to fetch comments", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	return buildCommentTree(comments), nil
}

// buildCommentTree turns a flat, date-descending comment list into nested
// reply trees. Two passes over the slice: the first registers every
// comment in an id map, the second attaches each one to its parent.
// Sibling order at every level follows the input order. A comment whose
// parent is missing from the set (a dangling reference that should never
// be produced, but is tolerated) is dropped: nothing could ever reach it.
func buildCommentTree(comments []model.Comment) []*model.CommentNode {
	nodes := make(map[uint]*model.CommentNode, len(comments))
	for i := range comments {
		c := &comments[i]
		nodes[c.ID] = &model.CommentNode{
			ID:        c.ID,
			UserID:    c.UserID,
			ParentID:  c.ParentID,
			UserName:  c.UserName,
			Body:      c.Body,
			Date:      c.Date,
			ProductID: c.ProductID,
			Replies:   []*model.CommentNode{},
		}
	}

	roots := []*model.CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}
	return roots
}

func (s *commentService) CreateComment(actor policy.Identity, req model.CreateCommentRequest) (*model.Comment, error) {
	logger.Info("Creating comment", map[string]interface{}{
		"user_id":    actor.ID,
		"product_id": req.ProductID,
		"parent_id":  req.ParentID,
	})

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create comment: product not found", map[string]interface{}{
				"product_id": req.ProductID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// A reply must point at an existing comment on the same product;
	// cross-product parents would become unreachable orphans.
	if req.ParentID != nil {
		parent, err := s.commentRepo.FindByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cannot create reply: parent comment not found", map[string]interface{}{
					"parent_id": *req.ParentID,
				})
				return nil, ErrCommentParentNotFound
			}
			return nil, err
		}
		if parent.ProductID != req.ProductID {
			logger.Warn("Cannot create reply: parent belongs to another product", map[string]interface{}{
				"parent_id":         *req.ParentID,
				"parent_product_id": parent.ProductID,
				"product_id":        req.ProductID,
			})
			return nil, ErrCommentParentNotFound
		}
	}

	comment := &model.Comment{
		UserID:    actor.ID,
		ParentID:  req.ParentID,
		UserName:  req.UserName,
		Body:      req.Body,
		Date:      time.Now().UTC(),
		ProductID: req.ProductID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		logger.Error("Failed to create comment", err, map[string]interface{}{
			"user_id":    actor.ID,
			"product_id": req.ProductID,
		})
		return nil, err
	}

	logger.Info("Comment created successfully", map[string]interface{}{
		"comment_id": comment.ID,
	})
	return comment, nil
}

func (s *commentService) UpdateComment(actor policy.Identity, commentID uint, body string) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		logger.Error("Failed to fetch comment for update", err, map[string]interface{}{
			"comment_id": commentID,
		})
		return nil, err
	}

	if d := policy.CanMutateComment(actor, comment); !d.Allowed {
		logger.Warn("Comment update denied by policy", map[string]interface{}{
			"actor_id":   actor.ID,
			"comment_id": commentID,
			"reason":     d.Reason,
		})
		return nil, &PolicyDeniedError{Reason: d.Reason}
	}

	comment.Body = body
	comment.Date = time.Now().UTC()
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	logger.Info("Comment updated successfully", map[string]interface{}{
		"comment_id": commentID,
	})
	return comment, nil
}

// DeleteComment removes a comment and every reply underneath it.
func (s *commentService) DeleteComment(actor policy.Identity, commentID uint) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		logger.Error("Failed to fetch comment for deletion", err, map[string]interface{}{
			"comment_id": commentID,
		})
		return err
	}

	if d := policy.CanDeleteComment(actor, comment); !d.Allowed {
		logger.Warn("Comment deletion denied by policy", map[string]interface{}{
			"actor_id":   actor.ID,
			"comment_id": commentID,
			"reason":     d.Reason,
		})
		return &PolicyDeniedError{Reason: d.Reason}
	}

	siblings, err := s.commentRepo.FindByProductID(comment.ProductID)
	if err != nil {
		return err
	}

	ids := collectSubtreeIDs(siblings, commentID)
	if err := s.commentRepo.DeleteByIDs(ids); err != nil {
		return err
	}

	logger.Info("Comment deleted successfully", map[string]interface{}{
		"comment_id":    commentID,
		"cascade_count": len(ids),
	})
	return nil
}

// collectSubtreeIDs gathers rootID and all ids whose parent chain leads
// to it, using the same arena pass as the tree builder.
func collectSubtreeIDs(comments []model.Comment, rootID uint) []uint {
	children := make(map[uint][]uint, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []uint{rootID}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}
	return ids
}
