package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/service"
	apperrors "github.com/avoronov/techstore-backend/internal/errors"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CommentController struct {
	commentService service.CommentService
}

func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// GetComments returns a product's comments as nested reply trees
// GET /api/v1/comments?product_id=
func (ctrl *CommentController) GetComments(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Query("product_id")
	if productID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "product_id query parameter is required")
		return
	}

	tree, err := ctrl.commentService.GetProductComments(productID)
	if err != nil {
		log.Error("Failed to fetch comments", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": tree,
	})
}

// CreateComment posts a comment or a reply
// POST /api/v1/comments
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create comment request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid comment data")
		return
	}

	actor := middleware.GetIdentity(c)
	comment, err := ctrl.commentService.CreateComment(actor, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrCommentParentNotFound):
			apperrors.BadRequest(c, apperrors.CommentParentNotFound, "Parent comment not found on this product")
		default:
			log.Error("Failed to create comment", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create comment")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// UpdateComment edits a comment body (author only)
// PATCH /api/v1/comments/:id
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid comment id")
		return
	}

	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Comment body is required")
		return
	}

	actor := middleware.GetIdentity(c)
	comment, err := ctrl.commentService.UpdateComment(actor, uint(commentID), req.Body)
	if err != nil {
		if respondPolicyDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrCommentNotFound) {
			apperrors.NotFound(c, apperrors.CommentNotFound, "Comment not found")
			return
		}
		log.Error("Failed to update comment", err, map[string]interface{}{
			"comment_id": commentID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

// DeleteComment removes a comment and its reply subtree
// DELETE /api/v1/comments/:id
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid comment id")
		return
	}

	actor := middleware.GetIdentity(c)
	if err := ctrl.commentService.DeleteComment(actor, uint(commentID)); err != nil {
		if respondPolicyDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrCommentNotFound) {
			apperrors.NotFound(c, apperrors.CommentNotFound, "Comment not found")
			return
		}
		log.Error("Failed to delete comment", err, map[string]interface{}{
			"comment_id": commentID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete comment")
		return
	}

	c.Status(http.StatusNoContent)
}
