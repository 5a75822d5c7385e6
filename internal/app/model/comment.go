package model

import (
	"time"
)

// Comment is a product comment. ParentID is nil for root comments and
// points at another comment on the same product for replies.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	UserName  string    `gorm:"not null" json:"userName"`
	Body      string    `gorm:"type:text;not null" json:"userComment"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	ProductID string    `gorm:"not null;index" json:"productId"`

	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentNode is a comment with its reply subtree attached, as returned
// by the tree builder. Replies is always non-nil.
type CommentNode struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"user_id"`
	ParentID  *uint          `json:"parent_id,omitempty"`
	UserName  string         `json:"userName"`
	Body      string         `json:"userComment"`
	Date      time.Time      `json:"date"`
	ProductID string         `json:"productId"`
	Replies   []*CommentNode `json:"replies"`
}

// CreateCommentRequest is the payload for posting a comment
type CreateCommentRequest struct {
	UserName  string `json:"userName" binding:"required,min=1"`
	Body      string `json:"userComment" binding:"required,min=1"`
	ProductID string `json:"productId" binding:"required"`
	ParentID  *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest is the payload for editing a comment body
type UpdateCommentRequest struct {
	Body string `json:"userComment" binding:"required,min=1"`
}
