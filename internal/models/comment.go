package models

import "time"

// Comment represents a comment on a post. Comments are append-only.
type Comment struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	PostID    string    `gorm:"type:char(36);not null;index" json:"post_id"`
	UserID    string    `gorm:"type:char(36);not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "posts_comments"
}

// NewComment builds a comment by userID on postID.
func NewComment(id, postID, userID, message string) *Comment {
	return &Comment{
		ID:      id,
		PostID:  postID,
		UserID:  userID,
		Message: message,
	}
}
