package models

import (
	"encoding/json"
	"strings"
	"time"
)

// PostType classifies a post.
type PostType string

const (
	// PostTypeNormal is the default type of a post.
	PostTypeNormal PostType = "NORMAL"
	// PostTypeEvent marks a post that announces an event.
	PostTypeEvent PostType = "EVENT"
)

// CreatedAtLayout is the layout used when a post's creation time is serialized.
const CreatedAtLayout = "02/01/2006, 15:04:05"

// ParsePostType matches raw case-insensitively against the known post types.
// Surrounding whitespace is not ignored.
func ParsePostType(raw string) (PostType, error) {
	switch PostType(strings.ToUpper(raw)) {
	case PostTypeNormal:
		return PostTypeNormal, nil
	case PostTypeEvent:
		return PostTypeEvent, nil
	default:
		return "", NewValidationError("Invalid post type")
	}
}

// Post represents a post in the Labook application.
type Post struct {
	ID          string   `gorm:"type:char(36);primaryKey" json:"id"`
	Photo       string   `gorm:"not null" json:"photo"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Type        PostType `gorm:"type:varchar(10);not null;default:'NORMAL';index" json:"type"`
	AuthorID    string   `gorm:"type:char(36);not null;index" json:"author_id"`
	Author      *User    `gorm:"foreignKey:AuthorID" json:"-"`
	// AuthorName is not persisted; it is joined in from users at query time
	AuthorName string    `gorm:"->;-:migration" json:"author_name"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// NewPost builds a post owned by authorID. CreatedAt is assigned on insert.
func NewPost(id, photo, description string, postType PostType, authorID string) *Post {
	return &Post{
		ID:          id,
		Photo:       photo,
		Description: description,
		Type:        postType,
		AuthorID:    authorID,
	}
}

// MarshalJSON renders created_at with CreatedAtLayout.
func (p Post) MarshalJSON() ([]byte, error) {
	type postAlias Post
	return json.Marshal(struct {
		postAlias
		CreatedAt string `json:"created_at"`
	}{
		postAlias: postAlias(p),
		CreatedAt: p.CreatedAt.Format(CreatedAtLayout),
	})
}
