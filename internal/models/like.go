package models

// Like represents a user's like on a post.
// The combination of PostID and UserID is the primary key.
type Like struct {
	PostID string `gorm:"type:char(36);primaryKey" json:"post_id"`
	UserID string `gorm:"type:char(36);primaryKey;index" json:"user_id"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "posts_likes"
}
