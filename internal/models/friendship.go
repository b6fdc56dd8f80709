package models

// Friendship links two users. A pair is stored once, with UserOneID sorting
// before UserTwoID; build it through NewFriendPair.
type Friendship struct {
	UserOneID string `gorm:"type:char(36);primaryKey" json:"user_one_id"`
	UserTwoID string `gorm:"type:char(36);primaryKey;index" json:"user_two_id"`

	// Relationships
	UserOne *User `gorm:"foreignKey:UserOneID" json:"-"`
	UserTwo *User `gorm:"foreignKey:UserTwoID" json:"-"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "users_friends"
}

// NewFriendPair returns the normalized friendship key for two users.
func NewFriendPair(a, b string) Friendship {
	if b < a {
		a, b = b, a
	}
	return Friendship{UserOneID: a, UserTwoID: b}
}
