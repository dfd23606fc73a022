package models

// User represents the user model in the database.
// Sessions are anonymous: a user row is created on first contact and
// identified only by its session token.
type User struct {
	Base
	DisplayName  string        `json:"display_name"`
	Anonymous    bool          `gorm:"default:true" json:"anonymous"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
