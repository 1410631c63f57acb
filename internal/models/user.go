package models

// User is an account that can sign in and mutate inventory.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	Model
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"size:10;not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}
