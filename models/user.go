package models

import "time"

// Role names used by the authorization policy.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// Role represents roles table
type Role struct {
	RoleID    uint      `gorm:"primaryKey;column:role_id" json:"role_id"`
	RoleName  string    `gorm:"type:varchar(50);not null;unique" json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}

// User represents users table
type User struct {
	UserID       uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username     string     `gorm:"type:varchar(50);not null;unique" json:"username"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	FullName     string     `gorm:"type:varchar(100);not null" json:"full_name"`
	EmployeeCode string     `gorm:"type:varchar(20);not null;unique" json:"employee_code"`
	RoleID       uint       `gorm:"not null" json:"role_id"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
