package entity

type UserRole string

const (
	RoleStaff  UserRole = "staff"
	RoleAdmin  UserRole = "admin"
	RoleDriver UserRole = "driver"
)

// User is a dashboard account.
type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	FullName     *string  `db:"full_name"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
