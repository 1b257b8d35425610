package request

// LoginRequest accepts the username or the email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateUserRequest provisions a dashboard account. Role defaults to staff.
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=staff admin driver"`
}
