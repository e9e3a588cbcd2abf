package request

type CreateUserRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=60"`
	Email   string  `json:"email" validate:"required,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
	Role    string  `json:"role" validate:"required,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMINISTRATOR"`
}

type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMINISTRATOR"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
}
