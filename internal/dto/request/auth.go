package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=60"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=400"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
