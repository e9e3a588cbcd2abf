package request

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID string `json:"owner_id" validate:"required,uuid4"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=400"`
	OwnerID *string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
}
