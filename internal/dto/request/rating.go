package request

type SubmitRatingRequest struct {
	Value   int     `json:"value" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type UpdateRatingRequest struct {
	Value   *int    `json:"value,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
