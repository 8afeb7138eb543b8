package dto

type CreateReviewRequest struct {
	ProductID *string `json:"product_id" validate:"omitempty,uuid"`
	Reviewer  string  `json:"reviewer" validate:"required,min=2"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

type ReviewResponse struct {
	ID        string  `json:"id"`
	ProductID *string `json:"product_id"`
	Reviewer  string  `json:"reviewer"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}
