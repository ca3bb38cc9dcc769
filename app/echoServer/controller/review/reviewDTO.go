package review

type ReviewReq struct {
	User    string `json:"user" validate:"required"`
	Rating  *int   `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type CreateReviewReq struct {
	BookID int64 `json:"book" validate:"required,gt=0"`
	ReviewReq
}
