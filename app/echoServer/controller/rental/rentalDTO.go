package rental

import "librarydesk/model"

type CheckoutReq struct {
	BookID    int64      `json:"book" validate:"required,gt=0"`
	UserID    string     `json:"user" validate:"required"`
	StartDate model.Date `json:"start_date"`
	EndDate   model.Date `json:"end_date"`
}

type ExtendReq struct {
	// Absence is reported only after the lifecycle checks pass.
	EndDate model.Date `json:"end_date"`
}

type UpdateRentalReq struct {
	BookID    int64      `json:"book" validate:"required,gt=0"`
	UserID    string     `json:"user" validate:"required"`
	StartDate model.Date `json:"start_date"`
	EndDate   model.Date `json:"end_date"`
	Returned  bool       `json:"returned"`
	Extended  bool       `json:"extended"`
}

func (r UpdateRentalReq) toModel(id int64) *model.Rental {
	return &model.Rental{
		ID:        id,
		BookID:    r.BookID,
		UserID:    r.UserID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Returned:  r.Returned,
		Extended:  r.Extended,
	}
}
