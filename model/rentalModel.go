// model/rentalModel.go
package model

type Rental struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"book"`
	UserID    string `json:"user"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
	Returned  bool   `json:"returned"`
	Extended  bool   `json:"extended"`
}

// RentalDetail decorates a rental with the book title and user name
// for display. Both are read-only joins computed at response time.
type RentalDetail struct {
	Rental
	BookTitle string `json:"book_title"`
	UserName  string `json:"user_name"`
}
