// model/reviewModel.go
package model

// Review belongs to one book. Reviewer is a free-text name, not a
// foreign key into library_users.
type Review struct {
	ID      int64  `json:"id"`
	BookID  int64  `json:"book"`
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
