package model

// LibraryUser is keyed by a caller-supplied string id, not a generated
// surrogate. Email is globally unique.
type LibraryUser struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// model/user.go

// CreateUserReq represents the administrative user-creation payload
// swagger:model CreateUserReq
type CreateUserReq struct {
	ID    string `json:"user_id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// LoginReq represents the login-by-id payload
// swagger:model LoginReq
type LoginReq struct {
	ID string `json:"id"`
}
