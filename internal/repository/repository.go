package repository

import "gorm.io/gorm"

// Repository aggregates all repositories.
type Repository struct {
	Account AccountRepository
	Result  ResultRepository
}

// NewRepository builds the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Account: NewAccountRepo(db),
		Result:  NewResultRepo(db),
	}
}
