package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a buying company. Email is the natural dedup key
// used by the order workflow; it is a best-effort lookup, not a database
// uniqueness constraint.
type Customer struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CompanyName string    `json:"company_name" db:"company_name"`
	CompanyNUI  string    `json:"company_nui" db:"company_nui"`
	Email       string    `json:"email" db:"email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
