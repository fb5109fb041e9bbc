package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Proposal is a contractor's bid submission.
type Proposal struct {
	bun.BaseModel `bun:"table:proposal"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	CompanyName  string    `bun:"companyName" json:"companyName"`
	ContactName  string    `bun:"contactName" json:"contactName"`
	Address      string    `bun:"address" json:"address"`
	City         string    `bun:"city" json:"city"`
	State        string    `bun:"state" json:"state"`
	Zip          string    `bun:"zip" json:"zip"`
	EmailAddress string    `bun:"emailAddress" json:"emailAddress"`
	PhoneNumber  string    `bun:"phoneNumber" json:"phoneNumber"`
	CreatedAt    time.Time `bun:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updatedAt" json:"updatedAt"`
}
