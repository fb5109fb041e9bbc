package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Project is a job that proposals are bid against.
type Project struct {
	bun.BaseModel `bun:"table:project"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name" json:"name"`
	CreatedAt time.Time `bun:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bun:"updatedAt" json:"updatedAt"`
}
