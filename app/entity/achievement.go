package entity

import (
	"database/sql"
	"time"
)

type Achievement struct {
	ID            string
	Title         string
	Subtitle      sql.NullString
	Description   sql.NullString
	Date          time.Time
	ImageURL      sql.NullString
	ImagePublicID sql.NullString
	UserID        sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
