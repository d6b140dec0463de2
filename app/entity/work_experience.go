package entity

import (
	"database/sql"
	"time"
)

type WorkExperience struct {
	ID          string
	CompanyName string
	Title       string
	Location    sql.NullString
	StartDate   time.Time
	EndDate     sql.NullTime
	Description sql.NullString
	Points      StringList
	UserID      sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
