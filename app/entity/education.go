package entity

import (
	"database/sql"
	"time"
)

type Education struct {
	ID          string
	Degree      string
	CollegeName string
	StartDate   time.Time
	EndDate     sql.NullTime
	Description sql.NullString
	Tags        StringList
	UserID      sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
