package entity

import (
	"database/sql"
	"time"
)

// TimelineEntry is one dated item on the portfolio timeline.
type TimelineEntry struct {
	ID          string
	Title       string
	SubTitle    sql.NullString
	Type        string
	StartDate   time.Time
	EndDate     sql.NullTime
	Description sql.NullString
	Tags        StringList
	Skills      StringList
	UserID      sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
