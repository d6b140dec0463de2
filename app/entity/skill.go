package entity

import (
	"database/sql"
	"time"
)

type Skill struct {
	ID          string
	Name        string
	IconName    sql.NullString
	Section     string
	IconLibrary sql.NullString
	UserID      sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
