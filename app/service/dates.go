package service

import (
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/types"
)

func nullTime(value *types.Date) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.Time, Valid: true}
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time
	return &v
}

func validRange(start time.Time, end sql.NullTime) bool {
	return !end.Valid || !end.Time.Before(start)
}
