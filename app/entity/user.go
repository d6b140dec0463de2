package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID                   string
	Email                string
	PasswordHash         string
	FirstName            string
	LastName             string
	FullName             sql.NullString
	Tags                 StringList
	Description          sql.NullString
	ProfileImageURL      sql.NullString
	ProfileImagePublicID sql.NullString
	BeyondCode           sql.NullString
	BeyondCodeTags       StringList
	AccessToken          sql.NullString
	RefreshTokenHash     sql.NullString
	ResetTokenHash       sql.NullString
	ResetTokenExpiresAt  sql.NullTime
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DisplayName is the name used to greet the user in outgoing mail.
func (u *User) DisplayName() string {
	if u.FullName.Valid && u.FullName.String != "" {
		return u.FullName.String
	}
	return u.FirstName + " " + u.LastName
}
