package entity

import "time"

type UserQuery struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
