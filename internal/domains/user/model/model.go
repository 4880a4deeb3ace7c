package model

import (
	"time"

	"bunkhouse/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldPhone        = "phone"
	FieldFullName     = "full_name"
	FieldRefreshToken = "refresh_token"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	Password     string     `db:"password"`
	Role         string     `db:"role"`
	Phone        *string    `db:"phone"`
	FullName     *string    `db:"full_name"`
	RefreshToken *string    `db:"refresh_token"`
	LastLogin    *time.Time `db:"last_login"`
	Active       bool       `db:"active"`
	model.Metadata
}
