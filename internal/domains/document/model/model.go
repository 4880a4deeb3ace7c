package model

import (
	"time"

	"bunkhouse/shared/model"
)

const (
	TableName  = "documents"
	EntityName = "document"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldType       = "type"
	FieldFileURL    = "file_url"
	FieldStatus     = "status"
	FieldUploadedAt = "uploaded_at"
)

type Document struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Type       string    `db:"type"`
	FileURL    string    `db:"file_url"`
	Status     string    `db:"status"`
	UploadedAt time.Time `db:"uploaded_at"`
	model.Metadata

	Username string `db:"username" table:"users"`
}

func (Document) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = documents.user_id"
}
