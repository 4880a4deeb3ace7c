package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"bunkhouse/internal/domains/document/model"
	"bunkhouse/shared"
	"bunkhouse/shared/constant"
	gDto "bunkhouse/shared/dto"
	gModel "bunkhouse/shared/model"
	"bunkhouse/shared/timezone"
)

type UploadDocumentRequest struct {
	Type     string                `json:"type" validate:"required,oneof=passport id_card visa other"`
	File     *multipart.FileHeader `json:"file" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=10"`
	FileData multipart.File        `json:"-"`
}

func (u *UploadDocumentRequest) ToModel(userID, fileURL string) model.Document {
	return model.Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       u.Type,
		FileURL:    fileURL,
		Status:     constant.DocumentStatusPending,
		UploadedAt: timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ReviewDocumentRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type DocumentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Type       string    `json:"type"`
	FileURL    string    `json:"file_url"`
	Status     string    `json:"status"`
	UploadedAt time.Time `json:"uploaded_at"`
	gDto.Metadata
}

func (r *DocumentResponse) FromModel(document model.Document) {
	r.ID = document.ID
	r.UserID = document.UserID
	r.Username = document.Username
	r.Type = document.Type
	r.FileURL = document.FileURL
	r.Status = document.Status
	r.UploadedAt = document.UploadedAt
	r.Metadata.FromModel(document.Metadata)
}

type GetDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDocumentsResponse) FromModels(models []model.Document, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Documents = make([]DocumentResponse, len(models))
	for i, mod := range models {
		r.Documents[i].FromModel(mod)
	}
}
