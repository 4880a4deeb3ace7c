package dto

import (
	"time"

	"github.com/google/uuid"

	"bunkhouse/internal/domains/user/model"
	"bunkhouse/shared"
	gDto "bunkhouse/shared/dto"
	gModel "bunkhouse/shared/model"
	"bunkhouse/shared/timezone"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=user staff admin"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
}

func (c *CreateUserRequest) ToModel(creator, hashedPassword string) model.User {
	var phone, fullName *string
	if c.Phone != "" {
		phone = &c.Phone
	}

	if c.FullName != "" {
		fullName = &c.FullName
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: c.Username,
		Email:    c.Email,
		Password: hashedPassword,
		Role:     c.Role,
		Phone:    phone,
		FullName: fullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  creator,
			ModifiedBy: creator,
		},
	}
}

type UpdateUserRequest struct {
	Phone    string `db:"phone" json:"phone" validate:"omitempty,max=20"`
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Email    string `db:"email" json:"email" validate:"omitempty,email"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     *string    `json:"phone,omitempty"`
	FullName  *string    `json:"full_name,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Username = user.Username
	r.Email = user.Email
	r.Role = user.Role
	r.Phone = user.Phone
	r.FullName = user.FullName
	r.LastLogin = user.LastLogin
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
