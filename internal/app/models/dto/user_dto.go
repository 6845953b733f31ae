package dto

import (
	"time"

	"github.com/yigit/eduadmin/internal/app/models"
)

// ImageResponse exposes the public part of an uploaded image
type ImageResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewImageResponse maps an image model, returning nil for nil
func NewImageResponse(img *models.Image) *ImageResponse {
	if img == nil {
		return nil
	}
	return &ImageResponse{
		ID:        img.ID,
		FileName:  img.FileName,
		FileURL:   img.FileURL,
		FileSize:  img.FileSize,
		MimeType:  img.MimeType,
		CreatedAt: img.CreatedAt,
	}
}

// --- Admins ---

// CreateAdminRequest is accepted as JSON or multipart form with an optional "image" file
type CreateAdminRequest struct {
	Login    string      `json:"login" form:"login" binding:"required,login,min=3,max=64"`
	Password string      `json:"password" form:"password" binding:"required,min=8,max=72"`
	FullName string      `json:"fullName" form:"fullName" binding:"required,notblank,min=2,max=128"`
	Role     models.Role `json:"role" form:"role" binding:"omitempty,oneof=admin super_admin"`
}

// UpdateAdminRequest only touches the fields that are present
type UpdateAdminRequest struct {
	Login    *string      `json:"login" form:"login" binding:"omitempty,login,min=3,max=64"`
	Password *string      `json:"password" form:"password" binding:"omitempty,min=8,max=72"`
	FullName *string      `json:"fullName" form:"fullName" binding:"omitempty,notblank,min=2,max=128"`
	Role     *models.Role `json:"role" form:"role" binding:"omitempty,oneof=admin super_admin"`
}

// AdminResponse is the allow-listed view of an admin
type AdminResponse struct {
	ID        int64          `json:"id"`
	Login     string         `json:"login"`
	FullName  string         `json:"fullName"`
	Role      models.Role    `json:"role"`
	Image     *ImageResponse `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewAdminResponse maps an admin model
func NewAdminResponse(a *models.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Login:     a.Login,
		FullName:  a.FullName,
		Role:      a.Role,
		Image:     NewImageResponse(a.Image),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// --- Teachers ---

// CreateTeacherRequest is accepted as JSON or multipart form with an optional "image" file
type CreateTeacherRequest struct {
	Login    string  `json:"login" form:"login" binding:"required,login,min=3,max=64"`
	Password string  `json:"password" form:"password" binding:"required,min=8,max=72"`
	FullName string  `json:"fullName" form:"fullName" binding:"required,notblank,min=2,max=128"`
	Phone    *string `json:"phone" form:"phone" binding:"omitempty,max=32"`
}

// UpdateTeacherRequest only touches the fields that are present
type UpdateTeacherRequest struct {
	Login    *string `json:"login" form:"login" binding:"omitempty,login,min=3,max=64"`
	Password *string `json:"password" form:"password" binding:"omitempty,min=8,max=72"`
	FullName *string `json:"fullName" form:"fullName" binding:"omitempty,notblank,min=2,max=128"`
	Phone    *string `json:"phone" form:"phone" binding:"omitempty,max=32"`
}

// TeacherResponse is the allow-listed view of a teacher
type TeacherResponse struct {
	ID        int64          `json:"id"`
	Login     string         `json:"login"`
	FullName  string         `json:"fullName"`
	Phone     *string        `json:"phone,omitempty"`
	Image     *ImageResponse `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewTeacherResponse maps a teacher model
func NewTeacherResponse(t *models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:        t.ID,
		Login:     t.Login,
		FullName:  t.FullName,
		Phone:     t.Phone,
		Image:     NewImageResponse(t.Image),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// --- Students ---

// CreateStudentRequest is used by admins; GroupID is optional
type CreateStudentRequest struct {
	Login    string `json:"login" form:"login" binding:"required,login,min=3,max=64"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" form:"fullName" binding:"required,notblank,min=2,max=128"`
	GroupID  *int64 `json:"groupId" form:"groupId" binding:"omitempty,gt=0"`
}

// SignupStudentRequest is the public self-registration payload
type SignupStudentRequest struct {
	Login    string `json:"login" form:"login" binding:"required,login,min=3,max=64"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" form:"fullName" binding:"required,notblank,min=2,max=128"`
}

// UpdateStudentRequest only touches the fields that are present
type UpdateStudentRequest struct {
	Login    *string `json:"login" form:"login" binding:"omitempty,login,min=3,max=64"`
	Password *string `json:"password" form:"password" binding:"omitempty,min=8,max=72"`
	FullName *string `json:"fullName" form:"fullName" binding:"omitempty,notblank,min=2,max=128"`
	GroupID  *int64  `json:"groupId" form:"groupId" binding:"omitempty,gt=0"`
	// ClearGroup removes the student from its group; it cannot be combined with GroupID.
	ClearGroup bool `json:"clearGroup" form:"clearGroup"`
}

// GroupSummary is the group embedded in a student response
type GroupSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StudentResponse is the allow-listed view of a student
type StudentResponse struct {
	ID        int64          `json:"id"`
	Login     string         `json:"login"`
	FullName  string         `json:"fullName"`
	GroupID   *int64         `json:"groupId,omitempty"`
	Group     *GroupSummary  `json:"group,omitempty"`
	Image     *ImageResponse `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewStudentResponse maps a student model
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:        s.ID,
		Login:     s.Login,
		FullName:  s.FullName,
		GroupID:   s.GroupID,
		Image:     NewImageResponse(s.Image),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Group != nil {
		resp.Group = &GroupSummary{ID: s.Group.ID, Name: s.Group.Name}
	}
	return resp
}
