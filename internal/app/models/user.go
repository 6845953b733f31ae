package models

import "time"

// Admin defines the admin model based on the 'admins' table
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Role         Role      `json:"role" db:"role"`
	ImageID      *int64    `json:"imageId,omitempty" db:"image_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Image        *Image    `json:"image,omitempty"`
}

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID           int64     `json:"id" db:"id"`
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	ImageID      *int64    `json:"imageId,omitempty" db:"image_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Image        *Image    `json:"image,omitempty"`
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id"`
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	GroupID      *int64    `json:"groupId,omitempty" db:"group_id"`
	ImageID      *int64    `json:"imageId,omitempty" db:"image_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Image        *Image    `json:"image,omitempty"`
	Group        *Group    `json:"group,omitempty"`
}

// Credentials is the minimal projection used by login for any user table.
type Credentials struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
}
