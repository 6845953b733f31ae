package dto

// CreateGroupRequest creates a student group
type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required,notblank,min=1,max=128" example:"CS-101"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateGroupRequest only touches the fields that are present
type UpdateGroupRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,min=1,max=128"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// CreateSubjectRequest creates a subject
type CreateSubjectRequest struct {
	Name        string  `json:"name" binding:"required,notblank,min=1,max=128" example:"Mathematics"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateSubjectRequest only touches the fields that are present
type UpdateSubjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,min=1,max=128"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}
