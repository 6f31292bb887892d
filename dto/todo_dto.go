package dto

type CreateTodoDTO struct {
	Text string `json:"text" binding:"required"`
}

// UpdateTodoDTO fields are optional pointers; absent fields are left alone.
type UpdateTodoDTO struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}
