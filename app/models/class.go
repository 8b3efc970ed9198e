package models

type Class struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	StudentCount int    `json:"student_count,omitempty"`
}

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
