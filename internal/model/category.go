package model

// Category независимая таксономия предметов (не связана с TutorProfile.Subjects)
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
