package models

// Assessment is stored as received: DueDate is whatever string the client
// sent, OwnerID stays nil unless a creator is ever recorded.
type Assessment struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	OwnerID     *string `json:"ownerId,omitempty"`
}

type AssessmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}
