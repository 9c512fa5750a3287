package dto

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}
