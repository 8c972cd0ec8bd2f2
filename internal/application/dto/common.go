package dto

// ErrorResponse cuerpo de error HTTP. Status siempre es "error".
type ErrorResponse struct {
	Status        string `json:"status"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// MessageResponse cuerpo de respuestas simples de CRUD.
type MessageResponse struct {
	Message    string `json:"message"`
	ItemID     string `json:"itemId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}
