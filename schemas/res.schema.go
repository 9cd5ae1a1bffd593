// Package schemas contains request and response shapes
package schemas

// Res is the response envelope
type Res struct {
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
	Status  bool              `json:"status"`
}
