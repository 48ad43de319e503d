package models

import "io"

const (
	ResourceDocument = "document"
	ResourceVideo    = "video"
)

// Resource is a learning material listed on the resources screen
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Downloads   int    `json:"downloads"`
}

// Download is a binary payload on its way to the browser. The caller owns Body.
type Download struct {
	Filename      string
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}
