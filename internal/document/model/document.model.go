package model

import "encoding/json"

// DocumentSummary is one list entry, shaped exactly like the Drive file
// metadata the client renders.
type DocumentSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime"`
	WebViewLink  string `json:"webViewLink"`
}

// CreatedDocument is what the storage provider reports for a new file.
type CreatedDocument struct {
	ID          string
	Name        string
	WebViewLink string
}

// StoredDocument is a document as read back from storage.
type StoredDocument struct {
	Name      string
	PlainText string
}

type SaveDocRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

type SaveDocResponse struct {
	Message     string `json:"message"`
	DocumentID  string `json:"documentId"`
	Title       string `json:"title"`
	WebViewLink string `json:"webViewLink"`
}

type GetDocResponse struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	DocumentID string `json:"documentId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
