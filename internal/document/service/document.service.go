package service

import (
	"context"
	"strings"

	"wordapp/internal/document/codec"
	"wordapp/internal/document/model"
	"wordapp/pkg/apperr"
)

// Storage is the slice of the storage provider the service needs. Every call
// carries the caller's bearer token; the provider is the authority on whether
// that token is any good.
type Storage interface {
	FindDocumentsFolder(ctx context.Context, token string) (string, error)
	EnsureDocumentsFolder(ctx context.Context, token string) (string, error)
	ListDocuments(ctx context.Context, token, folderID string) ([]model.DocumentSummary, error)
	CreateDocument(ctx context.Context, token, folderID, title, plainText string) (*model.CreatedDocument, error)
	ReadDocument(ctx context.Context, token, id string) (*model.StoredDocument, error)
	UpdateDocument(ctx context.Context, token, id, title, plainText string) error
	DeleteDocument(ctx context.Context, token, id string) error
}

type DocumentService struct {
	Storage Storage
}

func NewDocumentService(storage Storage) *DocumentService {
	return &DocumentService{Storage: storage}
}

// List returns the user's documents, newest first. A user who has never
// saved anything has no folder yet; that is an empty list, not an error.
func (s *DocumentService) List(ctx context.Context, token string) ([]model.DocumentSummary, error) {
	folderID, err := s.Storage.FindDocumentsFolder(ctx, token)
	if err != nil {
		return nil, err
	}
	if folderID == "" {
		return []model.DocumentSummary{}, nil
	}
	return s.Storage.ListDocuments(ctx, token, folderID)
}

// Get reads a stored document and rebuilds its rich content from plain text.
func (s *DocumentService) Get(ctx context.Context, token, id string) (*model.GetDocResponse, error) {
	stored, err := s.Storage.ReadDocument(ctx, token, id)
	if err != nil {
		return nil, err
	}

	content, err := codec.Decode(stored.PlainText).Serialize()
	if err != nil {
		return nil, err
	}

	return &model.GetDocResponse{
		Title:      stored.Name,
		Content:    content,
		DocumentID: id,
	}, nil
}

// Create validates and flattens the document, then stores it as a new file.
// Validation happens before any storage call so a bad request costs nothing.
func (s *DocumentService) Create(ctx context.Context, token string, req model.SaveDocRequest) (*model.CreatedDocument, error) {
	plainText, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	folderID, err := s.Storage.EnsureDocumentsFolder(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.Storage.CreateDocument(ctx, token, folderID, req.Title, plainText)
}

// Update overwrites a stored document wholesale. Last writer wins.
func (s *DocumentService) Update(ctx context.Context, token, id string, req model.SaveDocRequest) error {
	plainText, err := s.prepare(req)
	if err != nil {
		return err
	}
	return s.Storage.UpdateDocument(ctx, token, id, req.Title, plainText)
}

// Delete removes a stored document.
func (s *DocumentService) Delete(ctx context.Context, token, id string) error {
	return s.Storage.DeleteDocument(ctx, token, id)
}

func (s *DocumentService) prepare(req model.SaveDocRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", apperr.Validation("title is required")
	}
	state, err := model.ParseContent(req.Content)
	if err != nil {
		return "", err
	}
	return codec.Encode(state)
}
