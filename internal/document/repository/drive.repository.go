package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"wordapp/internal/document/model"
	"wordapp/pkg/apperr"
	"wordapp/pkg/logger"
)

// Drive constants shared with every client that has ever written a document:
// the folder name, the file MIME type, and the appProperties tag that marks a
// file as one of ours.
const (
	FolderName     = "Word App Documents"
	folderMimeType = "application/vnd.google-apps.folder"
	docMimeType    = "text/plain"
	docTagKey      = "isWordAppDocument"
)

// DriveRepository stores documents as plain-text files in the caller's Google
// Drive. Every call is parameterized by the caller's bearer token; the
// repository holds no credentials of its own.
type DriveRepository struct{}

func NewDriveRepository() *DriveRepository {
	return &DriveRepository{}
}

// service builds a Drive client bound to the caller's access token. A fresh
// client per call keeps the repository free of per-user state.
func (r *DriveRepository) service(ctx context.Context, token string) (*drive.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, apperr.Upstream("failed to initialize storage client", err)
	}
	return svc, nil
}

// FindDocumentsFolder returns the documents folder id, or "" when the user
// has never saved a document.
func (r *DriveRepository) FindDocumentsFolder(ctx context.Context, token string) (string, error) {
	svc, err := r.service(ctx, token)
	if err != nil {
		return "", err
	}
	return r.findFolder(ctx, svc)
}

// EnsureDocumentsFolder returns the documents folder id, creating the folder
// on first use. Two concurrent first saves can race and each create a folder;
// subsequent lookups settle on whichever Drive lists first.
func (r *DriveRepository) EnsureDocumentsFolder(ctx context.Context, token string) (string, error) {
	svc, err := r.service(ctx, token)
	if err != nil {
		return "", err
	}

	folderID, err := r.findFolder(ctx, svc)
	if err != nil {
		return "", err
	}
	if folderID != "" {
		return folderID, nil
	}

	created, err := svc.Files.Create(&drive.File{
		Name:     FolderName,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", apperr.FromGoogle(err)
	}
	logger.Sugar.Infof("Created documents folder %s", created.Id)
	return created.Id, nil
}

func (r *DriveRepository) findFolder(ctx context.Context, svc *drive.Service) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s'", FolderName, folderMimeType)
	res, err := svc.Files.List().
		Q(query).
		Fields("files(id, name)").
		Spaces("drive").
		Context(ctx).Do()
	if err != nil {
		return "", apperr.FromGoogle(err)
	}
	if len(res.Files) == 0 {
		return "", nil
	}
	return res.Files[0].Id, nil
}

// ListDocuments returns the tagged documents inside folderID, newest first.
func (r *DriveRepository) ListDocuments(ctx context.Context, token, folderID string) ([]model.DocumentSummary, error) {
	svc, err := r.service(ctx, token)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"'%s' in parents and mimeType='%s' and appProperties has { key='%s' and value='true' }",
		folderID, docMimeType, docTagKey)
	res, err := svc.Files.List().
		Q(query).
		Fields("files(id, name, modifiedTime, webViewLink)").
		OrderBy("modifiedTime desc").
		Context(ctx).Do()
	if err != nil {
		return nil, apperr.FromGoogle(err)
	}

	docs := make([]model.DocumentSummary, 0, len(res.Files))
	for _, f := range res.Files {
		docs = append(docs, model.DocumentSummary{
			ID:           f.Id,
			Name:         f.Name,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}
	return docs, nil
}

// CreateDocument uploads plainText as a new tagged file inside folderID.
func (r *DriveRepository) CreateDocument(ctx context.Context, token, folderID, title, plainText string) (*model.CreatedDocument, error) {
	svc, err := r.service(ctx, token)
	if err != nil {
		return nil, err
	}

	file := &drive.File{
		Name:     title,
		MimeType: docMimeType,
		Parents:  []string{folderID},
		AppProperties: map[string]string{
			docTagKey: "true",
		},
	}
	created, err := svc.Files.Create(file).
		Media(strings.NewReader(plainText)).
		Fields("id, name, webViewLink").
		Context(ctx).Do()
	if err != nil {
		return nil, apperr.FromGoogle(err)
	}

	logger.Sugar.Infof("Created document file %s", created.Id)
	return &model.CreatedDocument{
		ID:          created.Id,
		Name:        created.Name,
		WebViewLink: created.WebViewLink,
	}, nil
}

// ReadDocument fetches a document's title and plain-text content.
func (r *DriveRepository) ReadDocument(ctx context.Context, token, id string) (*model.StoredDocument, error) {
	svc, err := r.service(ctx, token)
	if err != nil {
		return nil, err
	}

	meta, err := svc.Files.Get(id).Fields("name").Context(ctx).Do()
	if err != nil {
		return nil, apperr.FromGoogle(err)
	}

	res, err := svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, apperr.FromGoogle(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperr.Upstream("failed to read document content", err)
	}

	return &model.StoredDocument{Name: meta.Name, PlainText: string(data)}, nil
}

// UpdateDocument overwrites a document's title and content in place.
func (r *DriveRepository) UpdateDocument(ctx context.Context, token, id, title, plainText string) error {
	svc, err := r.service(ctx, token)
	if err != nil {
		return err
	}

	_, err = svc.Files.Update(id, &drive.File{Name: title}).
		Media(strings.NewReader(plainText)).
		Fields("id").
		Context(ctx).Do()
	if err != nil {
		return apperr.FromGoogle(err)
	}
	return nil
}

// DeleteDocument removes the file from the user's Drive.
func (r *DriveRepository) DeleteDocument(ctx context.Context, token, id string) error {
	svc, err := r.service(ctx, token)
	if err != nil {
		return err
	}

	if err := svc.Files.Delete(id).Context(ctx).Do(); err != nil {
		return apperr.FromGoogle(err)
	}
	return nil
}
