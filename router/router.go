package router

import (
	"net/http"
	"time"

	"wordapp/config"
	docHandler "wordapp/internal/document"
	"wordapp/internal/document/repository"
	"wordapp/internal/document/service"
	"wordapp/internal/session"
	"wordapp/middleware"
)

// Setup wires the handlers behind the middleware chain. The document routes
// require a bearer credential; health and the sign-in flow do not.
func Setup(cfg *config.Config, sessions *session.Provider) http.Handler {
	mux := http.NewServeMux()

	docRepo := repository.NewDriveRepository()
	docService := service.NewDocumentService(docRepo)
	docs := docHandler.NewDocumentHandler(docService, cfg.IsProduction())
	auth := middleware.AuthMiddleware

	mux.HandleFunc("GET /health", docs.Health)

	mux.Handle("GET /documents/list", auth(http.HandlerFunc(docs.ListDocuments)))
	mux.Handle("POST /documents/save", auth(http.HandlerFunc(docs.SaveDocument)))
	mux.Handle("GET /documents/{id}", auth(http.HandlerFunc(docs.GetDocument)))
	mux.Handle("PUT /documents/{id}", auth(http.HandlerFunc(docs.UpdateDocument)))
	mux.Handle("DELETE /documents/{id}", auth(http.HandlerFunc(docs.DeleteDocument)))

	sessionHandler := session.NewAuthHandler(sessions)
	mux.HandleFunc("GET /auth/url", sessionHandler.SignInURL)
	mux.HandleFunc("GET /auth/google/callback", sessionHandler.Callback)
	mux.HandleFunc("POST /auth/signout", sessionHandler.SignOut)
	mux.Handle("GET /auth/profile", auth(http.HandlerFunc(sessionHandler.Profile)))

	limiter := middleware.NewRateLimiter(100, 15*time.Minute)

	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(cfg.ClientURL, handler)
	handler = limiter.Middleware(handler)
	handler = middleware.SecureHeaders(handler)
	handler = middleware.RequestIDMiddleware(handler)
	return handler
}
