package session

import (
	"context"
	"encoding/json"
	"net/http"

	"wordapp/middleware"
	"wordapp/pkg/logger"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserInfo is the user's basic profile as the identity provider reports it.
type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type AuthHandler struct {
	Provider *Provider
}

func NewAuthHandler(provider *Provider) *AuthHandler {
	return &AuthHandler{Provider: provider}
}

// SignInURL hands the client the consent URL that starts a sign-in.
func (h *AuthHandler) SignInURL(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = "state-token"
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": h.Provider.SignInURL(state)})
}

// Callback completes the sign-in by exchanging the authorization code.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing authorization code"})
		return
	}

	token, err := h.Provider.Exchange(r.Context(), code)
	if err != nil {
		logger.Sugar.Errorf("Sign-in failed: %v", err)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Signed in successfully",
		"accessToken": token.AccessToken,
		"expiry":      token.Expiry,
	})
}

// SignOut tears down the server-held session.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Provider.SignOut(); err != nil {
		logger.Sugar.Errorf("Sign-out failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error logging out"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Profile returns the caller's identity, looked up with the caller's own
// bearer token. The identity provider is the authority; we just relay.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	info, err := FetchUserInfo(r.Context(), middleware.Credential(r))
	if err != nil {
		logger.Sugar.Errorf("Failed to fetch user profile: %v", err)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Error getting user profile"})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// FetchUserInfo resolves an access token to the user's profile.
func FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotSignedIn
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
