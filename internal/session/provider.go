// Package session owns the server's relationship with the identity provider:
// the sign-in flow, the current bearer credential, and keeping that
// credential fresh for as long as the session lives.
package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"wordapp/pkg/apperr"
	"wordapp/pkg/logger"
)

// ErrNotSignedIn is surfaced whenever a credential is requested before a
// sign-in has completed.
var ErrNotSignedIn = apperr.Auth("not signed in")

// Provider exchanges authorization codes for tokens, hands out the current
// access token, and refreshes it in the background until the session ends.
type Provider struct {
	cfg   *oauth2.Config
	store Store

	mu    sync.Mutex
	token *oauth2.Token
}

func NewProvider(clientID, clientSecret, redirectURL string, store Store) *Provider {
	return &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{drive.DriveFileScope, "openid", "profile", "email"},
		},
		store: store,
	}
}

// SignInURL returns the consent page URL the client should visit.
func (p *Provider) SignInURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code from the callback for a token and
// persists it. This completes a sign-in.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.Auth("authorization code exchange failed")
	}

	p.mu.Lock()
	p.token = token
	p.mu.Unlock()

	if err := p.store.Save(token); err != nil {
		logger.Sugar.Errorf("Failed to persist session token: %v", err)
	}
	return token, nil
}

// Credential returns a currently valid access token, refreshing it first if
// it has expired. Fails with ErrNotSignedIn when there is no session.
func (p *Provider) Credential(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token == nil {
		stored, err := p.store.Load()
		if err != nil || stored == nil {
			return "", ErrNotSignedIn
		}
		p.token = stored
	}

	if p.token.Valid() {
		return p.token.AccessToken, nil
	}

	refreshed, err := p.cfg.TokenSource(ctx, p.token).Token()
	if err != nil {
		return "", apperr.Auth("session expired, please sign in again")
	}
	p.token = refreshed
	if err := p.store.Save(refreshed); err != nil {
		logger.Sugar.Errorf("Failed to persist refreshed token: %v", err)
	}
	return refreshed.AccessToken, nil
}

// SignOut drops the current token from memory and the store.
func (p *Provider) SignOut() error {
	p.mu.Lock()
	p.token = nil
	p.mu.Unlock()
	return p.store.Clear()
}

// Run refreshes the credential on a fixed interval until ctx is cancelled.
// Session teardown cancels the context, which stops the loop.
func (p *Provider) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.Credential(ctx); err != nil {
				logger.Sugar.Debugf("Background token refresh skipped: %v", err)
			}
		}
	}
}
