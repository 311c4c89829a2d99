package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"wordapp/pkg/apperr"
	"wordapp/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	m.Run()
}

func newTestProvider(store Store) *Provider {
	return NewProvider("client-id", "client-secret", "http://localhost:5001/auth/google/callback", store)
}

func TestSignInURLCarriesClientAndRedirect(t *testing.T) {
	p := newTestProvider(NewMemoryStore())

	url := p.SignInURL("state-token")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "state=state-token")
	assert.Contains(t, url, "redirect_uri=")
}

func TestCredentialWithoutSessionFails(t *testing.T) {
	p := newTestProvider(NewMemoryStore())

	_, err := p.Credential(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
}

func TestCredentialUsesStoredToken(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(&oauth2.Token{
		AccessToken: "stored-access",
		Expiry:      time.Now().Add(time.Hour),
	}))
	p := newTestProvider(store)

	token, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-access", token)
}

func TestSignOutDropsSession(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(&oauth2.Token{
		AccessToken: "stored-access",
		Expiry:      time.Now().Add(time.Hour),
	}))
	p := newTestProvider(store)

	_, err := p.Credential(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.SignOut())

	_, err = p.Credential(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRunStopsOnCancel(t *testing.T) {
	p := newTestProvider(NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop on cancel")
	}
}
