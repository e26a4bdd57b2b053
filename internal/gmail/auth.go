// Package gmail connects a Gmail account over OAuth and searches it for
// job-related mail.
package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var (
	ErrNotConfigured = errors.New("gmail oauth not configured")
	ErrNotConnected  = errors.New("not connected to gmail")
)

const revokeURL = "https://oauth2.googleapis.com/revoke"

// Auth manages the OAuth token lifecycle. The token lives in a local JSON
// file, matching the single-user deployment model.
type Auth struct {
	mu        sync.Mutex
	config    *oauth2.Config
	tokenFile string
}

// NewAuth constructs an Auth. Returns ErrNotConfigured when the client ID or
// secret is missing.
func NewAuth(clientID, clientSecret, redirectURL, tokenFile string) (*Auth, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, ErrNotConfigured
	}
	return &Auth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gmailapi.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		tokenFile: tokenFile,
	}, nil
}

// AuthURL returns the consent URL to open in a browser.
func (a *Auth) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for a token and persists it.
func (a *Auth) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return a.saveToken(token)
}

// Connected reports whether a stored token exists.
func (a *Auth) Connected() bool {
	_, err := a.loadToken()
	return err == nil
}

// Disconnect revokes the stored token and deletes it.
func (a *Auth) Disconnect(ctx context.Context) error {
	token, err := a.loadToken()
	if err != nil {
		return ErrNotConnected
	}

	form := url.Values{"token": {token.AccessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(form.Encode()))
	if err == nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if resp, revokeErr := http.DefaultClient.Do(req); revokeErr == nil {
			resp.Body.Close()
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return os.Remove(a.tokenFile)
}

// Service returns an authenticated Gmail API service. The token source
// refreshes expired access tokens and persists the refreshed token.
func (a *Auth) Service(ctx context.Context) (*gmailapi.Service, error) {
	token, err := a.loadToken()
	if err != nil {
		return nil, ErrNotConnected
	}
	source := oauth2.ReuseTokenSource(token, &savingTokenSource{
		auth: a,
		base: a.config.TokenSource(ctx, token),
	})
	return gmailapi.NewService(ctx, option.WithTokenSource(source))
}

// savingTokenSource persists every refreshed token back to disk.
type savingTokenSource struct {
	auth *Auth
	base oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if err := s.auth.saveToken(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (a *Auth) loadToken() (*oauth2.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f, err := os.Open(a.tokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (a *Auth) saveToken(token *oauth2.Token) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if dir := filepath.Dir(a.tokenFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(a.tokenFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
