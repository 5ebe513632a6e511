// Package googledocs exports peulot to Google Docs and reads documents back
// as plain text.
package googledocs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
)

// Scopes requested for the service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/drive",
}

// refreshSkew is how long before expiry a cached token is replaced.
const refreshSkew = time.Minute

// TokenFetcher obtains a fresh access token.
type TokenFetcher func(ctx context.Context) (*oauth2.Token, error)

// CredentialProvider is an oauth2.TokenSource that caches one access token
// and refreshes it shortly before it expires. Concurrent callers that find
// the token stale share a single refresh.
type CredentialProvider struct {
	fetch TokenFetcher
	now   func() time.Time

	mu    sync.Mutex
	token *oauth2.Token
	group singleflight.Group
}

// NewCredentialProvider wraps fetch with caching and refresh collapsing.
func NewCredentialProvider(fetch TokenFetcher) *CredentialProvider {
	return &CredentialProvider{fetch: fetch, now: time.Now}
}

// NewServiceAccountProvider builds a provider from a service-account JSON key.
func NewServiceAccountProvider(jsonKey []byte) (*CredentialProvider, error) {
	cfg, err := google.JWTConfigFromJSON(jsonKey, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	return NewCredentialProvider(func(ctx context.Context) (*oauth2.Token, error) {
		return cfg.TokenSource(ctx).Token()
	}), nil
}

// LoadServiceAccountKey returns the inline key if set, otherwise the content
// of keyFile. It returns nil, nil when neither is configured.
func LoadServiceAccountKey(inline, keyFile string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if keyFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("reading service account key: %w", err)
	}
	return data, nil
}

// Token implements oauth2.TokenSource.
func (p *CredentialProvider) Token() (*oauth2.Token, error) {
	return p.TokenContext(context.Background())
}

// TokenContext returns the cached token or refreshes it.
func (p *CredentialProvider) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	if tok := p.cached(); tok != nil {
		return tok, nil
	}

	v, err, _ := p.group.Do("token", func() (interface{}, error) {
		// Another caller may have refreshed while we queued.
		if tok := p.cached(); tok != nil {
			return tok, nil
		}
		tok, err := p.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if tok == nil || tok.AccessToken == "" {
			return nil, errors.New("token endpoint returned no access token")
		}
		p.mu.Lock()
		p.token = tok
		p.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return nil, fmt.Errorf("refreshing google access token: %w", err)
	}
	return v.(*oauth2.Token), nil
}

// Invalidate drops the cached token so the next call refreshes.
func (p *CredentialProvider) Invalidate() {
	p.mu.Lock()
	p.token = nil
	p.mu.Unlock()
}

func (p *CredentialProvider) cached() *oauth2.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == nil {
		return nil
	}
	if !p.token.Expiry.IsZero() && !p.now().Add(refreshSkew).Before(p.token.Expiry) {
		return nil
	}
	return p.token
}
