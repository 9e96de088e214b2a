package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/videvian/log-in-with-ethos/internal/fileutil"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

const (
	// sessionFilePermissions is the permission mode for the session file.
	sessionFilePermissions = 0o600

	// sessionDirPermissions is the permission mode for the session directory.
	sessionDirPermissions = 0o700

	// maxExportSize caps the provider export read by Import (1 MB).
	maxExportSize = 1 << 20
)

// sessionFile is the on-disk form of an imported provider session.
type sessionFile struct {
	AppID     string    `json:"app_id"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileProvider adapts a user export from the identity provider into a
// Provider. Import stores the export; Login loads it; Logout removes it.
type FileProvider struct {
	path  string
	appID string
	ttl   time.Duration
	now   func() time.Time

	mu   sync.RWMutex
	snap Snapshot
}

// NewFileProvider creates a provider backed by the session file at path.
// appID is recorded on import and must match on login; ttl is clamped.
func NewFileProvider(path, appID string, ttl time.Duration) *FileProvider {
	return &FileProvider{
		path:  path,
		appID: appID,
		ttl:   ClampTTL(ttl),
		now:   time.Now,
	}
}

// Path returns the session file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Snapshot returns the current provider state.
func (p *FileProvider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Import reads a provider user export ({"id", "linkedAccounts"}) and stores
// it as the current session. It does not log in.
func (p *FileProvider) Import(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxExportSize))
	if err != nil {
		return ethoserr.Wrap(err, "reading session export")
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return ethoserr.WithCause(ethoserr.ErrSessionInvalid, err)
	}
	if strings.TrimSpace(user.ID) == "" {
		return ethoserr.WithDetails(ethoserr.ErrSessionInvalid, map[string]string{
			"reason": "export has no user id",
		})
	}

	now := p.now()
	record := sessionFile{
		AppID:     p.appID,
		User:      &user,
		CreatedAt: now,
		ExpiresAt: now.Add(p.ttl),
	}

	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	if err := fileutil.WriteAtomicDir(p.path, encoded, sessionFilePermissions, sessionDirPermissions); err != nil {
		return ethoserr.Wrap(err, "writing session")
	}
	return nil
}

// Login loads the stored session. The provider is ready afterwards whether
// or not login succeeds.
func (p *FileProvider) Login(_ context.Context) error {
	record, err := p.load()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.snap = Snapshot{Ready: true}
	if err != nil {
		return err
	}

	p.snap.Authenticated = true
	p.snap.User = record.User
	return nil
}

// Logout removes the stored session.
func (p *FileProvider) Logout(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snap = Snapshot{Ready: true}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ethoserr.Wrap(err, "removing session")
	}
	return nil
}

// ExpiresAt returns when the stored session expires, if one exists.
func (p *FileProvider) ExpiresAt() (time.Time, bool) {
	record, err := p.read()
	if err != nil {
		return time.Time{}, false
	}
	return record.ExpiresAt, true
}

func (p *FileProvider) load() (*sessionFile, error) {
	record, err := p.read()
	if err != nil {
		return nil, err
	}

	if record.AppID != p.appID {
		return nil, ethoserr.WithDetails(ethoserr.ErrAppMismatch, map[string]string{
			"expected": p.appID,
			"actual":   record.AppID,
		})
	}

	if !p.now().Before(record.ExpiresAt) {
		return nil, ethoserr.WithDetails(ethoserr.ErrSessionExpired, map[string]string{
			"expired_at": record.ExpiresAt.Format(time.RFC3339),
		})
	}

	return record, nil
}

func (p *FileProvider) read() (*sessionFile, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ethoserr.ErrNotAuthenticated
		}
		return nil, ethoserr.Wrap(err, "reading session")
	}

	var record sessionFile
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ethoserr.WithCause(ethoserr.ErrSessionInvalid, err)
	}
	if record.User == nil {
		return nil, ethoserr.WithDetails(ethoserr.ErrSessionInvalid, map[string]string{
			"reason": "session has no user",
		})
	}
	return &record, nil
}
