package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// KeyPrefix marks generated per-user API keys.
const KeyPrefix = "sk_mcp_"

// SessionPrefix marks login session tokens.
const SessionPrefix = "session_"

// loginFailure is deliberately generic. It never says whether the
// identifier or the password was wrong.
const loginFailure = "Invalid username/email or password"

var (
	// ErrUnauthorized means the caller's identity does not permit the
	// requested access.
	ErrUnauthorized = errors.New("auth: unauthorized")
	// ErrLoginFailed means the credentials were rejected.
	ErrLoginFailed = errors.New(loginFailure)
	// ErrLoginUnavailable means the user directory could not be reached.
	ErrLoginUnavailable = errors.New("auth: login service unavailable")
)

// Authenticator resolves callers and manages per-user API keys.
type Authenticator struct {
	adminKey  string
	keys      CredentialStore
	directory Directory
	log       *zap.Logger
}

// New builds an Authenticator. adminKey may be empty, which disables
// admin mode. directory may be nil, which disables password login.
func New(adminKey string, keys CredentialStore, directory Directory, log *zap.Logger) *Authenticator {
	return &Authenticator{adminKey: adminKey, keys: keys, directory: directory, log: log}
}

// Authorize resolves a tool call to an identity. Exactly one of userID
// (trusted mode) or apiKey (external mode) is normally set; when both
// are present the key is checked and, for the admin key, userID selects
// the subject.
func (a *Authenticator) Authorize(userID, apiKey string) (Context, error) {
	if apiKey == "" {
		if userID == "" {
			return Context{}, fmt.Errorf("%w: user_id or api_key required", ErrUnauthorized)
		}
		return Context{UserID: userID, Mode: ModeTrusted}, nil
	}

	if a.adminKey != "" && apiKey == a.adminKey {
		if userID == "" {
			return Context{}, fmt.Errorf("%w: admin key requires a user_id", ErrUnauthorized)
		}
		return Context{UserID: userID, Mode: ModeAdmin}, nil
	}

	if owner := a.keys.UserForKey(apiKey); owner != "" {
		if userID != "" && userID != owner {
			a.log.Warn("api key used for foreign user id", zap.String("owner", owner))
			return Context{}, fmt.Errorf("%w: key does not grant access to this user", ErrUnauthorized)
		}
		return Context{UserID: owner, Mode: ModeUser}, nil
	}

	return Context{}, fmt.Errorf("%w: invalid api key", ErrUnauthorized)
}

// RegisterKey mints a fresh API key for the user and stores it. The raw
// key is returned exactly once; only store the masked form elsewhere.
func (a *Authenticator) RegisterKey(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user id required", ErrUnauthorized)
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating key material: %w", err)
	}
	key := KeyPrefix + base64.RawURLEncoding.EncodeToString(raw)
	a.keys.Put(key, userID)
	a.log.Info("api key registered", zap.String("user_id", userID))
	return key, nil
}

// RevokeKey removes one credential. Unknown credentials are a no-op
// reported as false, not an error.
func (a *Authenticator) RevokeKey(credential string) bool {
	ok := a.keys.Delete(credential)
	if ok {
		a.log.Info("credential revoked")
	}
	return ok
}

// RevokeKeys removes all keys for the user. Revoking a user with no
// keys is not an error.
func (a *Authenticator) RevokeKeys(userID string) int {
	n := a.keys.DeleteByUser(userID)
	if n > 0 {
		a.log.Info("api keys revoked", zap.String("user_id", userID), zap.Int("count", n))
	}
	return n
}

// ListMaskedKeys returns the user's keys in masked form.
func (a *Authenticator) ListMaskedKeys(userID string) []string {
	keys := a.keys.KeysForUser(userID)
	masked := make([]string, 0, len(keys))
	for _, k := range keys {
		masked = append(masked, MaskKey(k))
	}
	return masked
}

// MaskKey keeps the first 10 and last 4 characters. Keys too short to
// mask meaningfully are fully hidden.
func MaskKey(key string) string {
	if len(key) <= 14 {
		return "***"
	}
	return key[:10] + "..." + key[len(key)-4:]
}

// LoginResult is returned on a successful password login.
type LoginResult struct {
	UserID       string
	Username     string
	Email        string
	SessionToken string
	APIKey       string
}

// Login verifies a username/email plus password and, on success, mints a
// session token and a fresh API key for the user. Failures are generic:
// the same error covers unknown users and wrong passwords.
func (a *Authenticator) Login(ctx context.Context, ident, password string) (LoginResult, error) {
	if a.directory == nil {
		return LoginResult{}, ErrLoginUnavailable
	}
	if ident == "" || password == "" {
		return LoginResult{}, ErrLoginFailed
	}

	user, status := a.directory.Lookup(ctx, ident)
	switch status {
	case LookupUnavailable:
		return LoginResult{}, ErrLoginUnavailable
	case LookupNotFound:
		// Burn comparable time so unknown users are not distinguishable
		// by response latency.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0xF7zUGFjV1p1sQ3G6cuK3q7o1W"), []byte(password))
		return LoginResult{}, ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrLoginFailed
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return LoginResult{}, fmt.Errorf("generating session token: %w", err)
	}
	// The session token is itself a credential for subsequent calls.
	token := SessionPrefix + base64.RawURLEncoding.EncodeToString(raw)
	a.keys.Put(token, user.UserID)

	key, err := a.RegisterKey(user.UserID)
	if err != nil {
		return LoginResult{}, err
	}

	a.log.Info("login succeeded", zap.String("user_id", user.UserID))
	return LoginResult{
		UserID:       user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		SessionToken: token,
		APIKey:       key,
	}, nil
}
