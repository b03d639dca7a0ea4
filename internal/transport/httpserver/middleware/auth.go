package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"budgetbuddy-go/internal/config"
	"budgetbuddy-go/internal/repository/inmemory"
	"budgetbuddy-go/pkg/logger"
)

var (
	errMissingToken    = errors.New("missing bearer token")
	errTokenRejected   = errors.New("token rejected")
	errAuthUnavailable = errors.New("identity provider unavailable")
)

// ProfileSaver records the signed-in identity. The auth middleware calls it
// once per verified token.
type ProfileSaver interface {
	UpsertProfile(ctx context.Context, userID, email, name, avatarURL string) error
}

// SupabaseAuth verifies bearer tokens against the Supabase user endpoint.
// Verified tokens are remembered for cfg.TokenCacheTTL.
type SupabaseAuth struct {
	userURL  string
	apiKey   string
	client   *http.Client
	profiles ProfileSaver
	tokens   *inmemory.TTLStore[User]
	tokenTTL time.Duration
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type supabaseUser struct {
	ID           string                 `json:"id"`
	Sub          string                 `json:"sub"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	User         struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

func NewSupabaseAuth(cfg config.SupabaseConfig, profiles ProfileSaver, log logger.Logger) *SupabaseAuth {
	timeout := cfg.AuthTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	a := &SupabaseAuth{
		apiKey:   strings.TrimSpace(cfg.PublishableKey),
		client:   &http.Client{Timeout: timeout},
		profiles: profiles,
		tokens:   inmemory.NewTTLStore[User](nil),
		tokenTTL: cfg.TokenCacheTTL,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:        strings.TrimSpace(cfg.MockUserID),
			Email:     strings.TrimSpace(cfg.MockUserEmail),
			Name:      strings.TrimSpace(cfg.MockUserName),
			AvatarURL: strings.TrimSpace(cfg.MockUserAvatar),
		},
		log: log,
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/"); base != "" {
		a.userURL = base + "/auth/v1/user"
	}
	return a
}

func (a *SupabaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		case errors.Is(err, errAuthUnavailable):
			a.log.Warn("auth.verify: provider unavailable", "err", err)
			writeError(w, http.StatusServiceUnavailable, "auth_unavailable", "authentication temporarily unavailable")
		case errors.Is(err, errMissingToken), errors.Is(err, errTokenRejected):
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		default:
			writeError(w, http.StatusInternalServerError, "auth_not_configured", err.Error())
		}
	})
}

func (a *SupabaseAuth) authenticate(r *http.Request) (User, error) {
	if a.skipAuth {
		if a.mockUser.ID == "" {
			return User{}, errors.New("auth mock user id not configured")
		}
		a.saveProfile(r.Context(), a.mockUser)
		return a.mockUser, nil
	}
	if a.userURL == "" || a.apiKey == "" {
		return User{}, errors.New("auth not configured")
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return User{}, errMissingToken
	}

	key := tokenKey(token)
	if user, ok := a.tokens.Get(key); ok {
		return user, nil
	}

	user, err := a.verifyToken(r.Context(), token)
	if err != nil {
		return User{}, err
	}
	a.saveProfile(r.Context(), user)
	a.tokens.Set(key, user, a.tokenTTL)
	return user, nil
}

// verifyToken asks Supabase who owns token.
func (a *SupabaseAuth) verifyToken(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userURL, nil)
	if err != nil {
		return User{}, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", errAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return User{}, fmt.Errorf("%w: status %d", errAuthUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return User{}, errTokenRejected
	}

	var payload supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, errTokenRejected
	}

	id := firstNonEmpty(payload.ID, payload.Sub, payload.User.ID, payload.User.Sub)
	if id == "" {
		return User{}, errTokenRejected
	}
	return User{
		ID:        id,
		Email:     payload.Email,
		Name:      firstNonEmpty(metadataString(payload.UserMetadata, "name"), metadataString(payload.UserMetadata, "full_name")),
		AvatarURL: metadataString(payload.UserMetadata, "avatar_url"),
	}, nil
}

// saveProfile records the identity. Failures are logged and never block the
// request.
func (a *SupabaseAuth) saveProfile(ctx context.Context, user User) {
	if a.profiles == nil {
		return
	}
	if err := a.profiles.UpsertProfile(ctx, user.ID, user.Email, user.Name, user.AvatarURL); err != nil {
		a.log.InternalError("auth.profile: upsert failed", err, "user_id", user.ID)
	}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func bearerToken(value string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func metadataString(values map[string]interface{}, key string) string {
	value, _ := values[key].(string)
	return value
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
