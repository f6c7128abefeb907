package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/newindiatimber/timbercraft/internal/db"
)

const (
	CookieName = "timbercraft_session"
	sessionTTL = 12 * time.Hour
)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Service checks admin credentials and signs session cookies.
type Service struct {
	db     *db.Handle
	secret []byte
	now    func() time.Time
}

func NewService(h *db.Handle, sessionSecret string) *Service {
	return &Service{db: h, secret: []byte(sessionSecret), now: time.Now}
}

// ValidateCredentials reports whether email and password match a stored user.
func (s *Service) ValidateCredentials(ctx context.Context, email, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT password_hash FROM users WHERE email = ?`),
		strings.ToLower(strings.TrimSpace(email))).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user credentials: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password hash: %w", err)
	}
	return true, nil
}

func (s *Service) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionValue encodes email and an expiry, signed with the session secret.
func (s *Service) SessionValue(email string) string {
	expires := strconv.FormatInt(s.now().Add(sessionTTL).Unix(), 10)
	payload := base64.RawURLEncoding.EncodeToString([]byte(email)) + "." + expires
	return payload + "." + s.sign(payload)
}

// VerifySession returns the email in a valid, unexpired session value.
func (s *Service) VerifySession(value string) (string, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return "", false
	}
	payload := parts[0] + "." + parts[1]

	provided, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", false
	}
	expected, _ := hex.DecodeString(s.sign(payload))
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || s.now().Unix() >= expires {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil || len(decoded) == 0 {
		return "", false
	}
	return string(decoded), true
}

func (s *Service) SetCookie(w http.ResponseWriter, email string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.SessionValue(email),
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

// Require rejects requests without a valid session with 401 and stores the
// session email in the request context.
func (s *Service) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil {
			unauthorized(w)
			return
		}
		email, ok := s.VerifySession(c.Value)
		if !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, email)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}` + "\n"))
}

// Email returns the session email stored by Require.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(ctxKey{}).(string)
	return email
}
