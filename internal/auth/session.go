package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// SessionCookie is the cookie the admin session token travels in.
	SessionCookie = "admin_session"

	sessionVersion = "v1"

	// SessionTTL bounds token age; older tokens are rejected even with a
	// valid signature.
	SessionTTL = 7 * 24 * time.Hour
)

var ErrInvalidSession = errors.New("invalid session")

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, errors.New("SESSION_SECRET not set")
	}
	return []byte(secret), nil
}

func sign(secret []byte, version string, ts int64) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s:%d", version, ts)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// IssueToken mints an opaque session token of the form
// version.timestamp.signature, signed over "version:timestamp".
func IssueToken() (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}

	ts := time.Now().Unix()
	return fmt.Sprintf("%s.%d.%s", sessionVersion, ts, sign(secret, sessionVersion, ts)), nil
}

// ValidateToken checks shape, version, age and signature. The signature
// comparison is constant time.
func ValidateToken(token string) error {
	secret, err := getSessionSecret()
	if err != nil {
		return err
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] != sessionVersion || parts[1] == "" || parts[2] == "" {
		return ErrInvalidSession
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidSession
	}
	if time.Since(time.Unix(ts, 0)) > SessionTTL {
		return ErrInvalidSession
	}

	got, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return ErrInvalidSession
	}
	want, err := base64.RawURLEncoding.DecodeString(sign(secret, parts[0], ts))
	if err != nil {
		return ErrInvalidSession
	}

	if !hmac.Equal(got, want) {
		return ErrInvalidSession
	}
	return nil
}
