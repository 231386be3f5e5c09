package attendancetoken

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	attendancetokenerrors "go-volunteer/internal/attendancetoken/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Subject tags every attendance token so session JWTs signed with a shared
	// secret can never be redeemed as one.
	Subject    = "attendance"
	DefaultTTL = 30 * time.Second
)

type Claims struct {
	EventID  string `json:"event_id"`
	IssuedBy string `json:"issued_by"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"jti"`
	EventID   string    `json:"eventId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Codec signs and verifies short-lived attendance tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for eventID. A non-positive ttl uses the codec default.
func (c *Codec) Issue(eventID, issuerUserID string, ttl time.Duration) (IssuedToken, error) {
	if len(c.secret) == 0 {
		return IssuedToken{}, attendancetokenerrors.ErrMissingSecret
	}
	if eventID == "" {
		return IssuedToken{}, attendancetokenerrors.ErrInvalidEventID
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	now := c.now().UTC()
	jti, err := newTokenID(eventID, now)
	if err != nil {
		return IssuedToken{}, err
	}

	expiresAt := now.Add(ttl)
	claims := Claims{
		EventID:  eventID,
		IssuedBy: issuerUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return IssuedToken{}, err
	}

	return IssuedToken{
		Token:     signed,
		TokenID:   jti,
		EventID:   eventID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature, expiry, subject tag and event claim.
func (c *Codec) Verify(token string) (*Claims, error) {
	if len(c.secret) == 0 {
		return nil, attendancetokenerrors.ErrMissingSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(Subject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, attendancetokenerrors.ErrTokenExpired.WithCause(err)
		}
		return nil, attendancetokenerrors.ErrTokenExpiredOrInvalid.WithCause(err)
	}
	if !parsed.Valid || claims.EventID == "" {
		return nil, attendancetokenerrors.ErrTokenExpiredOrInvalid
	}
	return claims, nil
}

func newTokenID(eventID string, now time.Time) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s", eventID, now.UnixMilli(), hex.EncodeToString(buf)), nil
}
