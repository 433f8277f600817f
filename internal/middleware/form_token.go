package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// FormTokenField is the hidden form field carrying the token
const FormTokenField = "csrf_token"

var errInvalidFormToken = errors.New("invalid form token")

// FormTokenSigner issues and verifies signed tokens that guard form submissions.
// A token is bound to the path the form posts to and expires after ttl.
type FormTokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewFormTokenSigner creates a FormTokenSigner using secret as the HMAC key
func NewFormTokenSigner(secret string, ttl time.Duration) *FormTokenSigner {
	return &FormTokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a token valid for submissions to action
func (s *FormTokenSigner) Issue(action string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   action,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token signature, expiry and bound action
func (s *FormTokenSigner) Verify(tokenString, action string) error {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidFormToken
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid || !claims.VerifyExpiresAt(s.now(), true) {
		return errInvalidFormToken
	}
	if claims.Subject != action {
		return errInvalidFormToken
	}
	return nil
}
