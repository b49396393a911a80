package jwt

import (
	"StyleShot-Backend/domain"
	"StyleShot-Backend/internal/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// JWTService validates bearer credentials issued by the identity
	// provider and yields the stable user id (subject claim). Tokens are
	// always verified against the shared signing key; an unverified payload
	// is never trusted.
	JWTService interface {
		ValidateBearer(authHeader string) (string, error)
		ValidateToken(token string) (*SessionClaims, error)
		GenerateToken(userID string, duration time.Duration) (string, error)
	}

	SessionClaims struct {
		Email string `json:"email,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	secretKey := utils.GetConfig("JWT_SECRET")
	return secretKey
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "STYLESHOT",
	}
}

// NewJWTServiceWithKey is used by tests and tools that supply the key
// directly instead of reading config.yaml.
func NewJWTServiceWithKey(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "STYLESHOT",
	}
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

// ValidateBearer parses an Authorization header value and returns the
// subject claim of the verified token.
func (j *jwtService) ValidateBearer(authHeader string) (string, error) {
	if authHeader == "" {
		return "", domain.ErrTokenNotFound
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", domain.ErrTokenNotFound
	}

	claims, err := j.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (j *jwtService) ValidateToken(token string) (*SessionClaims, error) {
	t_Token, err := jwt.ParseWithClaims(token, &SessionClaims{}, j.parseToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, domain.ErrTokenNotYet
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*SessionClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, domain.ErrMissingSubject
	}
	return claims, nil
}

func (j *jwtService) GenerateToken(userID string, duration time.Duration) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}
