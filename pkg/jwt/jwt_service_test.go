package jwt

import (
	"StyleShot-Backend/domain"
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret-key"

func TestValidateBearerRoundTrip(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	token, err := service.GenerateToken("user_2abc", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := service.ValidateBearer("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateBearer: %v", err)
	}
	if userID != "user_2abc" {
		t.Fatalf("got user id %q, want %q", userID, "user_2abc")
	}
}

func TestValidateBearerMissingHeader(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	for _, header := range []string{"", "Bearer ", "not-a-bearer-header"} {
		if _, err := service.ValidateBearer(header); !errors.Is(err, domain.ErrTokenNotFound) {
			t.Fatalf("header %q: got %v, want ErrTokenNotFound", header, err)
		}
	}
}

func TestValidateTokenExpired(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	token, err := service.GenerateToken("user_2abc", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := service.ValidateBearer("Bearer " + token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("got %v, want ErrTokenExpired", err)
	}
}

func TestValidateTokenNotYetValid(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	claims := SessionClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user_2abc",
			NotBefore: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := service.ValidateBearer("Bearer " + token); !errors.Is(err, domain.ErrTokenNotYet) {
		t.Fatalf("got %v, want ErrTokenNotYet", err)
	}
}

func TestValidateTokenMissingSubject(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	claims := SessionClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := service.ValidateBearer("Bearer " + token); !errors.Is(err, domain.ErrMissingSubject) {
		t.Fatalf("got %v, want ErrMissingSubject", err)
	}
}

func TestValidateTokenWrongSignature(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)
	other := NewJWTServiceWithKey("a-different-key")

	token, err := other.GenerateToken("user_2abc", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := service.ValidateBearer("Bearer " + token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	for _, token := range []string{"not.a.jwt", "garbage", "a.b"} {
		if _, err := service.ValidateBearer("Bearer " + token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: got %v, want ErrTokenMalformed", token, err)
		}
	}
}

func TestValidateTokenRejectsUnsignedAlg(t *testing.T) {
	service := NewJWTServiceWithKey(testSecret)

	claims := SessionClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user_2abc",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := service.ValidateBearer("Bearer " + token); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}
