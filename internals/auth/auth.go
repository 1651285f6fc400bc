package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nilami/api-server/pkg/kvstore"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService guards the single admin account. Issued tokens are whitelisted
// in the KV store, so a token stays valid only until logout even though the
// JWT itself carries a longer expiry.
type AuthService struct {
	KV       kvstore.KVStore
	username string
	password string
	secret   []byte
	ttl      time.Duration
}

func New(kv kvstore.KVStore, username, password, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		KV:       kv,
		username: username,
		password: password,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

func sessionKey(username string) string {
	return "session_tokens_" + username
}

// checkPassword accepts either a bcrypt hash or a plain string in config.
func (a *AuthService) checkPassword(password string) bool {
	if strings.HasPrefix(a.password, "$2a$") || strings.HasPrefix(a.password, "$2b$") || strings.HasPrefix(a.password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1
}

func (a *AuthService) Login(loginDetails LoginRequestBody) (string, error) {
	if loginDetails.UserName != a.username || !a.checkPassword(loginDetails.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := a.GenerateToken(a.username)
	if err != nil {
		return "", err
	}

	// List of live tokens per user: multiple devices stay logged in.
	if err := a.KV.RPush(sessionKey(a.username), token); err != nil {
		return "", err
	}
	return token, nil
}

func (a *AuthService) GenerateToken(username string) (string, error) {
	// jti keeps concurrent logins distinct; exp alone only has second
	// resolution and two logins in the same second would mint equal tokens.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(a.ttl).Unix(),
	})

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (a *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		username, ok := claims["username"].(string)
		if !ok {
			return "", ErrInvalidToken
		}
		return username, nil
	}

	return "", ErrInvalidToken
}

func (a *AuthService) RevokeToken(username, tokenString string) error {
	key := sessionKey(username)
	tokens, err := a.KV.LRange(key, 0, -1)
	if err != nil {
		return err
	}

	for _, t := range tokens {
		if t == tokenString {
			if err := a.KV.LRem(key, 1, t); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

func (a *AuthService) CheckIfTokenIsWhiteListed(username, tokenString string) bool {
	tokens, err := a.KV.LRange(sessionKey(username), 0, -1)
	if err != nil {
		return false
	}

	for _, t := range tokens {
		if t == tokenString {
			return true
		}
	}
	return false
}

func (a *AuthService) Logout(username, tokenString string) error {
	return a.RevokeToken(username, tokenString)
}
