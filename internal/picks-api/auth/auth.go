// Package auth autentica tokens de API (pk_<id>.<segredo>) e aplica papéis por rota.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleUser    = "user"

	tokenPrefix = "pk_"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidRole  = errors.New("invalid role")
)

// Principal é o usuário autenticado da requisição
type Principal struct {
	UserID  string
	TokenID string
	Roles   []string
}

func (p Principal) HasAny(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(p.Roles, r) {
			return true
		}
	}
	return false
}

// TokenRecord é o que o banco guarda de um token (nunca o segredo)
type TokenRecord struct {
	UserID string
	Hash   string
	Roles  []string
}

type Store interface {
	LookupToken(ctx context.Context, tokenID string) (TokenRecord, error)
	CreateToken(ctx context.Context, userID, label, hash string) (string, error)
	GrantRole(ctx context.Context, userID, role string) error
}

type Authenticator struct {
	store Store
	cost  int
}

func NewAuthenticator(store Store) *Authenticator {
	return &Authenticator{store: store, cost: bcrypt.DefaultCost}
}

// Authenticate valida o token e carrega os papéis do dono
func (a *Authenticator) Authenticate(ctx context.Context, token string) (Principal, error) {
	id, secret, ok := parseToken(token)
	if !ok {
		return Principal{}, ErrUnauthorized
	}
	rec, err := a.store.LookupToken(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, fmt.Errorf("lookup token: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(secret)) != nil {
		return Principal{}, ErrUnauthorized
	}
	return Principal{UserID: rec.UserID, TokenID: id, Roles: rec.Roles}, nil
}

// Mint cria um token novo para o usuário; o texto puro só existe no retorno
func (a *Authenticator) Mint(ctx context.Context, userID, label string, roles ...string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("user id must be a uuid: %w", err)
	}
	for _, r := range roles {
		if !validRole(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidRole, r)
		}
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), a.cost)
	if err != nil {
		return "", err
	}
	id, err := a.store.CreateToken(ctx, userID, label, string(hash))
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	for _, r := range roles {
		if err := a.store.GrantRole(ctx, userID, r); err != nil {
			return "", fmt.Errorf("grant role %s: %w", r, err)
		}
	}
	return tokenPrefix + id + "." + secret, nil
}

func validRole(r string) bool {
	return r == RoleAdmin || r == RoleAnalyst || r == RoleUser
}

func parseToken(token string) (id, secret string, ok bool) {
	rest, found := strings.CutPrefix(token, tokenPrefix)
	if !found {
		return "", "", false
	}
	id, secret, found = strings.Cut(rest, ".")
	if !found || secret == "" {
		return "", "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "", false
	}
	return id, secret, true
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
