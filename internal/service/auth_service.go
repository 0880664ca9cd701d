package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkhoa1412/code-challenge-sub003/internal/apperror"
	"github.com/mkhoa1412/code-challenge-sub003/internal/config"
	"github.com/mkhoa1412/code-challenge-sub003/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// AuthService exchanges client credentials for access tokens / Échange les identifiants client contre des tokens d'accès
type AuthService struct {
	conf *config.Config
}

// NewAuthService creates authentication service instance / Crée une instance de service d'authentification
func NewAuthService(conf *config.Config) *AuthService {
	return &AuthService{conf: conf}
}

// IssueToken verifies client credentials and returns a signed token
// Vérifie les identifiants client et retourne un token signé
func (s *AuthService) IssueToken(ctx context.Context, clientID, clientSecret string) (*auth.Token, error) {
	client := s.findClient(clientID)
	if client == nil {
		// Burn a bcrypt comparison so unknown ids take as long as bad secrets
		// Brûle une comparaison bcrypt pour que les ids inconnus prennent autant de temps que les mauvais secrets
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$12$000000000000000000000uGyxVuj3o3tJ0yUoq2C1Gqe6nS0yG0u2"), []byte(clientSecret))
		return nil, apperror.Authentication("invalid client credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(clientSecret)); err != nil {
		slog.Warn("token request with bad secret", "client_id", clientID)
		return nil, apperror.Authentication("invalid client credentials")
	}

	token, err := auth.GenerateToken(client.ID, client.Role, s.conf.Auth.JWTSecret, s.tokenDuration())
	if err != nil {
		slog.Error("failed to sign token", "client_id", clientID, "err", err)
		return nil, apperror.Database("failed to issue token", err)
	}

	return token, nil
}

// ValidateToken checks a bearer token and returns its claims / Vérifie un token bearer et retourne ses claims
func (s *AuthService) ValidateToken(tokenStr string) (*auth.CustomClaims, error) {
	claims, err := auth.ValidateJWT(tokenStr, s.conf.Auth.JWTSecret)
	if err != nil {
		return nil, apperror.Authentication("invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) findClient(clientID string) *config.ClientCredential {
	for i := range s.conf.Auth.Clients {
		if s.conf.Auth.Clients[i].ID == clientID {
			return &s.conf.Auth.Clients[i]
		}
	}
	return nil
}

func (s *AuthService) tokenDuration() time.Duration {
	if s.conf.Auth.TokenDuration > 0 {
		return s.conf.Auth.TokenDuration
	}
	return 15 * time.Minute
}
