// idtoken.go — проверка id_token провайдера OAuth2 по его JWKS.
// Подпись RS256, обязательный exp, audience = client_id, issuer из конфигурации.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmailNotVerified — провайдер не подтвердил email учётной записи.
var ErrEmailNotVerified = errors.New("email не подтверждён провайдером")

// Identity — внешняя идентичность из id_token.
type Identity struct {
	// Subject — sub из id_token (ID учётной записи у провайдера).
	Subject string
	// Email — email учётной записи.
	Email string
	// Name — отображаемое имя.
	Name string
}

// idTokenClaims — raw claims id_token.
type idTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	// EmailVerified — nil, если провайдер не передал claim.
	EmailVerified *bool  `json:"email_verified,omitempty"`
	Name          string `json:"name"`
}

// IDTokenVerifier — проверка id_token через JWKS провайдера.
type IDTokenVerifier struct {
	jwks     keyfunc.Keyfunc
	audience string
	// issuers — допустимые значения iss.
	issuers []string
	leeway  time.Duration
	logger  *slog.Logger
}

// NewIDTokenVerifier создаёт verifier с JWKS, загружаемым по jwksURL
// и обновляемым в фоне с интервалом refreshInterval.
// clientID — ожидаемый audience. issuer — ожидаемый iss; для Google
// допускается также вариант без схемы (accounts.google.com).
func NewIDTokenVerifier(
	jwksURL string,
	clientID string,
	issuer string,
	refreshInterval time.Duration,
	logger *slog.Logger,
) (*IDTokenVerifier, error) {
	// NoErrorReturnFirstHTTPReq — стартуем даже если провайдер ещё недоступен.
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: 10 * time.Second},
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           refreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("Ошибка обновления JWKS",
				slog.String("error", err.Error()),
				slog.String("url", jwksURL),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{
		Storage: storage,
	})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}

	return NewIDTokenVerifierWithKeyfunc(k, clientID, issuer, logger), nil
}

// NewIDTokenVerifierWithKeyfunc создаёт verifier с предоставленной keyfunc.
// Используется в тестах для подстановки mock JWKS.
func NewIDTokenVerifierWithKeyfunc(kf keyfunc.Keyfunc, clientID, issuer string, logger *slog.Logger) *IDTokenVerifier {
	issuers := []string{issuer}
	if bare := strings.TrimPrefix(issuer, "https://"); bare != issuer {
		issuers = append(issuers, bare)
	}

	return &IDTokenVerifier{
		jwks:     kf,
		audience: clientID,
		issuers:  issuers,
		leeway:   30 * time.Second,
		logger:   logger.With(slog.String("component", "id_token_verifier")),
	}
}

// Verify проверяет подпись и claims id_token и возвращает идентичность.
func (v *IDTokenVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, v.jwks.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(v.audience),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("невалидный id_token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("невалидный id_token")
	}

	if !slices.Contains(v.issuers, claims.Issuer) {
		return nil, fmt.Errorf("недопустимый issuer id_token: %q", claims.Issuer)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, errors.New("отсутствует sub в id_token")
	}

	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return nil, fmt.Errorf("%w: %s", ErrEmailNotVerified, claims.Email)
	}

	v.logger.Debug("id_token проверен",
		slog.String("sub", subject),
		slog.String("email", claims.Email),
	)

	return &Identity{
		Subject: subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
