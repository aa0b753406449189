// oidc.go — OAuth2/OIDC-клиент для входа в ACP через Google.
// Реализует Authorization Code Flow с PKCE (RFC 7636) и client_secret.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Запрашиваемые scopes: id_token с email и профилем.
const oauthScopes = "openid email profile"

// OIDCClient — клиент для взаимодействия с endpoints провайдера.
// Confidential client (client_secret), дополнительно использует PKCE.
type OIDCClient struct {
	clientID     string
	clientSecret string
	// redirectURI — callback, зарегистрированный у провайдера.
	redirectURI string
	// authorizeURL — endpoint авторизации.
	authorizeURL string
	// tokenURL — endpoint обмена code → tokens.
	tokenURL string
	// httpClient — HTTP-клиент для token endpoint.
	httpClient *http.Client
}

// OIDCConfig — конфигурация OIDC-клиента.
type OIDCConfig struct {
	// ClientID — OAuth2 Client ID.
	ClientID string
	// ClientSecret — OAuth2 Client Secret.
	ClientSecret string
	// RedirectURI — абсолютный callback URI (ACP_OAUTH_CALLBACK_URI).
	RedirectURI string
	// AuthorizeURL — authorization endpoint провайдера.
	AuthorizeURL string
	// TokenURL — token endpoint провайдера.
	TokenURL string
	// HTTPClient — HTTP-клиент (nil — создаётся новый с Timeout).
	HTTPClient *http.Client
	// Timeout — таймаут HTTP-запросов. Используется при HTTPClient == nil.
	Timeout time.Duration
}

// NewOIDCClient создаёт новый OIDC-клиент на основе конфигурации.
func NewOIDCClient(cfg OIDCConfig) *OIDCClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &OIDCClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		authorizeURL: cfg.AuthorizeURL,
		tokenURL:     cfg.TokenURL,
		httpClient:   httpClient,
	}
}

// PKCEParams — параметры PKCE для одного auth flow.
type PKCEParams struct {
	// CodeVerifier — случайная строка для PKCE (хранится в state cookie).
	CodeVerifier string
	// CodeChallenge — SHA-256 хеш code_verifier (отправляется в authorize URL).
	CodeChallenge string
}

// GeneratePKCE генерирует пару code_verifier / code_challenge (S256).
// code_verifier: base64url(32 random bytes), 43 символа.
// code_challenge: base64url(SHA-256(code_verifier)).
func GeneratePKCE() (*PKCEParams, error) {
	verifierBytes := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, verifierBytes); err != nil {
		return nil, fmt.Errorf("ошибка генерации code_verifier: %w", err)
	}
	codeVerifier := base64.RawURLEncoding.EncodeToString(verifierBytes)

	hash := sha256.Sum256([]byte(codeVerifier))
	codeChallenge := base64.RawURLEncoding.EncodeToString(hash[:])

	return &PKCEParams{
		CodeVerifier:  codeVerifier,
		CodeChallenge: codeChallenge,
	}, nil
}

// AuthorizeURL формирует URL для redirect пользователя на страницу входа провайдера.
// state — случайный state parameter для CSRF-защиты.
// codeChallenge — PKCE code_challenge (S256).
func (c *OIDCClient) AuthorizeURL(state, codeChallenge string) string {
	params := url.Values{
		"client_id":             {c.clientID},
		"response_type":         {"code"},
		"redirect_uri":          {c.redirectURI},
		"state":                 {state},
		"scope":                 {oauthScopes},
		"code_challenge":        {codeChallenge},
		"code_challenge_method": {"S256"},
		"prompt":                {"select_account"},
	}
	return c.authorizeURL + "?" + params.Encode()
}

// TokenResponse — ответ token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"` //nolint:gosec // G117: структура токена OAuth2
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token"`
}

// TokenError — ошибка token endpoint.
type TokenError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// ExchangeCode обменивает authorization code на tokens через token endpoint.
// codeVerifier — PKCE code_verifier (из state cookie).
func (c *OIDCClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
		"code_verifier": {codeVerifier},
	}

	return c.doTokenRequest(ctx, data)
}

// GenerateState генерирует случайный state parameter для CSRF-защиты.
func GenerateState() (string, error) {
	stateBytes := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, stateBytes); err != nil {
		return "", fmt.Errorf("ошибка генерации state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(stateBytes), nil
}

// doTokenRequest выполняет POST-запрос к token endpoint.
func (c *OIDCClient) doTokenRequest(ctx context.Context, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации OAuth
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var tokenErr TokenError
		if jsonErr := json.Unmarshal(body, &tokenErr); jsonErr == nil && tokenErr.Error != "" {
			return nil, fmt.Errorf("token endpoint error: %s: %s", tokenErr.Error, tokenErr.Description)
		}
		return nil, fmt.Errorf("token endpoint вернул статус %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("ошибка парсинга token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return nil, fmt.Errorf("token endpoint не вернул id_token")
	}

	return &tokenResp, nil
}
