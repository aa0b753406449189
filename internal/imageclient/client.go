// Пакет imageclient — HTTP-клиент внешнего Image API, в котором
// хранятся изображения баннеров.
// Поддерживает TLS с кастомным CA (ACP_IMAGE_API_CA_CERT_PATH).
// Операции: Create (PUT /api/images), Replace (PATCH /api/images/{name}),
// Delete (DELETE /api/images/{name}).
package imageclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrEmptyName — Image API не вернул имя загруженного изображения.
var ErrEmptyName = errors.New("Image API вернул пустое имя изображения")

// Метрики обращений к Image API
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acp_image_api_requests_total",
			Help: "Количество запросов к Image API",
		},
		[]string{"operation", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "acp_image_api_request_duration_seconds",
			Help:    "Длительность запросов к Image API в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Images — операции над изображениями во внешнем хранилище.
// Реализуется *Client; в тестах сервисов подменяется mock-реализацией.
type Images interface {
	Create(ctx context.Context, filename string, r io.Reader) (string, error)
	Replace(ctx context.Context, name, filename string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

// uploadResponse — ответ Image API на загрузку изображения.
type uploadResponse struct {
	Filename string `json:"filename"`
}

// Client — HTTP-клиент Image API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент Image API.
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
func New(baseURL, caCertPath string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата Image API: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат Image API добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		baseURL:    normalizeURL(baseURL),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "image_client")),
	}, nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("файл %s не содержит PEM-сертификатов", caCertPath)
	}

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// Create загружает новое изображение и возвращает присвоенное ему имя.
// PUT /api/images, multipart-поле file.
func (c *Client) Create(ctx context.Context, filename string, r io.Reader) (string, error) {
	resp, err := c.sendFile(ctx, "create", http.MethodPut, c.baseURL+"/api/images", filename, r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("декодирование ответа Create: %w", err)
	}
	if out.Filename == "" {
		return "", ErrEmptyName
	}

	c.logger.Debug("Изображение загружено",
		slog.String("filename", filename),
		slog.String("image_name", out.Filename),
	)
	return out.Filename, nil
}

// Replace заменяет содержимое изображения name, имя сохраняется.
// PATCH /api/images/{name}, multipart-поле file.
func (c *Client) Replace(ctx context.Context, name, filename string, r io.Reader) error {
	resp, err := c.sendFile(ctx, "replace", http.MethodPatch, c.ImageURL(name), filename, r)
	if err != nil {
		return err
	}
	resp.Body.Close()

	c.logger.Debug("Изображение заменено", slog.String("image_name", name))
	return nil
}

// Delete удаляет изображение name.
// DELETE /api/images/{name}.
func (c *Client) Delete(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.ImageURL(name), nil)
	if err != nil {
		return fmt.Errorf("создание запроса Delete: %w", err)
	}

	resp, err := c.do(req, "delete")
	if err != nil {
		return err
	}
	resp.Body.Close()

	c.logger.Debug("Изображение удалено", slog.String("image_name", name))
	return nil
}

// sendFile отправляет файл multipart-формой с полем file.
// Тело формируется в памяти: размер баннеров невелик.
func (c *Client) sendFile(ctx context.Context, op, method, reqURL, filename string, r io.Reader) (*http.Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("формирование multipart %s: %w", op, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("чтение загружаемого файла %s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("формирование multipart %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, &body)
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, op)
}

// do выполняет запрос, учитывает метрики и превращает не-2xx ответ в ошибку.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("запрос %s к Image API: %w", op, err)
	}
	requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("Image API %s вернул статус %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

// ImageURL возвращает URL изображения с экранированным именем.
// Используется для операций над изображением и для превью в UI.
func (c *Client) ImageURL(name string) string {
	return c.baseURL + "/api/images/" + url.PathEscape(name)
}

// normalizeURL убирает trailing slash из URL.
func normalizeURL(rawURL string) string {
	return strings.TrimRight(rawURL, "/")
}
