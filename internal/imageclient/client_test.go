package imageclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockAPI создаёт mock HTTP-сервер Image API.
func setupMockAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestClient создаёт клиент, направленный на mock-сервер.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(baseURL, "", 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// readUploadedFile извлекает имя и содержимое multipart-поля file.
func readUploadedFile(t *testing.T, r *http.Request) (string, string) {
	t.Helper()
	file, header, err := r.FormFile("file")
	if err != nil {
		t.Fatalf("multipart-поле file не найдено: %v", err)
	}
	defer file.Close()
	data, _ := io.ReadAll(file)
	return header.Filename, string(data)
}

// TestClient_Create проверяет Create (PUT /api/images).
func TestClient_Create(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/images" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		name, content := readUploadedFile(t, r)
		if name != "banner.png" {
			t.Errorf("ожидалось имя файла banner.png, получено %s", name)
		}
		if content != "PNGDATA" {
			t.Errorf("ожидалось содержимое PNGDATA, получено %s", content)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"filename": "01J0IMAGE.png"})
	})

	client := newTestClient(t, server.URL+"/")

	got, err := client.Create(context.Background(), "banner.png", strings.NewReader("PNGDATA"))
	if err != nil {
		t.Fatalf("Ошибка Create: %v", err)
	}
	if got != "01J0IMAGE.png" {
		t.Errorf("ожидалось имя 01J0IMAGE.png, получено %s", got)
	}
}

// TestClient_Create_Errors проверяет ошибки Create.
func TestClient_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "статус 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "disk full", http.StatusInternalServerError)
			},
		},
		{
			name: "невалидный JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "пустое имя",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"filename":""}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupMockAPI(t, tt.handler)
			client := newTestClient(t, server.URL)

			if _, err := client.Create(context.Background(), "a.png", strings.NewReader("x")); err == nil {
				t.Error("ожидалась ошибка Create")
			}
		})
	}
}

// TestClient_Create_ErrorContainsBody проверяет, что текст ответа попадает в ошибку.
func TestClient_Create_ErrorContainsBody(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInsufficientStorage)
	})
	client := newTestClient(t, server.URL)

	_, err := client.Create(context.Background(), "a.png", strings.NewReader("x"))
	if err == nil {
		t.Fatal("ожидалась ошибка Create")
	}
	if !strings.Contains(err.Error(), "507") || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("ошибка должна содержать статус и тело ответа: %v", err)
	}
}

// TestClient_Create_EmptyName проверяет ErrEmptyName.
func TestClient_Create_EmptyName(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	client := newTestClient(t, server.URL)

	_, err := client.Create(context.Background(), "a.png", strings.NewReader("x"))
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("ожидалась ErrEmptyName, получена %v", err)
	}
}

// TestClient_Replace проверяет Replace (PATCH /api/images/{name}).
func TestClient_Replace(t *testing.T) {
	var called bool
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodPatch {
			t.Errorf("ожидался метод PATCH, получен %s", r.Method)
		}
		if r.URL.Path != "/api/images/01J0IMAGE.png" {
			t.Errorf("ожидался путь /api/images/01J0IMAGE.png, получен %s", r.URL.Path)
		}
		_, content := readUploadedFile(t, r)
		if content != "NEWBYTES" {
			t.Errorf("ожидалось содержимое NEWBYTES, получено %s", content)
		}
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, server.URL)

	err := client.Replace(context.Background(), "01J0IMAGE.png", "new.png", strings.NewReader("NEWBYTES"))
	if err != nil {
		t.Fatalf("Ошибка Replace: %v", err)
	}
	if !called {
		t.Error("Image API не был вызван")
	}
}

// TestClient_Delete проверяет Delete (DELETE /api/images/{name}).
func TestClient_Delete(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("ожидался метод DELETE, получен %s", r.Method)
		}
		if r.URL.Path != "/api/images/01J0IMAGE.png" {
			t.Errorf("ожидался путь /api/images/01J0IMAGE.png, получен %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	client := newTestClient(t, server.URL)

	if err := client.Delete(context.Background(), "01J0IMAGE.png"); err != nil {
		t.Fatalf("Ошибка Delete: %v", err)
	}
}

// TestClient_Delete_NotFound проверяет, что 404 возвращается как ошибка.
func TestClient_Delete_NotFound(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, server.URL)

	if err := client.Delete(context.Background(), "missing.png"); err == nil {
		t.Error("ожидалась ошибка Delete для статуса 404")
	}
}

// TestClient_Unreachable проверяет ошибку при недоступном Image API.
func TestClient_Unreachable(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	if err := client.Delete(context.Background(), "a.png"); err == nil {
		t.Error("ожидалась ошибка для недоступного Image API")
	}
}

// TestNew_InvalidCACert проверяет ошибку при некорректном CA-сертификате.
func TestNew_InvalidCACert(t *testing.T) {
	if _, err := New("https://images.example.com", "/nonexistent/ca.pem", time.Second, testLogger()); err == nil {
		t.Error("ожидалась ошибка для несуществующего CA-сертификата")
	}

	path := t.TempDir() + "/ca.pem"
	if err := os.WriteFile(path, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New("https://images.example.com", path, time.Second, testLogger()); err == nil {
		t.Error("ожидалась ошибка для файла без PEM-сертификатов")
	}
}
