package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"zyra/internal/config"

	"github.com/gin-gonic/gin"
)

func whatsappRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWhatsAppHandler(cfg)

	r := gin.New()
	r.GET("/api/whatsapp/webhook", handler.VerifyWebhook)
	r.POST("/api/whatsapp/webhook", handler.HandleStatus)
	return r
}

func TestVerifyWebhookHandshake(t *testing.T) {
	r := whatsappRouter(&config.Config{WhatsAppVerifyToken: "verify-me"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "12345" {
		t.Fatalf("handshake failed: %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("bad verify token: status = %d, want 403", w.Code)
	}
}

func signStatusBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestHandleStatusVerifiesSignature(t *testing.T) {
	r := whatsappRouter(&config.Config{WhatsAppWebhookSecret: "app-secret"})
	body := []byte(`{"object":"whatsapp_business_account","entry":[]}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/whatsapp/webhook", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signStatusBody(body, "app-secret"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid signature: status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/whatsapp/webhook", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signStatusBody(body, "other-secret"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/whatsapp/webhook", bytes.NewReader(body))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing signature: status = %d, want 401", w.Code)
	}
}

func TestHandleStatusWithoutSecretSkipsVerification(t *testing.T) {
	r := whatsappRouter(&config.Config{})
	body := []byte(`{"object":"whatsapp_business_account","entry":[]}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/whatsapp/webhook", bytes.NewReader(body))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
