package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func sign(body []byte, key string) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1"}}`)
	key := "sk_test_secret"

	if !VerifySignature(body, sign(body, key), key) {
		t.Error("valid signature rejected")
	}
	if VerifySignature(body, sign(body, "wrong-key"), key) {
		t.Error("signature with wrong key accepted")
	}
	if VerifySignature(body, "", key) {
		t.Error("empty signature accepted")
	}
	if VerifySignature(body, sign(body, key), "") {
		t.Error("empty secret accepted")
	}

	tampered := append([]byte{}, body...)
	tampered[0] = '['
	if VerifySignature(tampered, sign(body, key), key) {
		t.Error("signature accepted for tampered body")
	}
}
