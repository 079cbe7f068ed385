package paystack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"zyra/internal/config"
)

const apiBase = "https://api.paystack.co"

type Client struct {
	Config *config.Config
	http   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config: cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// --- Request/Response Structures ---

type InitializeRequest struct {
	Email       string                 `json:"email"`
	Amount      string                 `json:"amount"` // smallest currency unit (kobo/pesewas)
	Currency    string                 `json:"currency,omitempty"`
	Reference   string                 `json:"reference,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Channels    []string               `json:"channels,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type Customer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type TransactionData struct {
	ID        int64                  `json:"id"`
	Status    string                 `json:"status"` // success, failed, abandoned
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"` // smallest currency unit
	Currency  string                 `json:"currency"`
	PaidAt    string                 `json:"paid_at"`
	Channel   string                 `json:"channel"`
	Customer  Customer               `json:"customer"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// --- Helper Functions ---

func (c *Client) sendRequest(method, path string, body interface{}) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, apiBase+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.PaystackSecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("paystack: invalid response: %s", string(respBody))
	}

	if resp.StatusCode >= 400 || !envelope.Status {
		return nil, fmt.Errorf("paystack: %s - %s", resp.Status, envelope.Message)
	}

	return envelope.Data, nil
}

// --- Transaction Methods ---

func (c *Client) InitializeTransaction(req InitializeRequest) (*InitializeData, error) {
	data, err := c.sendRequest("POST", "/transaction/initialize", req)
	if err != nil {
		return nil, err
	}

	var init InitializeData
	if err := json.Unmarshal(data, &init); err != nil {
		return nil, err
	}
	return &init, nil
}

func (c *Client) VerifyTransaction(reference string) (*TransactionData, error) {
	data, err := c.sendRequest("GET", "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	var tx TransactionData
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
