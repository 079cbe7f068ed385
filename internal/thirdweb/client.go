package thirdweb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zyra/internal/config"
)

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

// --- Payment Link Structures ---

type Token struct {
	ChainID  int    `json:"chainId"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

type Intent struct {
	Receiver         string `json:"receiver"`
	DestinationToken *Token `json:"destinationToken,omitempty"`
	TokenAddress     string `json:"tokenAddress,omitempty"`
	ChainID          int    `json:"chainId,omitempty"`
	Amount           string `json:"amount"` // smallest token unit
}

type PaymentLink struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Receiver         string `json:"receiver"`
	Amount           string `json:"amount"`
	DestinationToken *Token `json:"destinationToken"`
	CreatedAt        string `json:"createdAt"`
}

type CreateLinkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Intent      Intent `json:"intent"`
}

type Payment struct {
	ID            string `json:"id"`
	PaymentLinkID string `json:"paymentLinkId"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Sender        string `json:"sender"`
	Receiver      string `json:"receiver"`
	TransactionID string `json:"transactionId"`
	CreatedAt     string `json:"createdAt"`
}

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// --- Helper Functions ---

func (c *Client) sendRequest(method, path string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.Config.ThirdwebAPIBase+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-secret-key", c.Config.ThirdwebSecretKey)
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

	if resp.StatusCode >= 400 {
		return respBody, fmt.Errorf("thirdweb: %s - %s", resp.Status, string(respBody))
	}

	return respBody, nil
}

func unmarshalData(raw []byte, out interface{}) error {
	// Responses wrap the payload in a data field; tolerate bare payloads too.
	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(raw, out)
}

// --- Payment Link Methods ---

func (c *Client) CreatePaymentLink(req CreateLinkRequest) (*PaymentLink, error) {
	raw, err := c.sendRequest("POST", "/v1/payments", req)
	if err != nil {
		return nil, err
	}

	var link PaymentLink
	if err := unmarshalData(raw, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) GetPaymentLink(id string) (*PaymentLink, error) {
	raw, err := c.sendRequest("GET", "/v1/payments/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var link PaymentLink
	if err := unmarshalData(raw, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ListPaymentLinks returns all links, filtered by receiver when one is
// given. The upstream API ignores the receiver parameter, so filtering
// happens here.
func (c *Client) ListPaymentLinks(receiver string) ([]PaymentLink, error) {
	raw, err := c.sendRequest("GET", "/v1/payments", nil)
	if err != nil {
		return nil, err
	}

	var links []PaymentLink
	if err := unmarshalData(raw, &links); err != nil {
		return nil, err
	}

	if receiver == "" {
		return links, nil
	}

	filtered := []PaymentLink{}
	for _, link := range links {
		if strings.EqualFold(link.Receiver, receiver) {
			filtered = append(filtered, link)
		}
	}
	return filtered, nil
}

func (c *Client) ListPayments() ([]Payment, error) {
	raw, err := c.sendRequest("GET", "/v1/payments/history", nil)
	if err != nil {
		return nil, err
	}

	var payments []Payment
	if err := unmarshalData(raw, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
