package paystack

// WebhookPayload is the body Paystack POSTs to the webhook endpoint.
type WebhookPayload struct {
	Event string          `json:"event"` // e.g. charge.success
	Data  TransactionData `json:"data"`
}
