package whatsapp

import (
	"fmt"
	"log"

	"zyra/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Notifier composes and sends invoice notifications. Sends are fire and
// forget: a delivery failure is logged, never surfaced to the payment path.
type Notifier struct {
	Client *Client
}

func NewNotifier(client *Client) *Notifier {
	return &Notifier{Client: client}
}

func (n *Notifier) NotifyPaymentReceived(inv *models.MobileMoneyInvoice, brandName string) {
	if !n.Client.Enabled() || inv.PhoneNumber == "" {
		return
	}

	to, err := FormatPhone(inv.PhoneNumber)
	if err != nil {
		log.Printf("Skipping WhatsApp notification for %s: %v", inv.Reference, err)
		return
	}

	body := fmt.Sprintf(
		"Payment received by %s.\n%s %s for %q.\nReference: %s\nThank you!",
		brandName,
		formatAmount(inv.OriginalAmount),
		inv.OriginalCurrency,
		inv.Title,
		inv.Reference,
	)

	go func() {
		if _, err := n.Client.SendMessage(to, body); err != nil {
			log.Printf("Error sending WhatsApp notification for %s: %v", inv.Reference, err)
		}
	}()
}

func (n *Notifier) SendPaymentReminder(phone, brandName, title, amount, symbol, linkURL string) error {
	to, err := FormatPhone(phone)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Reminder from %s: invoice %q for %s %s is still unpaid.\nPay here: %s",
		brandName, title, formatAmount(amount), symbol, linkURL,
	)

	_, err = n.Client.SendMessage(to, body)
	return err
}

func formatAmount(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	f, _ := d.Float64()
	return humanize.CommafWithDigits(f, 2)
}
