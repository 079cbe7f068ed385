package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Brand is a tenant's configuration, keyed by slug.
type Brand struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Slug      string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name      string            `gorm:"type:varchar(255);not null" json:"name"`
	Colors    datatypes.JSONMap `json:"colors"` // theme key -> CSS color value
	Assets    datatypes.JSONMap `json:"assets"` // logo.light, logo.dark, favicon
	Meta      datatypes.JSONMap `json:"meta"`   // title, description

	PaymentReceiver   string `gorm:"type:varchar(255)" json:"payment_receiver"` // wallet address for crypto links
	PaystackPublicKey string `gorm:"type:varchar(255)" json:"paystack_public_key"`

	WhatsAppEnabled       bool   `gorm:"default:false" json:"whatsapp_enabled"`
	WhatsAppAccessToken   string `gorm:"type:text" json:"-"`
	WhatsAppPhoneNumberID string `gorm:"type:varchar(100)" json:"whatsapp_phone_number_id"`

	InventoryEnabled bool            `gorm:"default:false" json:"inventory_enabled"`
	Inventory        []InventoryItem `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE;" json:"inventory"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}

// InventoryItem is a sellable item nested under a brand.
type InventoryItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BrandID     uint            `gorm:"index;not null" json:"brand_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(20,8)" json:"price"` // major currency units
	Quantity    int             `gorm:"default:0" json:"quantity"`
	SKU         string          `gorm:"type:varchar(100)" json:"sku"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// MobileMoneyInvoice is written once on a confirmed Paystack charge and
// immutable thereafter. Reference is the idempotency key: a second webhook
// delivery for the same reference must not create a second row.
type MobileMoneyInvoice struct {
	ID          string `gorm:"primaryKey;type:varchar(100)" json:"id"`
	CompanySlug string `gorm:"index;type:varchar(100)" json:"company_slug"`
	Title       string `gorm:"type:varchar(255)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Amount      string `gorm:"type:varchar(50)" json:"amount"` // smallest currency unit, as returned by Paystack
	Currency    string `gorm:"type:varchar(10)" json:"currency"`
	Reference   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"reference"`

	CustomerEmail    string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerName     string `gorm:"type:varchar(255)" json:"customer_name"`
	PhoneNumber      string `gorm:"type:varchar(50)" json:"phone_number"`
	OriginalAmount   string `gorm:"type:varchar(50)" json:"original_amount"` // major units
	OriginalCurrency string `gorm:"type:varchar(10)" json:"original_currency"`

	Metadata datatypes.JSONMap `json:"metadata"` // raw Paystack fields

	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (MobileMoneyInvoice) TableName() string {
	return "mobile_money_invoices"
}

func (i MobileMoneyInvoice) PaymentMethod() string {
	return "mobile_money"
}

// CryptoInvoice mirrors a Thirdweb payment link. Status moves from unpaid to
// paid during reconciliation against the upstream payments feed.
type CryptoInvoice struct {
	ID            string `gorm:"primaryKey;type:varchar(100)" json:"id"`
	PaymentLinkID string `gorm:"type:varchar(100);uniqueIndex;not null" json:"payment_link_id"`
	CompanySlug   string `gorm:"index;type:varchar(100)" json:"company_slug"`
	Title         string `gorm:"type:varchar(255)" json:"title"`
	Amount        string `gorm:"type:varchar(100)" json:"amount"` // smallest token unit
	Receiver      string `gorm:"type:varchar(100)" json:"receiver"`

	TokenChainID  int    `json:"token_chain_id"`
	TokenAddress  string `gorm:"type:varchar(100)" json:"token_address"`
	TokenDecimals int    `json:"token_decimals"`
	TokenSymbol   string `gorm:"type:varchar(20)" json:"token_symbol"`
	TokenName     string `gorm:"type:varchar(100)" json:"token_name"`

	Status   string `gorm:"type:varchar(20);default:'unpaid'" json:"status"` // paid | unpaid
	PriceUSD string `gorm:"type:varchar(50)" json:"price_usd"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CryptoInvoice) TableName() string {
	return "crypto_invoices"
}

// ContactInterest is a lead captured by the public interest form.
type ContactInterest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Status    string    `gorm:"type:varchar(20);default:'new'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ContactInterest) TableName() string {
	return "contact_interests"
}

// WebhookEvent stores provider webhook deliveries with deduplication
// metadata so processing stays idempotent and failures stay visible.
type WebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"type:varchar(20);not null;index:ux_webhook_events_provider_event,unique,priority:1" json:"provider"`
	ProviderEventID string     `gorm:"type:varchar(191);not null;index:ux_webhook_events_provider_event,unique,priority:2" json:"provider_event_id"`
	EventType       string     `gorm:"type:varchar(100);index" json:"event_type"`
	Payload         string     `gorm:"type:text" json:"payload"`
	SignatureValid  bool       `gorm:"default:false" json:"signature_valid"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessingError string     `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// AdminUser can log into the admin API.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
