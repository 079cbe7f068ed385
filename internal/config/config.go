package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string

	// Payments
	PaystackSecretKey string
	PaystackPublicKey string
	ThirdwebSecretKey string
	ThirdwebAPIBase   string

	// WhatsApp Cloud API
	WhatsAppEnabled       bool
	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppVerifyToken   string
	WhatsAppWebhookSecret string

	// Storage
	StoreBackend string // "gorm" or "file"
	DataDir      string
	PublicDir    string

	// Database
	DBDriver   string // "sqlite" or "postgres"
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	// Admin auth
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackPublicKey: getEnv("PAYSTACK_PUBLIC_KEY", ""),
		ThirdwebSecretKey: getEnv("THIRDWEB_SECRET_KEY", ""),
		ThirdwebAPIBase:   getEnv("THIRDWEB_API_BASE", "https://api.thirdweb.com"),

		WhatsAppEnabled:       getEnv("WHATSAPP_ENABLED", "false") == "true",
		WhatsAppToken:         getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppVerifyToken:   getEnv("WHATSAPP_VERIFY_WEBHOOK", ""),
		WhatsAppWebhookSecret: getEnv("WHATSAPP_WEBHOOK_SECRET", ""),

		StoreBackend: getEnv("STORE_BACKEND", "gorm"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		PublicDir:    getEnv("PUBLIC_DIR", "./public"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "./zyra.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "zyra"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "zyra"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
