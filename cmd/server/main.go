package main

import (
	"log"

	"zyra/internal/api"
	"zyra/internal/config"
	"zyra/internal/database"
	"zyra/internal/paystack"
	"zyra/internal/store"
	"zyra/internal/thirdweb"
	"zyra/internal/webhook"
	"zyra/internal/whatsapp"
	"zyra/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	database.InitGorm(cfg)
	store.EnsureAdmin(database.GormDB, cfg.AdminEmail, cfg.AdminPassword)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	hub := ws.NewHub()
	go hub.Run()

	invoiceStore := store.NewInvoiceStore(cfg, database.GormDB)
	cryptoStore := store.NewCryptoInvoiceStore(database.GormDB)
	brandStore := store.NewBrandStore(database.GormDB, cfg.PublicDir)

	paystackClient := paystack.NewClient(cfg)
	thirdwebClient := thirdweb.NewClient(cfg)
	whatsappClient := whatsapp.NewClient(cfg)
	notifier := whatsapp.NewNotifier(whatsappClient)

	processor := webhook.NewProcessor(invoiceStore, brandStore, notifier, hub, database.GormDB)
	paystackWebhook := webhook.NewPaystackHandler(cfg, processor, database.GormDB)
	whatsappWebhook := webhook.NewWhatsAppHandler(cfg)

	brandHandler := api.NewBrandHandler(brandStore)
	invoiceHandler := api.NewInvoiceHandler(invoiceStore, cryptoStore)
	paymentHandler := api.NewPaymentHandler(thirdwebClient, cryptoStore, brandStore, hub)
	paystackHandler := api.NewPaystackHandler(paystackClient, processor)
	whatsappHandler := api.NewWhatsAppHandler(whatsappClient)
	contactHandler := api.NewContactHandler(database.GormDB, hub)
	adminHandler := api.NewAdminHandler(cfg, database.GormDB, brandStore, invoiceStore, cryptoStore, notifier, thirdwebClient)

	// Brand assets are also served statically for the browser.
	r.Static("/brands", cfg.PublicDir+"/brands")

	// Dashboard event stream
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	apiGroup := r.Group("/api")
	{
		// Brand / tenant config
		apiGroup.GET("/brands/:slug", brandHandler.GetBrand)
		apiGroup.PUT("/brands/:slug", brandHandler.UpdateBrand)
		apiGroup.GET("/brands/:slug/theme", brandHandler.GetTheme)

		// Invoices
		apiGroup.GET("/mobile-money-invoices", invoiceHandler.ListAllInvoices)
		apiGroup.GET("/companies/:slug/mobile-money-invoices", invoiceHandler.ListCompanyInvoices)
		apiGroup.GET("/companies/:slug/invoices", invoiceHandler.ListUnified)
		apiGroup.GET("/companies/:slug/invoices/export", invoiceHandler.ExportInvoices)
		apiGroup.GET("/invoice/:id", invoiceHandler.GetInvoice)

		// Crypto payment links
		apiGroup.POST("/create-payment-link", paymentHandler.CreatePaymentLink)
		apiGroup.GET("/payment-link/:id", paymentHandler.GetPaymentLink)
		apiGroup.GET("/payment-links", paymentHandler.ListPaymentLinks)
		apiGroup.GET("/payments", paymentHandler.ListPayments)

		// Mobile money lifecycle
		paystackGroup := apiGroup.Group("/paystack")
		{
			paystackGroup.POST("/initialize", paystackHandler.Initialize)
			paystackGroup.POST("/verify", paystackHandler.Verify)
			paystackGroup.POST("/webhook", paystackWebhook.HandleWebhook)
		}

		// WhatsApp notifications
		whatsappGroup := apiGroup.Group("/whatsapp")
		{
			whatsappGroup.POST("/send", whatsappHandler.SendMessage)
			whatsappGroup.GET("/send", whatsappHandler.GetStatus)
			whatsappGroup.GET("/webhook", whatsappWebhook.VerifyWebhook)
			whatsappGroup.POST("/webhook", whatsappWebhook.HandleStatus)
		}

		// Lead capture
		apiGroup.POST("/contact-interest", contactHandler.CreateInterest)

		// Admin
		apiGroup.POST("/admin/login", adminHandler.Login)
		adminGroup := apiGroup.Group("/admin", api.AuthMiddleware(cfg.JWTSecret))
		{
			adminGroup.GET("/companies", adminHandler.ListCompanies)
			adminGroup.POST("/companies", adminHandler.CreateCompany)
			adminGroup.GET("/companies/:slug/analytics", adminHandler.CompanyAnalytics)
			adminGroup.POST("/companies/:slug/reminders", adminHandler.SendReminders)
			adminGroup.GET("/stats", adminHandler.GlobalStats)
			adminGroup.GET("/contact-interests", contactHandler.ListInterests)
			adminGroup.DELETE("/contact-interests/:id", contactHandler.DeleteInterest)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
