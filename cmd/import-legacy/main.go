// Imports the old single-array invoice file into the per-company layout.
// Usage: import-legacy <path-to-mobile-money-invoices.json>
package main

import (
	"log"
	"os"

	"zyra/internal/config"
	"zyra/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: import-legacy <path-to-mobile-money-invoices.json>")
	}

	cfg := config.LoadConfig()
	fileStore := store.NewFileInvoiceStore(cfg.DataDir)

	imported, err := fileStore.ImportLegacyFile(os.Args[1])
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Imported %d invoices (duplicates skipped)", imported)
}
