package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"zyra/internal/models"

	"github.com/google/uuid"
)

// FileInvoiceStore keeps one JSON file per invoice under
// <dataDir>/companies/<slug>/mobile-money/invoices/<id>.json. A process-wide
// mutex serializes writes so two webhook deliveries cannot race the
// reference check.
type FileInvoiceStore struct {
	dataDir string
	mu      sync.Mutex
}

// Records without a company slug (imported from the old single-array file)
// live under this directory. The name is not a valid slug, so it can never
// collide with a real company.
const legacyCompanyDir = "_legacy"

func NewFileInvoiceStore(dataDir string) *FileInvoiceStore {
	return &FileInvoiceStore{dataDir: dataDir}
}

func (s *FileInvoiceStore) companyDir(slug string) string {
	if slug == "" {
		// An empty slug would collapse the path and hide the record from
		// ListAllInvoices, which breaks the reference dedup scan.
		slug = legacyCompanyDir
	}
	return filepath.Join(s.dataDir, "companies", slug, "mobile-money", "invoices")
}

func (s *FileInvoiceStore) SaveInvoice(inv *models.MobileMoneyInvoice) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	existing, err := s.ListAllInvoices()
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if e.Reference == inv.Reference {
			return false, nil
		}
	}

	dir := s.companyDir(inv.CompanySlug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}

	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(filepath.Join(dir, inv.ID+".json"), data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileInvoiceStore) GetInvoice(id, companySlug string) (*models.MobileMoneyInvoice, error) {
	if companySlug != "" {
		path := filepath.Join(s.companyDir(companySlug), id+".json")
		if inv, err := readInvoiceFile(path); err == nil {
			return inv, nil
		}
	}

	// Legacy fallback: scan every company directory for the id.
	all, err := s.ListAllInvoices()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileInvoiceStore) ListInvoices(companySlug string) ([]models.MobileMoneyInvoice, error) {
	invoices, err := readInvoiceDir(s.companyDir(companySlug))
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(invoices)
	return invoices, nil
}

func (s *FileInvoiceStore) ListAllInvoices() ([]models.MobileMoneyInvoice, error) {
	companiesDir := filepath.Join(s.dataDir, "companies")
	entries, err := os.ReadDir(companiesDir)
	if os.IsNotExist(err) {
		return []models.MobileMoneyInvoice{}, nil
	}
	if err != nil {
		return nil, err
	}

	var all []models.MobileMoneyInvoice
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		invoices, err := readInvoiceDir(s.companyDir(entry.Name()))
		if err != nil {
			log.Printf("Error reading invoices for %s: %v", entry.Name(), err)
			continue
		}
		all = append(all, invoices...)
	}
	if all == nil {
		all = []models.MobileMoneyInvoice{}
	}
	sortByCreatedDesc(all)
	return all, nil
}

// ImportLegacyFile reads the old single-array invoice file and saves each
// record through the idempotent path. Used by cmd/import-legacy.
func (s *FileInvoiceStore) ImportLegacyFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var invoices []models.MobileMoneyInvoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return 0, err
	}

	imported := 0
	for i := range invoices {
		created, err := s.SaveInvoice(&invoices[i])
		if err != nil {
			log.Printf("Error importing invoice %s: %v", invoices[i].Reference, err)
			continue
		}
		if created {
			imported++
		}
	}
	return imported, nil
}

func readInvoiceFile(path string) (*models.MobileMoneyInvoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var inv models.MobileMoneyInvoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func readInvoiceDir(dir string) ([]models.MobileMoneyInvoice, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []models.MobileMoneyInvoice{}, nil
	}
	if err != nil {
		return nil, err
	}

	invoices := []models.MobileMoneyInvoice{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		inv, err := readInvoiceFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Skipping malformed invoice file %s: %v", entry.Name(), err)
			continue
		}
		invoices = append(invoices, *inv)
	}
	return invoices, nil
}

func sortByCreatedDesc(invoices []models.MobileMoneyInvoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
}
