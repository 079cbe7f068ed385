package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"zyra/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BrandStore persists brand configs in the database and mirrors each write
// to public/brands/<slug>/brand.json, which the browser loads directly.
type BrandStore struct {
	db        *gorm.DB
	publicDir string
}

func NewBrandStore(db *gorm.DB, publicDir string) *BrandStore {
	return &BrandStore{db: db, publicDir: publicDir}
}

func (s *BrandStore) Get(slug string) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.Preload("Inventory").Where("slug = ?", slug).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (s *BrandStore) List() ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.Order("created_at DESC").Find(&brands).Error
	return brands, err
}

// Create writes a new brand. First writer wins: the unique index on slug
// rejects a concurrent duplicate.
func (s *BrandStore) Create(brand *models.Brand) error {
	if err := s.db.Create(brand).Error; err != nil {
		return err
	}
	s.export(brand)
	return nil
}

// Update replaces the stored config wholesale (last write wins, matching the
// brand editor's full-document submit).
func (s *BrandStore) Update(brand *models.Brand) error {
	if err := s.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(brand).Error; err != nil {
		return err
	}
	s.export(brand)
	return nil
}

func (s *BrandStore) export(brand *models.Brand) {
	dir := filepath.Join(s.publicDir, "brands", brand.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Error creating brand dir for %s: %v", brand.Slug, err)
		return
	}

	data, err := json.MarshalIndent(brand, "", "  ")
	if err != nil {
		log.Printf("Error marshaling brand %s: %v", brand.Slug, err)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "brand.json"), data, 0o644); err != nil {
		log.Printf("Error writing brand.json for %s: %v", brand.Slug, err)
	}
}

// DefaultBrand builds the config a freshly created company starts with.
func DefaultBrand(slug, name string) *models.Brand {
	return &models.Brand{
		Slug: slug,
		Name: name,
		Colors: datatypes.JSONMap{
			"primary":    "#0f172a",
			"secondary":  "#64748b",
			"accent":     "#6366f1",
			"background": "#ffffff",
			"surface":    "#f8fafc",
			"text":       "#0f172a",
		},
		Assets: datatypes.JSONMap{},
		Meta: datatypes.JSONMap{
			"title":       name,
			"description": name + " invoices",
		},
	}
}
