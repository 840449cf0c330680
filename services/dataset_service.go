package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"gorm.io/gorm"
)

// DatasetSnapshot is an immutable view of the loaded transaction table.
// Rows are ordered by insertion (CSV row order) and never mutated; filters
// and aggregations always recompute from here. The date bounds and the
// category/channel lists are derived from the data, never assumed.
type DatasetSnapshot struct {
	Version    string               `json:"version"` // uuid assigned per load
	Source     string               `json:"source"`  // file path or s3://bucket/key
	Rows       []models.Transaction `json:"-"`
	RowCount   int                  `json:"row_count"`
	MinDate    time.Time            `json:"min_date"`
	MaxDate    time.Time            `json:"max_date"`
	Categories []string             `json:"categories"`
	Channels   []string             `json:"channels"`
	LoadedAt   time.Time            `json:"loaded_at"`
}

// DefaultFilter returns filter params covering the whole snapshot with no
// category or channel restriction
func (s *DatasetSnapshot) DefaultFilter(targetFoodCostPct float64) models.FilterParams {
	return models.FilterParams{
		StartDate:         s.MinDate,
		EndDate:           s.MaxDate,
		TargetFoodCostPct: targetFoodCostPct,
	}
}

// DatasetService owns access to the loaded transaction table. It is
// constructed once at startup and handed to the controllers explicitly;
// there is no package-level dataset state. The snapshot is replaced
// wholesale on reload, keyed by a fresh version id.
type DatasetService struct {
	db       *gorm.DB
	mu       sync.RWMutex
	snapshot *DatasetSnapshot
}

// NewDatasetService creates a dataset service backed by the given database
func NewDatasetService(db *gorm.DB) *DatasetService {
	return &DatasetService{db: db}
}

// Load reads the whole transaction table into a fresh snapshot. Rows are
// read in primary key order, which matches the CSV row order of the import.
func (s *DatasetService) Load(source string) error {
	var rows []models.Transaction
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	snapshot := &DatasetSnapshot{
		Version:  uuid.NewString(),
		Source:   source,
		Rows:     rows,
		RowCount: len(rows),
		LoadedAt: time.Now().UTC(),
	}

	categories := make(map[string]bool)
	channels := make(map[string]bool)
	for i, row := range rows {
		if i == 0 || row.OrderDate.Before(snapshot.MinDate) {
			snapshot.MinDate = row.OrderDate
		}
		if i == 0 || row.OrderDate.After(snapshot.MaxDate) {
			snapshot.MaxDate = row.OrderDate
		}
		categories[row.Category] = true
		channels[row.OrderChannel] = true
	}
	snapshot.Categories = sortedKeys(categories)
	snapshot.Channels = sortedKeys(channels)

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	log.Printf("Dataset loaded: %d rows from %s (version %s)", snapshot.RowCount, source, snapshot.Version)
	return nil
}

// Snapshot returns the current dataset snapshot, or nil when no dataset
// has been loaded yet
func (s *DatasetService) Snapshot() *DatasetSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// RowCount reports the number of rows currently stored in the database
func (s *DatasetService) RowCount() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
