package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-bistro/menu-analytics-api/models"
	"github.com/harborview-bistro/menu-analytics-api/utils"
	"gorm.io/gorm"
)

// importBatchSize is the number of rows per bulk insert
const importBatchSize = 500

// Columns the POS export must carry. The importer looks the rest up by
// name and tolerates their absence, so older exports without the extended
// columns still load.
var requiredColumns = []string{
	"order_id", "order_date", "order_datetime", "order_channel",
	"item_name", "category", "actual_price", "food_cost_per_unit",
	"quantity", "total_revenue", "total_food_cost", "contribution_margin",
	"food_cost_pct", "hour", "day_of_week", "is_waste", "waste_type",
	"is_holiday",
}

// ImporterService loads the POS CSV export into the transactions table.
// Every import replaces the previous table contents; the dataset is a flat
// append-only export, not an incrementally maintained store.
type ImporterService struct {
	db *gorm.DB
}

// NewImporterService creates an importer backed by the given database
func NewImporterService(db *gorm.DB) *ImporterService {
	return &ImporterService{db: db}
}

// ImportFile imports the CSV at the given path
func (s *ImporterService) ImportFile(path string) (*models.ImportReceipt, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close dataset file: %v", closeErr)
		}
	}()

	return s.Import(file, path)
}

// Import parses the CSV stream and replaces the transactions table with its
// rows inside a single database transaction. The source string identifies
// where the data came from and is recorded on the receipt.
func (s *ImporterService) Import(r io.Reader, source string) (*models.ImportReceipt, error) {
	rows, err := parseTransactions(r)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, importBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	receipt := &models.ImportReceipt{
		BatchID:    uuid.NewString(),
		Source:     source,
		RowCount:   len(rows),
		ImportedAt: time.Now().UTC(),
	}
	log.Printf("Imported %d transactions from %s (batch %s)", receipt.RowCount, source, receipt.BatchID)
	return receipt, nil
}

// parseTransactions decodes the CSV export into transaction rows
func parseTransactions(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated against the header below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := utils.HeaderIndex(header)
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", column)
		}
	}

	var rows []models.Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(record))
		}

		row, err := decodeTransaction(index, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// decodeTransaction maps one CSV record onto a transaction row
func decodeTransaction(index map[string]int, record []string) (models.Transaction, error) {
	field := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var row models.Transaction
	var err error

	row.OrderID = field("order_id")
	if row.OrderID == "" {
		return row, &utils.FieldError{Column: "order_id", Message: "must not be empty"}
	}
	if row.OrderDate, err = utils.ParseDate("order_date", field("order_date")); err != nil {
		return row, err
	}
	if row.OrderDatetime, err = utils.ParseDateTime("order_datetime", field("order_datetime")); err != nil {
		return row, err
	}
	row.OrderChannel = field("order_channel")
	if row.TableNumber, err = utils.ParseOptionalInt("table_number", field("table_number")); err != nil {
		return row, err
	}
	row.ServerID = field("server_id")
	row.ItemName = field("item_name")
	if row.ItemName == "" {
		return row, &utils.FieldError{Column: "item_name", Message: "must not be empty"}
	}
	row.Category = field("category")
	if row.MenuPrice, err = utils.ParseFloat("menu_price", field("menu_price")); err != nil {
		return row, err
	}
	if row.ActualPrice, err = utils.ParseFloat("actual_price", field("actual_price")); err != nil {
		return row, err
	}
	if row.FoodCostPerUnit, err = utils.ParseFloat("food_cost_per_unit", field("food_cost_per_unit")); err != nil {
		return row, err
	}
	if row.Quantity, err = utils.ParseInt("quantity", field("quantity")); err != nil {
		return row, err
	}
	if row.Quantity <= 0 {
		return row, &utils.FieldError{Column: "quantity", Value: field("quantity"), Message: "must be a positive integer"}
	}
	if row.TotalRevenue, err = utils.ParseFloat("total_revenue", field("total_revenue")); err != nil {
		return row, err
	}
	if row.TotalFoodCost, err = utils.ParseFloat("total_food_cost", field("total_food_cost")); err != nil {
		return row, err
	}
	if row.ContributionMargin, err = utils.ParseFloat("contribution_margin", field("contribution_margin")); err != nil {
		return row, err
	}
	if row.FoodCostPct, err = utils.ParseFloat("food_cost_pct", field("food_cost_pct")); err != nil {
		return row, err
	}
	if row.PrepTimeMin, err = utils.ParseInt("prep_time_min", field("prep_time_min")); err != nil {
		return row, err
	}
	if row.IsWaste, err = utils.ParseBool("is_waste", field("is_waste")); err != nil {
		return row, err
	}
	row.WasteType = utils.ParseOptionalString(field("waste_type"))
	row.DayOfWeek = field("day_of_week")
	row.Month = field("month")
	if row.Hour, err = utils.ParseInt("hour", field("hour")); err != nil {
		return row, err
	}
	if row.Hour < 0 || row.Hour > 23 {
		return row, &utils.FieldError{Column: "hour", Value: field("hour"), Message: "must be between 0 and 23"}
	}
	if row.IsWeekend, err = utils.ParseBool("is_weekend", field("is_weekend")); err != nil {
		return row, err
	}
	if row.IsHoliday, err = utils.ParseBool("is_holiday", field("is_holiday")); err != nil {
		return row, err
	}
	if row.IsRainy, err = utils.ParseBool("is_rainy", field("is_rainy")); err != nil {
		return row, err
	}
	row.PaymentMethod = field("payment_method")

	return row, nil
}
