package headoffice

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Migrate creates the head office schema and tables when they are missing. The
// production head office is owned elsewhere; this serves local setups and tests.
func Migrate(ctx context.Context, db *gorm.DB, schema string) error {
	db = db.WithContext(ctx)

	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pq.QuoteIdentifier(schema))).Error; err != nil {
		return err
	}

	tables := []struct {
		name  string
		model any
	}{
		{customersTable, &CustomerDTO{}},
		{ordersTable, &OrderDTO{}},
		{orderItemsTable, &OrderItemDTO{}},
		{summaryTable, &SummaryDTO{}},
	}

	for _, t := range tables {
		if err := db.Table(schema + "." + t.name).AutoMigrate(t.model); err != nil {
			return fmt.Errorf("migrate %s.%s: %w", schema, t.name, err)
		}
	}

	return nil
}
