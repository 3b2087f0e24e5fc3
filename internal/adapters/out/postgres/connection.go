package postgres

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the database behind dsn and checks it answers. The caller owns the
// returned handle and closes it with Close.
func Open(ctx context.Context, resource, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errs.NewConnectivityErrorWithCause(resource, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewConnectivityErrorWithCause(resource, err)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errs.NewConnectivityErrorWithCause(resource, err)
	}

	return db, nil
}

// Close releases the pool of a handle returned by Open.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// QualifiedName quotes an optional schema and a table name for use in raw SQL.
func QualifiedName(schema, table string) string {
	if strings.TrimSpace(schema) == "" {
		return pq.QuoteIdentifier(table)
	}
	return fmt.Sprintf("%s.%s", pq.QuoteIdentifier(schema), pq.QuoteIdentifier(table))
}
