// Package reporting records the daily summary in the reporting database.
package reporting

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/summary"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const resource = "reporting"

// DailySummaryDTO is a row of the reporting summary table; the date is unique.
type DailySummaryDTO struct {
	Date                  time.Time       `gorm:"column:date;type:date;uniqueIndex"`
	TotalOrders           int64           `gorm:"column:total_orders"`
	TotalSales            decimal.Decimal `gorm:"column:total_sales;type:numeric(12,2)"`
	TotalDriverCommission decimal.Decimal `gorm:"column:total_driver_commission;type:numeric(12,2)"`
	MostPopularPizza      string          `gorm:"column:most_popular_pizza"`
}

// GormSummaryRepository implements ports.SummaryWriter for the reporting table.
type GormSummaryRepository struct {
	db    *gorm.DB
	table string
}

var _ ports.SummaryWriter = (*GormSummaryRepository)(nil)

func NewGormSummaryRepository(db *gorm.DB, table string) *GormSummaryRepository {
	return &GormSummaryRepository{db: db, table: table}
}

func (r *GormSummaryRepository) Target() string {
	return resource
}

// WriteSummary inserts one row per business date.
func (r *GormSummaryRepository) WriteSummary(ctx context.Context, s summary.DailySummary) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	query := fmt.Sprintf(`
		INSERT INTO %s (date, total_orders, total_sales, total_driver_commission, most_popular_pizza)
		VALUES (?, ?, ?, ?, ?)
	`, postgres.QualifiedName("", r.table))

	err := r.db.WithContext(ctx).Exec(query,
		dto.Date, dto.TotalOrders, dto.TotalSales, dto.TotalDriverCommission, dto.MostPopularPizza,
	).Error

	return postgres.Classify(resource, s.Date().String(), err)
}

// Migrate creates the summary table when it is missing.
func Migrate(ctx context.Context, db *gorm.DB, table string) error {
	return db.WithContext(ctx).Table(table).AutoMigrate(&DailySummaryDTO{})
}

func fromDomain(s summary.DailySummary) DailySummaryDTO {
	return DailySummaryDTO{
		Date:                  s.Date().Time(),
		TotalOrders:           s.TotalOrders(),
		TotalSales:            s.TotalSales(),
		TotalDriverCommission: s.TotalCommission(),
		MostPopularPizza:      s.MostPopularProduct(),
	}
}
