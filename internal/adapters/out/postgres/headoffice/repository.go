package headoffice

import (
	"context"
	"database/sql"
	"fmt"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/summary"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const resource = "head office"

// GormHeadOfficeRepository implements ports.HeadOfficeRepository and the head office
// ports.SummaryWriter using GORM raw queries.
type GormHeadOfficeRepository struct {
	db      *gorm.DB
	schema  string
	storeID string
}

// NewGormHeadOfficeRepository binds the repository to a schema; storeID is written
// with every summary row.
func NewGormHeadOfficeRepository(db *gorm.DB, schema, storeID string) *GormHeadOfficeRepository {
	return &GormHeadOfficeRepository{db: db, schema: schema, storeID: storeID}
}

var (
	_ ports.HeadOfficeRepository = (*GormHeadOfficeRepository)(nil)
	_ ports.SummaryWriter        = (*GormHeadOfficeRepository)(nil)
)

func (r *GormHeadOfficeRepository) table(name string) string {
	return postgres.QualifiedName(r.schema, name)
}

// DailyRows keeps the MIN(order_date) sub-select of the head office report
// so that both return the same rows.
func (r *GormHeadOfficeRepository) DailyRows(ctx context.Context, date kernel.BusinessDate) ([]order.SourceRow, error) {
	if err := date.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			po.order_id,
			po.order_date,
			pa.customer_id,
			pa.first_name,
			pa.last_name,
			pa.phone,
			pa.address,
			pa.post_code,
			oi.order_item_id,
			oi.quantity,
			oi.product_name,
			oi.list_price
		FROM %[1]s po
		INNER JOIN %[2]s pa ON pa.customer_id = po.customer_id
		INNER JOIN %[3]s oi ON oi.order_id = po.order_id
		WHERE po.order_date = (SELECT MIN(order_date) FROM %[1]s WHERE order_date = ?)
		ORDER BY po.order_id, oi.order_item_id
	`, r.table(ordersTable), r.table(customersTable), r.table(orderItemsTable))

	rows, err := r.db.WithContext(ctx).Raw(query, date.Time()).Rows()
	if err != nil {
		return nil, postgres.Classify(resource, date.String(), err)
	}
	defer rows.Close()

	result := make([]order.SourceRow, 0)
	for rows.Next() {
		var dto dailyRowDTO
		err = rows.Scan(
			&dto.OrderID,
			&dto.OrderDate,
			&dto.CustomerID,
			&dto.FirstName,
			&dto.LastName,
			&dto.Phone,
			&dto.Address,
			&dto.PostCode,
			&dto.OrderItemID,
			&dto.Quantity,
			&dto.ProductName,
			&dto.ListPrice,
		)
		if err != nil {
			return nil, postgres.ClassifyScan(resource, err)
		}
		result = append(result, dto.toSourceRow())
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.Classify(resource, date.String(), err)
	}

	return result, nil
}

// FindCatalogItem uses the lowest item id and lowest price ever recorded for the product.
func (r *GormHeadOfficeRepository) FindCatalogItem(ctx context.Context, productName string) (ports.CatalogItem, error) {
	var (
		itemID sql.NullInt64
		price  sql.NullString
	)

	query := fmt.Sprintf(
		`SELECT MIN(order_item_id), MIN(list_price) FROM %s WHERE product_name = ?`,
		r.table(orderItemsTable))

	row := r.db.WithContext(ctx).Raw(query, productName).Row()
	if err := row.Err(); err != nil {
		return ports.CatalogItem{}, postgres.Classify(resource, productName, err)
	}
	if err := row.Scan(&itemID, &price); err != nil {
		return ports.CatalogItem{}, postgres.ClassifyScan(resource, err)
	}

	if !itemID.Valid || !price.Valid {
		return ports.CatalogItem{}, errs.NewObjectNotFoundError("product", productName)
	}

	listPrice, err := decimal.NewFromString(price.String)
	if err != nil {
		return ports.CatalogItem{}, errs.NewValueIsInvalidErrorWithCause("list price", err)
	}

	return ports.CatalogItem{ID: itemID.Int64, ListPrice: listPrice}, nil
}

func (r *GormHeadOfficeRepository) FindCustomerID(ctx context.Context, firstName, lastName string) (int64, error) {
	var id sql.NullInt64

	query := fmt.Sprintf(
		`SELECT MIN(customer_id) FROM %s WHERE first_name = ? AND last_name = ?`,
		r.table(customersTable))

	row := r.db.WithContext(ctx).Raw(query, firstName, lastName).Row()
	if err := row.Err(); err != nil {
		return 0, postgres.Classify(resource, nil, err)
	}
	if err := row.Scan(&id); err != nil {
		return 0, postgres.ClassifyScan(resource, err)
	}

	if !id.Valid {
		return 0, errs.NewObjectNotFoundError("customer", firstName+" "+lastName)
	}

	return id.Int64, nil
}

func (r *GormHeadOfficeRepository) MaxOrderID(ctx context.Context) (int64, error) {
	return r.maxID(ctx, ordersTable, "order_id")
}

func (r *GormHeadOfficeRepository) MaxItemID(ctx context.Context) (int64, error) {
	return r.maxID(ctx, orderItemsTable, "order_item_id")
}

func (r *GormHeadOfficeRepository) MaxCustomerID(ctx context.Context) (int64, error) {
	return r.maxID(ctx, customersTable, "customer_id")
}

func (r *GormHeadOfficeRepository) maxID(ctx context.Context, table, column string) (int64, error) {
	var id int64

	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s`, column, r.table(table))
	row := r.db.WithContext(ctx).Raw(query).Row()
	if err := row.Err(); err != nil {
		return 0, postgres.Classify(resource, nil, err)
	}
	if err := row.Scan(&id); err != nil {
		return 0, postgres.ClassifyScan(resource, err)
	}

	return id, nil
}

func (r *GormHeadOfficeRepository) Target() string {
	return resource
}

// WriteSummary inserts the store's summary row; a second row for the same store and
// date is rejected by the table's unique index.
func (r *GormHeadOfficeRepository) WriteSummary(ctx context.Context, s summary.DailySummary) error {
	if err := s.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (store_id, summary_date, total_sales, total_orders, best_product) VALUES (?, ?, ?, ?, ?)`,
		r.table(summaryTable))

	err := r.db.WithContext(ctx).Exec(query,
		r.storeID, s.Date().Time(), s.TotalSales(), s.TotalOrders(), s.MostPopularProduct(),
	).Error

	return postgres.Classify(resource, s.Date().String(), err)
}
