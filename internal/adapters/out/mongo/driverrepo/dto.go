package driverrepo

import (
	"fulfillment/internal/core/domain/model/driver"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverDocument is a registry entry. The commission field keeps the registry's
// historical spelling; both range endpoints may be absent.
type DriverDocument struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty"`
	DriverID    int64              `bson:"driverId"`
	Name        string             `bson:"name"`
	Commission  float64            `bson:"comission"`
	SuburbStart *int               `bson:"suburbStart,omitempty"`
	SuburbEnd   *int               `bson:"suburbEnd,omitempty"`
}

func fromDomain(d *driver.Driver) DriverDocument {
	return DriverDocument{
		DriverID:    d.ID(),
		Name:        d.Name(),
		Commission:  d.CommissionRate().InexactFloat64(),
		SuburbStart: d.SuburbStart(),
		SuburbEnd:   d.SuburbEnd(),
	}
}

func toDomain(doc DriverDocument) (*driver.Driver, error) {
	return driver.NewDriver(doc.DriverID, doc.Name, decimal.NewFromFloat(doc.Commission), doc.SuburbStart, doc.SuburbEnd)
}
