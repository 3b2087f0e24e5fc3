package order

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Customer is the customer embedded in an order document. The id is owned by the
// head-office database; zero means it has not been resolved yet.
type Customer struct {
	id        int64
	firstName string
	lastName  string
	phone     string
	address   string
	postCode  string
}

// NewCustomer builds a customer. The postcode is kept verbatim; it is coerced to a
// number only when a driver is located.
func NewCustomer(id int64, firstName, lastName, phone, address, postCode string) (Customer, error) {
	if id < 0 {
		return Customer{}, errs.NewValueIsOutOfRangeError("customer id", id, 0, "max int64")
	}

	return Customer{
		id:        id,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		phone:     strings.TrimSpace(phone),
		address:   strings.TrimSpace(address),
		postCode:  strings.TrimSpace(postCode),
	}, nil
}

// WithID returns a copy carrying the resolved or minted id.
func (c Customer) WithID(id int64) Customer {
	c.id = id
	return c
}

func (c Customer) ID() int64         { return c.id }
func (c Customer) FirstName() string { return c.firstName }
func (c Customer) LastName() string  { return c.lastName }
func (c Customer) Phone() string     { return c.phone }
func (c Customer) Address() string   { return c.address }
func (c Customer) PostCode() string  { return c.postCode }

// FullName joins first and last name with a single space.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.firstName + " " + c.lastName)
}
