package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrFirstNameIsRequired = errs.NewValueIsRequiredError("first name")
	ErrLastNameIsRequired  = errs.NewValueIsRequiredError("last name")
	ErrItemsAreRequired    = errs.NewValueIsRequiredError("items")
)

// OrderLine is one requested product of a new order.
type OrderLine struct {
	ProductName string
	Quantity    int
}

// CreateOrderCommand represents a walk-in or phone order placed outside the daily batch.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Ada", "Lovelace", "0400 000 000", "1 Main St", "4556",
//	    []OrderLine{{ProductName: "Margherita", Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, session, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	firstName string
	lastName  string
	phone     string
	address   string
	postCode  string
	lines     []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the customer and items. The post code must be
// numeric since a driver is located from it.
func NewCreateOrderCommand(
	firstName, lastName, phone, address, postCode string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFirstName(firstName),
		cmd.setLastName(lastName),
		cmd.setPostCode(postCode),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) FirstName() string { return c.firstName }
func (c CreateOrderCommand) LastName() string  { return c.lastName }
func (c CreateOrderCommand) Phone() string     { return c.phone }
func (c CreateOrderCommand) Address() string   { return c.address }
func (c CreateOrderCommand) PostCode() string  { return c.postCode }

// Lines returns a copy of the requested items.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setFirstName(firstName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return ErrFirstNameIsRequired
	}
	c.firstName = firstName
	return nil
}

func (c *CreateOrderCommand) setLastName(lastName string) error {
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return ErrLastNameIsRequired
	}
	c.lastName = lastName
	return nil
}

func (c *CreateOrderCommand) setPostCode(postCode string) error {
	if _, err := kernel.ParsePostCode(postCode); err != nil {
		return err
	}
	c.postCode = strings.TrimSpace(postCode)
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}

	var lineErrs []error
	for i, line := range lines {
		name := strings.TrimSpace(line.ProductName)
		if name == "" {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].productName", i)))
		}
		if line.Quantity <= 0 {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i), fmt.Errorf("%d is not greater than 0", line.Quantity)))
		}
		c.lines = append(c.lines, OrderLine{ProductName: name, Quantity: line.Quantity})
	}

	return errors.Join(lineErrs...)
}
