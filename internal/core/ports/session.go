package ports

import (
	"context"
)

// SessionFactory opens a Session for each operation. Reconnecting after a failure
// means opening a new session; nothing is cached between sessions.
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}

// Session bundles the store connections one operation works with. The caller owns it:
// it opens the session, passes it to a handler and closes it afterwards.
type Session interface {
	// HeadOffice returns the relational source of orders, customers and the catalog.
	HeadOffice() HeadOfficeRepository

	// SummaryTargets returns the relational tables the daily summary is written to,
	// in write order.
	SummaryTargets() []SummaryWriter

	// Orders returns the document store holding order documents with their dockets.
	Orders() OrderRepository

	// Drivers returns the driver registry.
	Drivers() DriverRegistry

	// Close releases every connection of the session.
	Close(ctx context.Context) error
}
