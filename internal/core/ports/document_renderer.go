package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// DocumentRenderer turns labelled docket fields into a printable artifact. The bytes
// are opaque to the core and stored verbatim.
type DocumentRenderer interface {
	Render(ctx context.Context, fields []order.Field) ([]byte, error)
}
