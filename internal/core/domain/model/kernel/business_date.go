package kernel

import (
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// BusinessDateLayout is the wire and storage format of a business date.
const BusinessDateLayout = "2006-01-02"

// ErrBusinessDateIsNotConstructed is returned when a zero-value BusinessDate is used.
var ErrBusinessDateIsNotConstructed = errs.NewValueIsRequiredError(
	"business date must be created via ParseBusinessDate or NewBusinessDate")

// BusinessDate is the calendar date an order batch belongs to, independent of the
// wall-clock time it is processed at. It carries no time zone; callers convert a
// store-local instant with NewBusinessDate.
//
// Example:
//
//	date, err := kernel.ParseBusinessDate("2024-03-01")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(date) // 2024-03-01
type BusinessDate struct { //nolint:recvcheck //using for validation
	year  int
	month time.Month
	day   int
	guard guard.ConstructorGuard
}

// NewBusinessDate takes the calendar date of t in t's own location.
func NewBusinessDate(t time.Time) BusinessDate {
	y, m, d := t.Date()
	return BusinessDate{year: y, month: m, day: d, guard: guard.NewConstructorGuard()}
}

// ParseBusinessDate parses a YYYY-MM-DD string. Surrounding whitespace is ignored.
func ParseBusinessDate(s string) (BusinessDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BusinessDate{}, errs.NewValueIsRequiredError("business date")
	}

	t, err := time.Parse(BusinessDateLayout, s)
	if err != nil {
		return BusinessDate{}, errs.NewValueIsInvalidErrorWithCause("business date", err)
	}

	return NewBusinessDate(t), nil
}

// MustParseBusinessDate is ParseBusinessDate for literals known to be valid.
func MustParseBusinessDate(s string) BusinessDate {
	d, err := ParseBusinessDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d BusinessDate) Validate() error {
	return d.guard.Validate(ErrBusinessDateIsNotConstructed)
}

// String renders the date as YYYY-MM-DD.
func (d BusinessDate) String() string {
	return d.Time().Format(BusinessDateLayout)
}

// Time returns midnight UTC of the date, the representation used by SQL date columns.
func (d BusinessDate) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d BusinessDate) IsEqual(other BusinessDate) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}
