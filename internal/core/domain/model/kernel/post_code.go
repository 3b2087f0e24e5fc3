package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PostCode is a postal code coerced to its integer value, which is what driver
// coverage ranges are expressed in. Leading zeros are not significant ("0800" == 800).
type PostCode int

// ParsePostCode coerces a string or integer postcode. Anything non-numeric is a
// data integrity failure.
func ParsePostCode(raw any) (PostCode, error) {
	var (
		value int
		err   error
	)

	switch v := raw.(type) {
	case PostCode:
		value = int(v)
	case int:
		value = v
	case int32:
		value = int(v)
	case int64:
		value = int(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errs.NewValueIsRequiredError("post code")
		}
		value, err = strconv.Atoi(trimmed)
		if err != nil {
			return 0, errs.NewValueIsInvalidErrorWithCause("post code", err)
		}
	case nil:
		return 0, errs.NewValueIsRequiredError("post code")
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("post code", fmt.Errorf("unsupported type %T", raw))
	}

	if value < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("post code", fmt.Errorf("%d is negative", value))
	}

	return PostCode(value), nil
}

// DistanceToRange is min(|start-pc|, |end-pc|).
func (p PostCode) DistanceToRange(start, end int) int {
	return min(abs(start-int(p)), abs(end-int(p)))
}

// InRange reports start <= pc <= end.
func (p PostCode) InRange(start, end int) bool {
	return start <= int(p) && int(p) <= end
}

func (p PostCode) Int() int {
	return int(p)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
