package rule

import (
	"fmt"
	"strconv"
)

// Order is the number of sample points of a quadrature rule.
type Order int

// Supported orders. The set is closed: a table exists only for these values.
const (
	Order8  Order = 8
	Order16 Order = 16
	Order32 Order = 32
	Order64 Order = 64
)

// SupportedOrders returns the closed set of orders in ascending order.
func SupportedOrders() []Order {
	return []Order{Order8, Order16, Order32, Order64}
}

// Valid reports whether a calibration table exists for o.
func (o Order) Valid() bool {
	_, ok := calibration(o)
	return ok
}

// ExactDegree is the highest polynomial degree integrated exactly (2*Order-1).
func (o Order) ExactDegree() int {
	return 2*int(o) - 1
}

func (o Order) String() string {
	return strconv.Itoa(int(o))
}

// ParseOrder validates n against the supported set.
func ParseOrder(n int) (Order, error) {
	o := Order(n)
	if !o.Valid() {
		return 0, newUnsupportedOrderError(o)
	}
	return o, nil
}

// row is one calibration entry.
type row struct {
	w, x float64
}

// calibration selects the static rows for o.
func calibration(o Order) ([]row, bool) {
	switch o {
	case Order8:
		return gl8[:], true
	case Order16:
		return gl16[:], true
	case Order32:
		return gl32[:], true
	case Order64:
		return gl64[:], true
	default:
		return nil, false
	}
}

// Set implements pflag.Value so an Order can be bound directly to a flag.
func (o *Order) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("order %q is not an integer", s)
	}
	parsed, err := ParseOrder(n)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Type implements pflag.Value.
func (o *Order) Type() string {
	return "order"
}
