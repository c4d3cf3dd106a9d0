package ordered

import "github.com/pkg/errors"

var (
	// ErrCapacityOverflow reports that the table already sits at the largest
	// supported prime capacity. Reserve returns it; the insert growth path
	// panics with it instead, since hitting it there means over a billion
	// live entries and no call site can do anything useful about it.
	ErrCapacityOverflow = errors.New("ordered: maximum table capacity reached")

	// ErrReserveTooSmall reports a Reserve call asking for fewer buckets
	// than there are live entries.
	ErrReserveTooSmall = errors.New("ordered: reserve capacity is smaller than the live entry count")
)
