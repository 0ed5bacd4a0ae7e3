package loan

import "fmt"

type Status string

const (
	StatusProposed    Status = "proposed"
	StatusCancelled   Status = "cancelled"
	StatusStarted     Status = "started"
	StatusLiquidating Status = "liquidating"
	StatusLiquidated  Status = "liquidated"
	StatusReturned    Status = "returned"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusProposed, StatusCancelled, StatusStarted,
	StatusLiquidating, StatusLiquidated, StatusReturned,
}

// next is the complete transition graph. Edges not listed here are unreachable.
func (s Status) next() []Status {
	switch s {
	case StatusProposed:
		return []Status{StatusProposed, StatusCancelled, StatusStarted}
	case StatusStarted:
		return []Status{StatusReturned, StatusLiquidating}
	case StatusLiquidating:
		return []Status{StatusLiquidated}
	case StatusReturned, StatusLiquidated, StatusCancelled:
		return nil
	default:
		panic(fmt.Sprintf("loan: unknown status %q", string(s)))
	}
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanMoveTo reports whether to is a legal successor of s.
func (s Status) CanMoveTo(to Status) bool {
	if !s.Valid() {
		return false
	}
	for _, n := range s.next() {
		if n == to {
			return true
		}
	}
	return false
}

// Claimable reports whether lenders may drain their returns.
func (s Status) Claimable() bool { return s == StatusReturned || s == StatusLiquidated }

// Index is the position of s in Statuses, matching the numeric status codes
// exposed to clients; -1 if unknown.
func (s Status) Index() int {
	for i, v := range Statuses {
		if v == s {
			return i
		}
	}
	return -1
}
