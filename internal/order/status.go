package order

type Status string

const (
	StatusPaymentPending Status = "Payment Pending"
	StatusOrderPlaced    Status = "Order Placed"
	StatusProcessing     Status = "Processing"
	StatusShipped        Status = "Shipped"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

var allStatuses = []Status{
	StatusPaymentPending,
	StatusOrderPlaced,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// transitions lists the statuses a seller may move an order into.
var transitions = map[Status][]Status{
	StatusPaymentPending: {StatusCancelled},
	StatusOrderPlaced:    {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered, StatusCancelled},
}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Settable reports whether s may be requested through a status update.
// Payment Pending and Order Placed are only ever set by placement and verification.
func (s Status) Settable() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
