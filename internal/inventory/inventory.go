package inventory

// DefaultCapacity is the stock of the campaign when nothing else is
// configured.
const DefaultCapacity = 5

type Status struct {
	Remaining int  `json:"remaining"`
	SoldOut   bool `json:"soldOut"`
}

// Compute maps the current order count to the derived inventory status.
// Remaining is clamped at zero so an oversold store never reports a
// negative stock.
func Compute(count, capacity int) Status {
	remaining := capacity - count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Remaining: remaining,
		SoldOut:   count >= capacity,
	}
}
