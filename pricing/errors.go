package pricing

import "fmt"

// InvalidPriceError means a negative amount or a non-positive quantity got
// past validation.
type InvalidPriceError struct {
	Field  string
	Reason string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price: %s %s", e.Field, e.Reason)
}
