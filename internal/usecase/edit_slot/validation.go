package edit_slot

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	return nil
}
