package create_cart

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.DeliveryID <= 0 {
		return fmt.Errorf("%w: deliveryID must be positive", ErrInvalidInput)
	}

	return nil
}
