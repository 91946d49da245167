package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
)

const maxShippingAddressLen = 500

// CreateOrderCommand is the input of OrderUseCase.Create. Credential is
// forwarded verbatim to the identity service.
type CreateOrderCommand struct {
	UserID          string
	Credential      string
	Items           []model.LineItem
	ShippingAddress string
}

// Validate rejects malformed input before any collaborator is called.
func (c CreateOrderCommand) Validate() error {
	if _, ok := CanonicalID(c.UserID); !ok {
		return invalid("user_id must be a valid UUID")
	}
	if len(c.Items) == 0 {
		return invalid("at least one item is required")
	}
	for i, item := range c.Items {
		if _, ok := CanonicalID(item.ProductID); !ok {
			return invalid(fmt.Sprintf("items[%d].product_id must be a valid UUID", i))
		}
		if item.Quantity < 1 {
			return invalid(fmt.Sprintf("items[%d].quantity must be at least 1", i))
		}
	}
	address := strings.TrimSpace(c.ShippingAddress)
	if address == "" {
		return invalid("shipping_address is required")
	}
	if utf8.RuneCountInString(address) > maxShippingAddressLen {
		return invalid(fmt.Sprintf("shipping_address must be at most %d characters", maxShippingAddressLen))
	}
	return nil
}

// canonical returns a copy of a validated command with identifiers in
// canonical UUID form. The caller's items are not modified.
func (c CreateOrderCommand) canonical() CreateOrderCommand {
	c.UserID, _ = CanonicalID(c.UserID)
	items := make([]model.LineItem, len(c.Items))
	for i, item := range c.Items {
		item.ProductID, _ = CanonicalID(item.ProductID)
		items[i] = item
	}
	c.Items = items
	return c
}

// CanonicalID parses id as a UUID and returns its lowercase hyphenated form.
// Uppercase, braced and urn:uuid: spellings of one id map to the same value.
func CanonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrValidation, msg)
}
