package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	testhelpers "github.com/polkiloo/ordersvc/internal/test"
)

func validCommand() CreateOrderCommand {
	return CreateOrderCommand{
		UserID:          uuid.NewString(),
		Items:           []model.LineItem{{ProductID: uuid.NewString(), Quantity: 1}},
		ShippingAddress: "1 Main St",
	}
}

func TestCreateOrderCommandValidate(t *testing.T) {
	if err := validCommand().Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateOrderCommand)
	}{
		{"missing user", func(c *CreateOrderCommand) { c.UserID = "" }},
		{"malformed user", func(c *CreateOrderCommand) { c.UserID = "user-1" }},
		{"no items", func(c *CreateOrderCommand) { c.Items = nil }},
		{"zero quantity", func(c *CreateOrderCommand) { c.Items[0].Quantity = 0 }},
		{"negative quantity", func(c *CreateOrderCommand) { c.Items[0].Quantity = -2 }},
		{"malformed product", func(c *CreateOrderCommand) { c.Items[0].ProductID = "p1" }},
		{"blank address", func(c *CreateOrderCommand) { c.ShippingAddress = "   " }},
		{"long address", func(c *CreateOrderCommand) {
			c.ShippingAddress = testhelpers.RandomASCIIString(maxShippingAddressLen+1, maxShippingAddressLen+1)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validCommand()
			tc.mutate(&cmd)
			if err := cmd.Validate(); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	cmd := validCommand()
	cmd.ShippingAddress = testhelpers.RandomASCIIString(maxShippingAddressLen, maxShippingAddressLen)
	if err := cmd.Validate(); err != nil {
		t.Fatalf("expected address at limit to be accepted, got %v", err)
	}

	cmd = validCommand()
	cmd.Items[0].Quantity = 250000
	if err := cmd.Validate(); err != nil {
		t.Fatalf("expected large quantity to be left to the stock check, got %v", err)
	}
}

func TestCreateOrderCommandCanonical(t *testing.T) {
	user, product := uuid.New(), uuid.New()
	cmd := CreateOrderCommand{
		UserID:          strings.ToUpper(user.String()),
		Items:           []model.LineItem{{ProductID: "{" + product.String() + "}", Quantity: 1}},
		ShippingAddress: "1 Main St",
	}

	got := cmd.canonical()
	if got.UserID != user.String() || got.Items[0].ProductID != product.String() {
		t.Fatalf("expected canonical ids, got %q / %q", got.UserID, got.Items[0].ProductID)
	}
	if cmd.Items[0].ProductID != "{"+product.String()+"}" {
		t.Fatal("expected caller items to be left untouched")
	}
}

func TestCanonicalID(t *testing.T) {
	id := uuid.New()
	for _, spelling := range []string{
		id.String(),
		strings.ToUpper(id.String()),
		"{" + id.String() + "}",
		"urn:uuid:" + id.String(),
	} {
		got, ok := CanonicalID(spelling)
		if !ok || got != id.String() {
			t.Fatalf("expected %q to canonicalise to %q, got %q (ok=%v)", spelling, id, got, ok)
		}
	}

	for _, bad := range []string{"", "42", "order-1"} {
		if _, ok := CanonicalID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
