package errors

import (
	stdErrors "errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"validation", ErrValidation},
		{"invalid status", ErrInvalidStatus},
		{"user validation", ErrUserValidationFailed},
		{"product not found", ErrProductNotFound},
		{"product unavailable", ErrProductUnavailable},
		{"insufficient inventory", ErrInsufficientInventory},
		{"invalid transition", ErrInvalidTransition},
		{"persistence", ErrPersistence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestProductErrorMessages(t *testing.T) {
	cases := []struct {
		err  *ProductError
		want string
		is   error
	}{
		{&ProductError{ProductID: "p2", ProductName: "Desk", Err: ErrInsufficientInventory}, "insufficient inventory for product: Desk", ErrInsufficientInventory},
		{&ProductError{ProductID: "p2", Err: ErrInsufficientInventory}, "insufficient inventory for product: p2", ErrInsufficientInventory},
		{&ProductError{ProductID: "p3", Err: ErrProductNotFound}, "product p3 not found", ErrProductNotFound},
		{&ProductError{ProductID: "p4", Err: ErrProductUnavailable}, "failed to validate product: p4", ErrProductUnavailable},
	}

	for _, tc := range cases {
		if tc.err.Error() != tc.want {
			t.Errorf("expected %q, got %q", tc.want, tc.err.Error())
		}
		if !stdErrors.Is(tc.err, tc.is) {
			t.Errorf("expected %v to unwrap to %v", tc.err, tc.is)
		}
	}
}

func TestTransitionError(t *testing.T) {
	err := &TransitionError{From: "shipped", To: "cancelled"}
	if err.Error() != "cannot cancel order with status: shipped" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !stdErrors.Is(err, ErrInvalidTransition) {
		t.Fatal("expected invalid transition sentinel")
	}

	other := &TransitionError{From: "delivered", To: "pending"}
	if !strings.Contains(other.Error(), "from delivered to pending") {
		t.Fatalf("unexpected message %q", other.Error())
	}
}

func TestPersistence(t *testing.T) {
	if Persistence("op", nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	cause := stdErrors.New("connection reset")
	err := Persistence("insert order", cause)
	if !stdErrors.Is(err, ErrPersistence) || !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped persistence error, got %v", err)
	}
	if again := Persistence("commit", err); again != err {
		t.Fatalf("expected already wrapped error to pass through, got %v", again)
	}
}
