package handlers

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/campusmart/internal/models"
)

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fiber.Error, got %T: %v", err, err)
	}
	return fe.Code
}

func TestEnsureOwner(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	item := &models.Item{SellerID: owner}

	if err := ensureOwner(item, owner); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}

	err := ensureOwner(item, uuid.New())
	if err == nil {
		t.Fatal("non-owner accepted")
	}
	if got := fiberStatus(t, err); got != fiber.StatusForbidden {
		t.Fatalf("status = %d, want %d", got, fiber.StatusForbidden)
	}
}

func TestItemRequestValidate(t *testing.T) {
	t.Parallel()

	valid := itemRequest{
		Title:         "Cycle",
		Description:   "Barely used",
		Price:         1200,
		Category:      "Cycles",
		Images:        []string{"/uploads/a.jpg"},
		ContactNumber: "9999999999",
	}

	cases := []struct {
		name   string
		mutate func(r *itemRequest)
		valid  bool
	}{
		{name: "complete request", mutate: func(r *itemRequest) {}, valid: true},
		{name: "free item", mutate: func(r *itemRequest) { r.Price = 0 }, valid: true},
		{name: "missing title", mutate: func(r *itemRequest) { r.Title = "" }},
		{name: "missing description", mutate: func(r *itemRequest) { r.Description = "" }},
		{name: "missing category", mutate: func(r *itemRequest) { r.Category = "" }},
		{name: "missing contact", mutate: func(r *itemRequest) { r.ContactNumber = "" }},
		{name: "negative price", mutate: func(r *itemRequest) { r.Price = -1 }},
		{name: "no images", mutate: func(r *itemRequest) { r.Images = nil }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := valid
			req.Images = append([]string(nil), valid.Images...)
			tc.mutate(&req)

			err := req.validate()
			if tc.valid {
				if err != nil {
					t.Fatalf("valid request rejected: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("invalid request accepted")
			}
			if got := fiberStatus(t, err); got != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want %d", got, fiber.StatusBadRequest)
			}
		})
	}
}
