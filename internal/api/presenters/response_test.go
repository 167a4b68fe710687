package presenters

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"yummy-backend/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.Join(domain.NewNotFoundError("recipe", "x"), domain.ErrRecipeNotFound), fiber.StatusNotFound},
		{domain.NewValidationError("slug", errors.New("bad")), fiber.StatusBadRequest},
		{domain.NewIntegrityError("save", domain.ErrDuplicatePath), fiber.StatusConflict},
		{fmt.Errorf("wrapped: %w", domain.ErrTokenExpired), fiber.StatusUnauthorized},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
