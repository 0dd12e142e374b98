package exceptions

import (
	"clinicroom-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientMessageOf(t *testing.T) {
	t.Run("Custom Error", func(t *testing.T) {
		err := ErrInvalidDate(errors.New("bad"), "2024-13-01")
		assert.Equal(t, err.ClientMessage, ClientMessageOf(err))
	})

	t.Run("Wrapped Custom Error", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", WrapWithoutError(constvars.StatusConflict, "slot taken", "dev"))
		assert.Equal(t, "slot taken", ClientMessageOf(err))
	})

	t.Run("Plain Error", func(t *testing.T) {
		assert.Equal(t, "data API down", ClientMessageOf(errors.New("data API down")))
	})
}
