package guard_test

import (
	"errors"
	"testing"

	"climasite/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNoteNotConstructed := errors.New("note must be created via newNote")

	type note struct {
		text  string
		guard guard.ConstructorGuard
	}

	newNote := func(text string) (note, error) {
		if text == "" {
			return note{}, errors.New("text is required")
		}
		return note{text: text, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_marks_value_as_constructed", func(t *testing.T) {
		n, err := newNote("customer called")

		require.NoError(t, err)
		require.NoError(t, n.guard.Validate(errNoteNotConstructed))
		assert.Equal(t, "customer called", n.text)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		n, err := newNote("")

		require.Error(t, err)
		assert.ErrorIs(t, n.guard.Validate(errNoteNotConstructed), errNoteNotConstructed)
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		n := note{text: "bypass"}

		assert.Equal(t, errNoteNotConstructed, n.guard.Validate(errNoteNotConstructed))
	})
}
