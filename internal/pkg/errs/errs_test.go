//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"decor-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: errs.Validation("bad input"), want: "VALIDATION_ERROR"},
		{name: "not found", err: errs.NotFound("missing"), want: "NOT_FOUND"},
		{name: "forbidden", err: errs.Forbidden("nope"), want: "FORBIDDEN"},
		{name: "transition", err: errs.Mark(errs.New("cannot"), errs.ErrInvalidTransition), want: "INVALID_TRANSITION"},
		{name: "conflict", err: errs.Conflict("raced"), want: "CONFLICT"},
		{name: "plain error", err: errors.New("boom"), want: ""},
		{name: "wrapped mark survives", err: errs.Wrap(errs.NotFound("missing"), "load"), want: "NOT_FOUND"},
		{name: "fmt wrapped mark survives", err: fmt.Errorf("outer: %w", errs.Forbidden("nope")), want: "FORBIDDEN"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, errs.Kind(c.err))
		})
	}
}

func TestMarkKeepsMessage(t *testing.T) {
	err := errs.Validationf("amount %d is negative", -5)
	assert.Equal(t, "amount -5 is negative", err.Error())
	assert.True(t, errs.Is(err, errs.ErrValidation))
	assert.False(t, errs.Is(err, errs.ErrNotFound))
}
