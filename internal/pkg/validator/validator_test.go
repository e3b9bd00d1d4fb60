package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(&sample{Name: "Jane", Email: "jane@acme.com"}))

	errs := Validate(&sample{Email: "not-an-email"})
	assert.Equal(t, "required", errs["Name"])
	assert.Equal(t, "email", errs["Email"])
}

func TestVar(t *testing.T) {
	assert.True(t, Var("jane@acme.com", "email"))
	assert.False(t, Var("jane", "email"))
}
