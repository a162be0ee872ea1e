package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/users-api/pkg/validator"
)

type register struct {
	Email       string  `json:"email" validate:"required,min=5,max=60,email,email_suffix"`
	Password    string  `json:"password" validate:"required,min=5,max=100,eqfield=NewPassword"`
	NewPassword string  `json:"new_password" validate:"required,min=5,max=100"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=50"`
}

type listQuery struct {
	Limit *int `query:"limit" validate:"omitempty,gte=1,lte=25"`
}

func TestStruct_Valid(t *testing.T) {
	r := register{Email: "ann@example.com", Password: "secret", NewPassword: "secret"}
	assert.Nil(t, validator.Struct(&r))
}

func TestStruct_MessagesKeyedByJSONName(t *testing.T) {
	r := register{Email: "", Password: "abc", NewPassword: "abcdef"}

	errs := validator.Struct(&r)

	assert.Equal(t, "field is required", errs["email"])
	assert.Equal(t, "invalid field length", errs["password"])
	assert.NotContains(t, errs, "new_password")
}

func TestStruct_PasswordMismatch(t *testing.T) {
	r := register{Email: "ann@example.com", Password: "secret1", NewPassword: "secret2"}

	errs := validator.Struct(&r)

	assert.Equal(t, map[string]string{"password": "not match with new password"}, errs)
}

func TestStruct_EmailFormats(t *testing.T) {
	r := register{Email: "not-an-email", Password: "secret", NewPassword: "secret"}
	assert.Equal(t, "invalid email value", validator.Struct(&r)["email"])

	r.Email = "ann@example.c"
	assert.Equal(t, "invalid email format", validator.Struct(&r)["email"])
}

func TestStruct_QueryTagAndRange(t *testing.T) {
	over := 26
	errs := validator.Struct(&listQuery{Limit: &over})
	assert.Equal(t, map[string]string{"limit": "invalid range value"}, errs)

	assert.Nil(t, validator.Struct(&listQuery{}))
}

func TestStruct_OptionalFieldLength(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"
	r := register{Email: "ann@example.com", Password: "secret", NewPassword: "secret", FirstName: &long}

	assert.Equal(t, map[string]string{"first_name": "invalid field length"}, validator.Struct(&r))
}
