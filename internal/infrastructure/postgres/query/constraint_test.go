package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres/query"
)

func TestMapUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       domain.FieldErrors
	}{
		{"un campo", "users_email_key", domain.FieldErrors{"email": "email already exists"}},
		{"dos campos", "users_email$$$username_key", domain.FieldErrors{"email": "email with username already exists"}},
		{"tres campos", "orders_a$$$b$$$c_key", domain.FieldErrors{"a": "a with b and c already exists"}},
		{"cuatro campos", "t_a$$$b$$$c$$$d_key", domain.FieldErrors{"a": "a with b, c and d already exists"}},
		{"guion bajo en el campo", "users_first_name_key", domain.FieldErrors{"first_name": "first name already exists"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := query.MapUniqueViolation(tt.constraint)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapUniqueViolation_Unrecognized(t *testing.T) {
	for _, c := range []string{
		"",
		"nodelimiter",
		"users_pkey",
		"users__key",
		"users_$$$_key",
		"users_email;drop_key",
		"users_1email_key",
	} {
		t.Run(c, func(t *testing.T) {
			got, ok := query.MapUniqueViolation(c)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}
