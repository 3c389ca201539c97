package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

func TestValidateStructOK(t *testing.T) {
	assert.NoError(t, ValidateStruct(&signupReq{Email: "a@b.io", Password: "longenough"}))
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	err := ValidateStruct(&signupReq{Email: "nope", Password: "short", Role: "root"})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 3)

	byField := map[string]string{}
	for _, fe := range verrs {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "email must be a valid email", byField["email"])
	assert.Equal(t, "password must be at least 8 characters", byField["password"])
	assert.Equal(t, "role must be one of [user admin]", byField["role"])
	assert.Contains(t, err.Error(), "; ")
}
