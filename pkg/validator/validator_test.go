package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemForm struct {
	ItemID   string `validate:"required,printascii,max=64"`
	Discount string `validate:"omitempty,printascii,max=32"`
}

func TestValidate_Success(t *testing.T) {
	err := Validate(addItemForm{ItemID: "item001"})
	assert.NoError(t, err)
}

func TestValidate_OmitemptySkipsEmptyOptional(t *testing.T) {
	err := Validate(addItemForm{ItemID: "item001", Discount: ""})
	assert.NoError(t, err)
}

func TestValidate_RequiredMissing(t *testing.T) {
	err := Validate(addItemForm{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "ItemID")
	assert.Contains(t, vErr.Error(), "is required")
}

func TestValidate_MaxExceeded(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	err := Validate(addItemForm{ItemID: string(long)})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "must be at most 64 characters")
}

func TestValidate_PrintASCII(t *testing.T) {
	err := Validate(addItemForm{ItemID: "item\x01"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "must contain only printable characters")
}

func TestValidationError_Fields(t *testing.T) {
	err := Validate(addItemForm{Discount: "ok"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	fields := vErr.Fields()
	assert.Equal(t, "is required", fields["ItemID"])
	assert.NotContains(t, fields, "Discount")
}
