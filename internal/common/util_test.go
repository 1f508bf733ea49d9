package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestValidationError_As(t *testing.T) {
	err := NewValidationError("Please provide a name")

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Please provide a name", ve.Message)
	assert.Equal(t, "Please provide a name", err.Error())
}
