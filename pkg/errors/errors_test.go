package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := New(CodeConversionFailure, "obabel exited non-zero")
	assert.Equal(t, "[CONV_001] obabel exited non-zero", err.Error())

	withDetail := err.WithDetail("molecule=aspirin")
	assert.Equal(t, "[CONV_001] obabel exited non-zero: molecule=aspirin", withDetail.Error())
	// The original is not mutated.
	assert.Empty(t, err.Detail)
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeDockingFailure, "should vanish"))
}

func TestWrap_PreservesInnerCodeOnUnknown(t *testing.T) {
	inner := New(CodeToolNotFound, "vina not on PATH")
	wrapped := Wrap(inner, CodeUnknown, "startup validation failed")
	assert.Equal(t, CodeToolNotFound, wrapped.Code)
	assert.True(t, stderrors.Is(wrapped, wrapped))

	var ae *AppError
	require.True(t, stderrors.As(wrapped, &ae))
}

func TestWrap_UnwrapChain(t *testing.T) {
	root := fmt.Errorf("exit status 1")
	wrapped := Wrap(root, CodeDockingFailure, "vina failed")
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
	assert.True(t, stderrors.Is(wrapped, root))
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeEmptyStructure, "no atoms"))
	assert.True(t, IsCode(err, CodeEmptyStructure))
	assert.False(t, IsCode(err, CodeDockingFailure))
	assert.False(t, IsCode(nil, CodeEmptyStructure))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(fmt.Errorf("plain")))
	assert.Equal(t, CodeInputFormat, GetCode(New(CodeInputFormat, "bad table")))
}

func TestIsFatal(t *testing.T) {
	fatal := []ErrorCode{
		CodeInputFormat, CodeDuplicateName, CodeToolNotFound,
		CodeReceptorPreparation, CodeEmptyStructure,
	}
	for _, code := range fatal {
		assert.True(t, IsFatal(New(code, "x")), "code %s should be fatal", code)
	}
	assert.False(t, IsFatal(New(CodeConversionFailure, "x")))
	assert.False(t, IsFatal(New(CodeDockingFailure, "x")))
	assert.False(t, IsFatal(nil))
}
