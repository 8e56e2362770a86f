package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	tests := map[string]struct {
		category Category
		want     string
	}{
		"validation":   {category: Validation, want: "Validation Error"},
		"conflict":     {category: Conflict, want: "Conflict Error"},
		"precondition": {category: Precondition, want: "Precondition Error"},
		"external":     {category: External, want: "External Tool Error"},
		"unknown":      {category: Category(99), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := map[string]struct {
		err      *ReleaseError
		category Category
	}{
		"validation":   {err: NewValidationError("bad input", "fix it"), category: Validation},
		"conflict":     {err: NewConflictError("mutually exclusive"), category: Conflict},
		"precondition": {err: NewPreconditionError("not ready"), category: Precondition},
		"external":     {err: NewExternalError("tool failed"), category: External},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.NotEmpty(t, tt.err.Message)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("underlying failure")
	wrapped := Wrap(cause, External, "try again")

	require.NotNil(t, wrapped)
	assert.Equal(t, External, wrapped.Category)
	assert.Equal(t, "underlying failure", wrapped.Error())
	assert.Equal(t, []string{"try again"}, wrapped.Remediation)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, External))
	assert.Nil(t, WrapWithMessage(nil, External, "context"))
}

func TestWrapWithMessage(t *testing.T) {
	cause := stderrors.New("exit status 1")
	wrapped := WrapWithMessage(cause, External, "running uv")

	require.NotNil(t, wrapped)
	assert.Equal(t, "running uv: exit status 1", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestAsReleaseError(t *testing.T) {
	relErr := NewConflictError("conflict")
	assert.Equal(t, relErr, AsReleaseError(relErr))

	// A ReleaseError buried in a wrap chain is still found.
	chained := WrapWithMessage(relErr, External, "outer")
	found := AsReleaseError(chained)
	require.NotNil(t, found)
	assert.Equal(t, External, found.Category)

	assert.Nil(t, AsReleaseError(stderrors.New("plain")))
	assert.Nil(t, AsReleaseError(nil))
}

func TestIsCategory(t *testing.T) {
	err := NewPreconditionError("not ready")
	assert.True(t, IsCategory(err, Precondition))
	assert.False(t, IsCategory(err, Validation))
	assert.False(t, IsCategory(stderrors.New("plain"), Precondition))
	assert.False(t, IsCategory(nil, Precondition))
}
