package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorLocation(t *testing.T) {
	err := New(CodeUndefinedReference, `undefined template "x"`).At("power card Fireball")
	assert.Equal(t, `power card Fireball: undefined template "x"`, err.Error())

	outer := err.At("powers")
	assert.Equal(t, `powers, power card Fireball: undefined template "x"`, outer.Error())
	assert.Equal(t, "power card Fireball", err.Location, "At must not mutate the receiver")
}

func TestErrorIsByCode(t *testing.T) {
	err := fmt.Errorf("compile: %w", Newf(CodeDependencyCycle, "cycle at %q", "a"))
	assert.True(t, HasCode(err, CodeDependencyCycle))
	assert.False(t, HasCode(err, CodeOutOfBounds))
	assert.Equal(t, CodeDependencyCycle, CodeOf(err))
	assert.Equal(t, CodeUnknown, CodeOf(stderrors.New("plain")))
}

func TestLocateWrapsForeignErrors(t *testing.T) {
	err := Locate(stderrors.New("bad size"), "squares")
	assert.Equal(t, CodeSchemaViolation, CodeOf(err))
	assert.Equal(t, "squares: bad size", err.Error())
	assert.NoError(t, Locate(nil, "anything"))
}

func TestWithMetadata(t *testing.T) {
	base := New(CodeDuplicateDefinition, "dup")
	err := base.With("symbol", "P")
	assert.Equal(t, "P", err.Metadata["symbol"])
	assert.Nil(t, base.Metadata)
}
