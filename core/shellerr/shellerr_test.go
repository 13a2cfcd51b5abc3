package shellerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipetkov/conch-runtime-go/core/shellerr"
)

func TestFatalKinds(t *testing.T) {
	assert.True(t, shellerr.Expansion("arith", errors.New("boom")).IsFatal())
	assert.False(t, shellerr.Command("exec", "ls", errors.New("not found")).IsFatal())
	assert.False(t, shellerr.RedirectStructural("open", "/tmp/x", errors.New("ambiguous")).IsFatal())
	assert.False(t, shellerr.RedirectIO("write", "/tmp/x", errors.New("disk full")).IsFatal())
}

func TestIsFatalUnwrapsWrappedError(t *testing.T) {
	inner := shellerr.Command("exec", "ls", errors.New("enoent"))
	wrapped := fmt.Errorf("running simple command: %w", inner)
	assert.False(t, shellerr.IsFatal(wrapped))

	fatal := shellerr.Expansion("arith", errors.New("div by zero"))
	assert.True(t, shellerr.IsFatal(fmt.Errorf("evaluating word: %w", fatal)))
}

func TestIsFatalDefaultsTrueForUnclassifiedError(t *testing.T) {
	assert.True(t, shellerr.IsFatal(errors.New("unexpected")))
	assert.False(t, shellerr.IsFatal(nil))
}

func TestErrorMessageFormatting(t *testing.T) {
	withTarget := shellerr.RedirectIO("write", "/tmp/out", errors.New("disk full"))
	assert.Equal(t, "write /tmp/out: disk full", withTarget.Error())

	noTarget := shellerr.Expansion("arith", errors.New("division by zero"))
	assert.Equal(t, "arith: division by zero", noTarget.Error())
}
