package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	t.Run("no missing field", func(t *testing.T) {
		var f Fields
		f.Require("description", true)
		f.Require("amount", true)

		assert.NoError(t, f.Err())
	})

	t.Run("missing fields are listed in order", func(t *testing.T) {
		var f Fields
		f.Require("description", false)
		f.Require("amount", true)
		f.Require("category", false)

		err := f.Err()

		require.Error(t, err)
		assert.Equal(t, "missing required field(s): description, category", err.Error())
		v, ok := As(fmt.Errorf("create expense: %w", err))
		require.True(t, ok)
		assert.Equal(t, []string{"description", "category"}, v.Fields)
	})
}

func TestAs_OtherError(t *testing.T) {
	_, ok := As(fmt.Errorf("boom"))
	assert.False(t, ok)
}
