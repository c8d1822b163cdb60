package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestLabelParsedOnce(t *testing.T) {
	a, err := Label()
	require.NoError(t, err)
	b, err := Label()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestFace(t *testing.T) {
	small, err := Face(10)
	require.NoError(t, err)
	large, err := Face(20)
	require.NoError(t, err)

	w10 := font.MeasureString(small, "tile")
	w20 := font.MeasureString(large, "tile")
	assert.Positive(t, int(w10))
	assert.Greater(t, w20, w10, "larger faces measure wider")
}
