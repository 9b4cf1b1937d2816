package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_WritesInOrder(t *testing.T) {
	r := NewRecorder(false)
	r.Write(2, Low)
	r.Write(5, High)
	r.Write(2, High)

	assert.Equal(t, []Write{
		{Pin: 2, Level: Low},
		{Pin: 5, Level: High},
		{Pin: 2, Level: High},
	}, r.Writes())
}

func TestRecorder_Last(t *testing.T) {
	r := NewRecorder(false)

	_, ok := r.Last(7)
	assert.False(t, ok, "unwritten pin should report no level")

	r.Write(7, High)
	r.Write(3, High)
	r.Write(7, Low)

	level, ok := r.Last(7)
	require.True(t, ok)
	assert.Equal(t, Low, level)
	assert.Equal(t, 2, r.Count(7))
	assert.Equal(t, 1, r.Count(3))
	assert.Equal(t, 0, r.Count(4))
}

func TestRecorder_WritesReturnsCopy(t *testing.T) {
	r := NewRecorder(false)
	r.Write(1, High)

	writes := r.Writes()
	writes[0].Level = Low

	level, _ := r.Last(1)
	assert.Equal(t, High, level)
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder(true)
	r.Write(1, High)
	r.Reset()

	assert.Empty(t, r.Writes())
	assert.NoError(t, r.Close())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "4:high", Write{Pin: 4, Level: High}.String())
}
