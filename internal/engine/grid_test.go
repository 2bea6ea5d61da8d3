package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridFromRowsRejectsBadInput(t *testing.T) {
	_, err := GridFromRows(nil)
	assert.Error(t, err)

	_, err = GridFromRows([][]Symbol{{Low1, Low2}, {Low1}})
	assert.Error(t, err)

	_, err = GridFromRows([][]Symbol{{Low1, "zz"}})
	assert.Error(t, err)
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, "l1 l2", "s w")
	c := g.Clone()
	c.Set(0, 0, Mult7)

	assert.Equal(t, Low1, g.At(0, 0))
	assert.Equal(t, Mult7, c.At(0, 0))
	assert.Equal(t, 1, g.Count(Scatter))
}

func TestGridValidateReportsEmptyCell(t *testing.T) {
	g := mustGrid(t, "l1 l2", "s w")
	require.NoError(t, g.Validate())

	g.Set(1, 0, Empty)
	assert.ErrorContains(t, g.Validate(), "(1,0)")
}

func TestGridJSON(t *testing.T) {
	g := mustGrid(t, "l1 2X", "s w")
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `[["l1","2X"],["s","w"]]`, string(data))

	data, err = json.Marshal([]Position{{Row: 3, Col: 5}})
	require.NoError(t, err)
	assert.JSONEq(t, `[[3,5]]`, string(data))

	var parsed Grid
	assert.Error(t, json.Unmarshal([]byte(`[["l1","bad"]]`), &parsed))
}
