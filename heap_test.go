package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_CollectReclaimsUnreachable(t *testing.T) {
	h := NewHeap(nil)
	for i := 0; i < 10; i++ {
		NewStringCell(h, "garbage")
	}
	before := h.Stats().Live
	require.Equal(t, 10, before)

	collected := h.Collect()
	assert.Equal(t, 10, collected)
	assert.Equal(t, 0, h.Stats().Live)
}

func TestHeap_RootsSurviveCollection(t *testing.T) {
	h := NewHeap(nil)
	kept := NewStringCell(h, "kept")
	h.AddRoot(kept)
	NewStringCell(h, "garbage")

	h.Collect()
	assert.Equal(t, 1, h.Stats().Live)
}

func TestHeap_ValueStackSurvivesCollection(t *testing.T) {
	h := NewHeap(nil)
	var stack []Value
	h.AttachValueStack(&stack)

	stack = append(stack, NewStringCell(h, "on-stack"))
	NewStringCell(h, "garbage")

	h.Collect()
	assert.Equal(t, 1, h.Stats().Live)
}

func TestHeap_AutomaticCollectionRunsEveryBlock(t *testing.T) {
	h := NewHeap(nil)
	for i := 0; i < blockCellCount+1; i++ {
		NewStringCell(h, "x")
	}
	assert.GreaterOrEqual(t, h.Stats().Collections, 1)
}

func TestHeap_NoGCDisablesAutomaticCollection(t *testing.T) {
	config := NewConfig()
	config.SetBool("runtime.no_gc", true)
	h := NewHeap(config)
	for i := 0; i < blockCellCount*2; i++ {
		NewStringCell(h, "x")
	}
	assert.Equal(t, 0, h.Stats().Collections)
}
