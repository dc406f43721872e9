package blockseq

import (
	"testing"
	"time"

	"nota-cli/internal/model"
)

func mkBlocks(ids ...int64) []model.Block {
	out := make([]model.Block, len(ids))
	for i, id := range ids {
		out[i] = model.Block{ID: id, Type: model.BlockText, Order: i}
	}
	return out
}

func assertIDs(t *testing.T, blocks []model.Block, want ...int64) {
	t.Helper()
	if len(blocks) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(blocks), len(want))
	}
	for i := range blocks {
		if blocks[i].ID != want[i] {
			t.Fatalf("position %d: got id %d want %d", i, blocks[i].ID, want[i])
		}
		if blocks[i].Order != i {
			t.Fatalf("position %d: order %d not dense", i, blocks[i].Order)
		}
	}
}

func TestMove_Down(t *testing.T) {
	got := Move(mkBlocks(1, 2, 3, 4), 0, 2)
	assertIDs(t, got, 2, 3, 1, 4)
}

func TestMove_Up(t *testing.T) {
	got := Move(mkBlocks(1, 2, 3, 4), 3, 1)
	assertIDs(t, got, 1, 4, 2, 3)
}

func TestMove_SameIndexIsNoOp(t *testing.T) {
	got := Move(mkBlocks(1, 2, 3), 1, 1)
	assertIDs(t, got, 1, 2, 3)
}

func TestMove_OutOfRangeIsNoOp(t *testing.T) {
	got := Move(mkBlocks(1, 2, 3), 5, 0)
	assertIDs(t, got, 1, 2, 3)
	got = Move(mkBlocks(1, 2, 3), 0, -1)
	assertIDs(t, got, 1, 2, 3)
}

func TestRenormalize_DensifiesGaps(t *testing.T) {
	blocks := mkBlocks(1, 2, 3)
	blocks[0].Order = 3
	blocks[1].Order = 7
	blocks[2].Order = 9
	got := Renormalize(blocks)
	assertIDs(t, got, 1, 2, 3)
}

func TestRemove_Renormalizes(t *testing.T) {
	got := Remove(mkBlocks(1, 2, 3, 4), 2)
	assertIDs(t, got, 1, 3, 4)
}

func TestRemove_LastBlockLeavesEmptyList(t *testing.T) {
	got := Remove(mkBlocks(1), 1)
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d blocks", len(got))
	}
}

func TestAppendOrder_IsSiblingCount(t *testing.T) {
	if got := AppendOrder(nil); got != 0 {
		t.Fatalf("empty list: got %d want 0", got)
	}
	if got := AppendOrder(mkBlocks(1, 2, 3)); got != 3 {
		t.Fatalf("got %d want 3", got)
	}
}

func TestOrderPayload_CoversEverySibling(t *testing.T) {
	payload := OrderPayload(mkBlocks(5, 9, 7))
	if len(payload) != 3 {
		t.Fatalf("expected full sibling set, got %d entries", len(payload))
	}
	for i, p := range payload {
		if p.Order != i {
			t.Fatalf("entry %d: order %d not dense", i, p.Order)
		}
	}
	if payload[0].ID != 5 || payload[1].ID != 9 || payload[2].ID != 7 {
		t.Fatalf("payload ids out of order: %+v", payload)
	}
}

func TestSortByOrder_TieBreaksByCreatedThenID(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	blocks := []model.Block{
		{ID: 3, Order: 0, CreatedAt: t0.Add(time.Hour)},
		{ID: 2, Order: 0, CreatedAt: t0},
		{ID: 1, Order: 0, CreatedAt: t0},
	}
	SortByOrder(blocks)
	if blocks[0].ID != 1 || blocks[1].ID != 2 || blocks[2].ID != 3 {
		t.Fatalf("unexpected order: %d %d %d", blocks[0].ID, blocks[1].ID, blocks[2].ID)
	}
}
