// Package blockseq implements the sibling-order math for block sequences.
//
// The server stores an integer order per block; gaps can appear after partial
// writes, so the client renormalizes every sibling to a dense 0-based
// sequence after each insertion, deletion, or move and persists the full set.
package blockseq

import (
	"sort"

	"nota-cli/internal/model"
)

// SortByOrder sorts blocks in place the way the server lists them:
// order, then created-at, then id.
func SortByOrder(blocks []model.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Renormalize returns a copy with order reassigned to 0..n-1 matching slice
// position.
func Renormalize(blocks []model.Block) []model.Block {
	out := make([]model.Block, len(blocks))
	copy(out, blocks)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Move returns the renormalized sequence after removing the block at from and
// reinserting it at to. The drop target's index is used verbatim as the
// insertion index post-removal; from == to is a no-op (the input is still
// renormalized so callers can rely on dense orders).
func Move(blocks []model.Block, from, to int) []model.Block {
	if from < 0 || from >= len(blocks) || to < 0 || to >= len(blocks) || from == to {
		return Renormalize(blocks)
	}
	out := make([]model.Block, 0, len(blocks))
	out = append(out, blocks[:from]...)
	out = append(out, blocks[from+1:]...)

	rest := out
	out = make([]model.Block, 0, len(blocks))
	out = append(out, rest[:to]...)
	out = append(out, blocks[from])
	out = append(out, rest[to:]...)
	return Renormalize(out)
}

// Remove returns the renormalized sequence without the block with the given id.
func Remove(blocks []model.Block, id int64) []model.Block {
	out := make([]model.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return Renormalize(out)
}

// AppendOrder is the order assigned to a newly created block: the current
// sibling count, placing it last.
func AppendOrder(blocks []model.Block) int {
	return len(blocks)
}

// OrderPayload builds the full {id, order} set for the batched reorder call.
func OrderPayload(blocks []model.Block) []model.BlockOrder {
	out := make([]model.BlockOrder, len(blocks))
	for i, b := range blocks {
		out[i] = model.BlockOrder{ID: b.ID, Order: i}
	}
	return out
}

// IndexOf returns the slice index of the block with the given id, or -1.
func IndexOf(blocks []model.Block, id int64) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
