package merge

import (
	"github.com/pkg/errors"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/traverse"
)

// Replacement says that From, reachable from Root, should be replaced by To.
type Replacement struct {
	Root omni.TypeOwner
	From omni.Type
	To   omni.Type
}

type coordinate struct {
	typeDepth, useDepth int
}

type bucketEntry struct {
	root int
	t    omni.Type
}

type bucket struct {
	entries []bucketEntry
}

func (b *bucket) contains(t omni.Type) bool {
	for _, e := range b.entries {
		if e.t == t {
			return true
		}
	}
	return false
}

// GetReplacements finds types that are structurally identical across roots.
//
// Every node is hashed deepest first, in lock-step across roots so that a
// node's dependencies are always hashed before it. Each group of two or more
// equal nodes yields one Replacement per member, all pointing at the first
// member found. Primitives and nulls are hashed but never reported.
// The roots are not modified; see ApplyReplacements.
func GetReplacements(roots ...omni.TypeOwner) []Replacement {
	queues := make([][]*traverse.BFSContext, len(roots))
	hashers := make([]*Hasher, len(roots))
	for i, root := range roots {
		var list []*traverse.BFSContext
		traverse.BreadthFirst([]omni.TypeOwner{root}, true, func(ctx *traverse.BFSContext) bool {
			list = append(list, ctx)
			return true
		})
		for l, r := 0, len(list)-1; l < r; l, r = l+1, r-1 {
			list[l], list[r] = list[r], list[l]
		}
		queues[i] = list
		hashers[i] = NewHasher()
	}

	index := map[string]*bucket{}
	var buckets []*bucket
	for {
		var current coordinate
		found := false
		for _, q := range queues {
			if len(q) > 0 {
				current = coordinate{q[0].TypeDepth, q[0].UseDepth}
				found = true
				break
			}
		}
		if !found {
			break
		}

		for i := range queues {
			for len(queues[i]) > 0 && (coordinate{queues[i][0].TypeDepth, queues[i][0].UseDepth}) == current {
				ctx := queues[i][0]
				queues[i] = queues[i][1:]

				digest := hashers[i].Hash(ctx.Type, ctx.Parent)
				switch ctx.Type.(type) {
				case *omni.Primitive, *omni.Null:
					continue
				}
				b, ok := index[digest]
				if !ok {
					b = &bucket{}
					index[digest] = b
					buckets = append(buckets, b)
				}
				if !b.contains(ctx.Type) {
					b.entries = append(b.entries, bucketEntry{root: i, t: ctx.Type})
				}
			}
		}
	}

	var out []Replacement
	for _, b := range buckets {
		if len(b.entries) < 2 {
			continue
		}
		to := b.entries[0].t
		for _, e := range b.entries {
			out = append(out, Replacement{Root: roots[e.root], From: e.t, To: to})
		}
	}
	return out
}

// ApplyReplacements swaps every From for its To inside its Root.
// Replacements whose From is already To are skipped.
func ApplyReplacements(replacements []Replacement, maxDepth int) error {
	for _, r := range replacements {
		if r.From == r.To {
			continue
		}
		if _, err := traverse.SwapType(r.Root, r.From, r.To, maxDepth); err != nil {
			return errors.Wrapf(err, "replace %s", omni.Describe(r.From))
		}
	}
	return nil
}
