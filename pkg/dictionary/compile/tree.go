// Package compile implements the offline dictionary compiler (spec.md
// §4.2.6): it takes an iterator of (outline, command-list, tag) entries
// and produces the binary format pkg/dictionary reads.
//
// Tree-build and prefix-length heuristic ported from
// original_source/code/shittyengine/src/compile/tree.rs (build_tree,
// calculate_prefix_length); translation dedup from
// .../compile/translations.rs; the round-trip self-check from
// compile/mod.rs's Compiler::compile_from_json.
package compile

import (
	"fmt"
	"sort"

	"github.com/chordforge/steno/pkg/command"
)

// DefaultMaxPrefixArrayBytes bounds how many bytes a single node's prefix
// (key) array may occupy, so a node fits in one bounded I/O read (spec.md
// §4.2.6 step 2: "the largest length such that the number of distinct
// prefix_length-byte children times prefix_length does not exceed an
// implementation-defined bound").
const DefaultMaxPrefixArrayBytes = 256

// rawEntry is one dictionary entry reduced to its raw stroke bytes.
type rawEntry struct {
	key      []byte
	commands []command.Command
	tag      string
}

// treeNode is an in-memory radix tree node under construction, mirroring
// the original TreeNode/Child split: a child is either a leaf (a single
// translation, no sub-node needed) or a further tree node.
type treeNode struct {
	children     []treeChild
	leafData     []command.Command // set if an outline ends exactly at this node
	prefixLength int
}

type treeChild struct {
	prefix []byte
	leaf   []command.Command
	sub    *treeNode
}

func (c *treeChild) isLeaf() bool { return c.sub == nil }

// buildTree recursively partitions entries by shared byte prefixes,
// ported from build_tree in compile/tree.rs.
func buildTree(entries []rawEntry, maxPrefixArrayBytes int) (*treeNode, error) {
	prefixLength := calculatePrefixLength(entries, maxPrefixArrayBytes)

	groups := make(map[string][]rawEntry)
	var groupOrder []string

	var leafData []command.Command
	haveLeaf := false
	var leafTag string

	for _, e := range entries {
		if len(e.key) == 0 {
			if haveLeaf {
				return nil, fmt.Errorf("%w: outlines %q and %q", ErrDuplicateOutline, leafTag, e.tag)
			}

			leafData = e.commands
			leafTag = e.tag
			haveLeaf = true

			continue
		}

		split := prefixLength
		if split > len(e.key) {
			split = len(e.key)
		}

		prefix := string(e.key[:split])
		remainder := rawEntry{key: e.key[split:], commands: e.commands, tag: e.tag}

		if _, ok := groups[prefix]; !ok {
			groupOrder = append(groupOrder, prefix)
		}

		groups[prefix] = append(groups[prefix], remainder)
	}

	sort.Strings(groupOrder)

	node := &treeNode{leafData: leafData, prefixLength: prefixLength}
	if !haveLeaf {
		node.leafData = nil
	}

	for _, prefix := range groupOrder {
		sub, err := buildTree(groups[prefix], maxPrefixArrayBytes)
		if err != nil {
			return nil, err
		}

		child := treeChild{prefix: []byte(prefix)}

		if len(sub.children) == 0 {
			child.leaf = sub.leafData
		} else {
			child.sub = sub
		}

		node.children = append(node.children, child)
	}

	return node, nil
}

// calculatePrefixLength chooses the per-node prefix chunk length, ported
// from calculate_prefix_length in compile/tree.rs.
func calculatePrefixLength(entries []rawEntry, maxPrefixArrayBytes int) int {
	prefixLength := 1

	maxPrefixLength := -1
	for _, e := range entries {
		if maxPrefixLength == -1 || len(e.key) < maxPrefixLength {
			maxPrefixLength = len(e.key)
		}
	}

	if maxPrefixLength <= 0 {
		if maxPrefixLength < 0 {
			return 1
		}

		return 0
	}

	for current := 1; current < maxPrefixLength; current++ {
		unique := make(map[string]bool)

		for _, e := range entries {
			cut := current
			if cut > len(e.key) {
				cut = len(e.key)
			}

			unique[string(e.key[:cut])] = true
		}

		if len(unique) == 0 || len(unique)*current > maxPrefixArrayBytes {
			break
		}

		prefixLength = current
	}

	return prefixLength
}

// commandLists collects every leaf/node translation reachable from n
// (duplicates included; newTranslationPointers deduplicates them), in the
// same depth-first order serialize will walk, so the translation blob's
// write order and the tree's own traversal agree.
func (n *treeNode) commandLists() [][]command.Command {
	var out [][]command.Command

	if n.leafData != nil {
		out = append(out, n.leafData)
	}

	for _, c := range n.children {
		if c.isLeaf() {
			out = append(out, c.leaf)
		} else {
			out = append(out, c.sub.commandLists()...)
		}
	}

	return out
}
