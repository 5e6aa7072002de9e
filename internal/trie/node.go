// Package trie implements a minimal-unique-prefix index: an append-only
// prefix tree over identifier strings that can compute, for any inserted
// key, the shortest prefix still distinguishing it from every other key.
package trie

// Node represents having consumed some prefix of one or more inserted keys.
//
// A node with no children is terminal: the path to it spells a complete
// inserted key. There is no explicit end-of-key marker, so a key that is a
// strict prefix of a later insertion gains children and stops being
// recognized as complete.
type Node struct {
	// children maps the next symbol to the child node
	children map[rune]*Node
}

// newNode creates a new trie node
func newNode() *Node {
	return &Node{
		children: make(map[rune]*Node),
	}
}

// Trie is an append-only prefix tree. Keys can be inserted but never removed.
//
// Insert mutates shared node state and must not be called concurrently with
// itself or with queries. Once insertion is finished, Find, Shorten and
// Prefixes are pure reads and safe for concurrent use.
type Trie struct {
	root *Node
}

// New creates a new empty trie
func New() *Trie {
	return &Trie{
		root: newNode(),
	}
}
