package trie

import (
	"sort"
)

// MatchKind classifies the outcome of resolving a prefix with Find.
type MatchKind int

const (
	// NoMatch indicates no inserted key begins with the queried prefix.
	NoMatch MatchKind = iota
	// UniqueMatch indicates the prefix resolves to exactly one inserted key.
	UniqueMatch
	// AmbiguousMatch indicates two or more inserted keys share the prefix.
	AmbiguousMatch
)

// FindResult reports the outcome of resolving a prefix against the trie.
type FindResult struct {
	Kind MatchKind

	// Key is the full inserted key. Set for UniqueMatch.
	Key string

	// Prefix holds the symbols consumed past the queried prefix before
	// resolution stopped at a branch. May be empty. Set for AmbiguousMatch.
	Prefix string

	// Branch is the node with two or more children where resolution
	// stopped; its Prefixes method continues the disambiguation. Set for
	// AmbiguousMatch.
	Branch *Node
}

// Insert adds a key to the trie, creating a child node for every symbol not
// already present on the path. Inserting a key twice is a no-op; the empty
// key is rejected.
func (t *Trie) Insert(key string) {
	if key == "" {
		return
	}
	node := t.root
	for _, ch := range key {
		child, exists := node.children[ch]
		if !exists {
			child = newNode()
			node.children[ch] = child
		}
		node = child
	}
}

// Find resolves a prefix against the trie. If some symbol of the prefix has
// no matching child the result is NoMatch. Otherwise the walk continues
// through single-child nodes: reaching a leaf yields UniqueMatch with the
// full key, reaching a node with two or more children yields AmbiguousMatch
// immediately.
func (t *Trie) Find(prefix string) FindResult {
	node := t.root
	for _, ch := range prefix {
		child, exists := node.children[ch]
		if !exists {
			return FindResult{Kind: NoMatch}
		}
		node = child
	}

	var ext []rune
	for {
		switch len(node.children) {
		case 0:
			return FindResult{
				Kind: UniqueMatch,
				Key:  prefix + string(ext),
			}
		case 1:
			for ch, child := range node.children {
				ext = append(ext, ch)
				node = child
			}
		default:
			return FindResult{
				Kind:   AmbiguousMatch,
				Prefix: string(ext),
				Branch: node,
			}
		}
	}
}

// Shorten returns the shortest prefix of key, at least minlen symbols long,
// that uniquely identifies key among all inserted keys. The boolean is false
// when key does not resolve to a complete inserted key, either because it
// was never inserted or because it has since become an interior path.
func (t *Trie) Shorten(key string, minlen int) (string, bool) {
	if key == "" {
		return "", false
	}
	if minlen < 1 {
		minlen = 1
	}

	symbols := []rune(key)

	// nodes[i] is the node reached after consuming symbols[:i+1].
	nodes := make([]*Node, 0, len(symbols))
	node := t.root
	for _, ch := range symbols {
		child, exists := node.children[ch]
		if !exists {
			return "", false
		}
		node = child
		nodes = append(nodes, node)
	}

	// A node that still has children is an interior path, not a complete
	// key.
	if len(nodes[len(nodes)-1].children) != 0 {
		return "", false
	}

	// Scan backward for the last branch point; one symbol past it is
	// enough to disambiguate the key.
	for offset := len(nodes) - 2; offset >= 0; offset-- {
		if len(nodes[offset].children) == 1 {
			continue
		}
		n := offset + 2
		if n < minlen {
			n = minlen
		}
		if n > len(symbols) {
			n = len(symbols)
		}
		return string(symbols[:n]), true
	}

	// The whole path is a single chain, so the key is unique from its
	// first symbol.
	if minlen > len(symbols) {
		minlen = len(symbols)
	}
	return string(symbols[:minlen]), true
}

// Prefixes returns the minimal unique prefix of every inserted key, each at
// least minlen symbols long where the key allows it. The result is sorted.
func (t *Trie) Prefixes(minlen int) []string {
	return t.root.Prefixes(minlen)
}

// Prefixes enumerates the minimal unique prefixes of the keys below this
// node. A leaf yields its accumulated prefix; a single-child node yields its
// prefix once minlen is satisfied; a node with more children always descends
// so each branch gets its own prefix.
func (n *Node) Prefixes(minlen int) []string {
	if minlen < 0 {
		minlen = 0
	}
	var found []string
	n.collect(nil, minlen, &found)
	sort.Strings(found)
	return found
}

// collect recursively gathers prefixes below n; prefix holds the symbols
// consumed so far.
func (n *Node) collect(prefix []rune, minlen int, found *[]string) {
	if len(n.children) == 0 {
		*found = append(*found, string(prefix))
		return
	}
	if len(n.children) == 1 && len(prefix) >= minlen {
		*found = append(*found, string(prefix))
		return
	}
	for ch, child := range n.children {
		child.collect(append(prefix, ch), minlen, found)
	}
}
