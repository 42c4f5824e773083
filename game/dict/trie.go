package dict

import (
	"errors"
	"fmt"
)

// AlphabetSize is the number of child slots per trie node (A-Z).
const AlphabetSize = 26

// NoNode is returned by Step when the prefix has no continuation.
const NoNode = -1

var ErrInvalidWord = errors.New("invalid dictionary word")

// node is one fixed-size record in the arena. Children hold arena indices;
// zero means "no child" because index 0 is always the root and the root is
// never anybody's child.
type node struct {
	children [AlphabetSize]int32
	terminal bool
}

// PrefixIndex is a trie over uppercase A-Z words stored as a flat arena of
// nodes. It is built once and is read-only afterwards, so it can be shared
// by any number of concurrent readers.
type PrefixIndex struct {
	nodes      []node
	words      int
	maxWordLen int
}

// NewPrefixIndex creates an empty index holding only the root node.
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{nodes: make([]node, 1, 1024)}
}

// Insert adds word to the index. Inserting the same word twice is a no-op.
func (p *PrefixIndex) Insert(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidWord)
	}
	for i := 0; i < len(word); i++ {
		if slot(word[i]) < 0 {
			return fmt.Errorf("%w: %q has non A-Z character %q", ErrInvalidWord, word, word[i])
		}
	}

	cur := 0
	for i := 0; i < len(word); i++ {
		s := slot(word[i])
		next := p.nodes[cur].children[s]
		if next == 0 {
			p.nodes = append(p.nodes, node{})
			next = int32(len(p.nodes) - 1)
			p.nodes[cur].children[s] = next
		}
		cur = int(next)
	}

	if !p.nodes[cur].terminal {
		p.nodes[cur].terminal = true
		p.words++
		if len(word) > p.maxWordLen {
			p.maxWordLen = len(word)
		}
	}
	return nil
}

// HasPrefix reports whether at least one inserted word starts with s.
// The empty string is a prefix of everything once a word exists.
func (p *PrefixIndex) HasPrefix(s string) bool {
	n := p.walk(s)
	if n == NoNode {
		return false
	}
	return n != 0 || p.words > 0
}

// IsWord reports whether s was inserted as a complete word.
func (p *PrefixIndex) IsWord(s string) bool {
	n := p.walk(s)
	return n != NoNode && p.nodes[n].terminal
}

// Root returns the node for the empty prefix.
func (p *PrefixIndex) Root() int { return 0 }

// Step follows letter from node n, returning NoNode when no inserted word
// continues the prefix with that letter.
func (p *PrefixIndex) Step(n int, letter byte) int {
	s := slot(letter)
	if n < 0 || n >= len(p.nodes) || s < 0 {
		return NoNode
	}
	next := p.nodes[n].children[s]
	if next == 0 {
		return NoNode
	}
	return int(next)
}

// Terminal reports whether node n ends a complete word.
func (p *PrefixIndex) Terminal(n int) bool {
	return n >= 0 && n < len(p.nodes) && p.nodes[n].terminal
}

// Len returns the number of distinct words inserted.
func (p *PrefixIndex) Len() int { return p.words }

// MaxWordLen returns the length of the longest inserted word.
func (p *PrefixIndex) MaxWordLen() int { return p.maxWordLen }

// NodeCount returns the number of arena records, root included.
func (p *PrefixIndex) NodeCount() int { return len(p.nodes) }

func (p *PrefixIndex) walk(s string) int {
	cur := 0
	for i := 0; i < len(s); i++ {
		cur = p.Step(cur, s[i])
		if cur == NoNode {
			return NoNode
		}
	}
	return cur
}

// slot maps an uppercase ASCII letter to 0..25, anything else to -1.
func slot(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
