package dict

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrWordNotFound = errors.New("word not in dictionary")

// Entry is a single dictionary word with its definition.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Dictionary pairs the definitions with the prefix index built from them.
type Dictionary struct {
	definitions map[string]string
	index       *PrefixIndex
}

// New builds a Dictionary from a word -> definition mapping. Words must
// already be uppercase A-Z; the loader is responsible for normalising them.
func New(definitions map[string]string) (*Dictionary, error) {
	if len(definitions) == 0 {
		return nil, errors.New("dictionary: no words")
	}

	index := NewPrefixIndex()
	defs := make(map[string]string, len(definitions))
	for word, def := range definitions {
		if err := index.Insert(word); err != nil {
			return nil, fmt.Errorf("dictionary: %w", err)
		}
		defs[word] = def
	}

	return &Dictionary{definitions: defs, index: index}, nil
}

// Index returns the read-only prefix index.
func (d *Dictionary) Index() *PrefixIndex {
	return d.index
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return d.index.Len()
}

// MaxWordLen returns the length of the longest word, which bounds search depth.
func (d *Dictionary) MaxWordLen() int {
	return d.index.MaxWordLen()
}

// Contains reports whether word (any case) is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	return d.index.IsWord(strings.ToUpper(word))
}

// Define returns the definition of word (any case).
func (d *Dictionary) Define(word string) (*Entry, error) {
	w := strings.ToUpper(strings.TrimSpace(word))
	def, ok := d.definitions[w]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWordNotFound, w)
	}
	return &Entry{Word: w, Definition: def}, nil
}

// Entries returns every entry sorted by word.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, 0, len(d.definitions))
	for w, def := range d.definitions {
		out = append(out, Entry{Word: w, Definition: def})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}
