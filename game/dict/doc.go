// Package dict holds the word list used by the solver.
//
// The package provides:
//   - PrefixIndex: an arena-backed trie answering prefix and membership queries
//   - Dictionary: the prefix index plus word definitions
//   - ParseWordList / LoadFile / Default: readers for the tab separated word
//     list format (two header lines, then WORD<TAB>definition per line)
//   - SQLiteStore: an optional SQLite backing store for large word lists
//
// Usage:
//
//	d, err := dict.LoadFile("words.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	idx := d.Index()
//	idx.HasPrefix("CA") // true when any word starts with CA
//	idx.IsWord("CAT")   // true when CAT itself is a word
//
// The index is immutable once built and is safe to share between goroutines.
package dict
