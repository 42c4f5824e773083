package engine

import (
	"sort"
	"strings"
)

// RankFound sorts found by descending score. Ties keep discovery order.
func RankFound(found []Found) {
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Score > found[j].Score
	})
}

// UniqueWords keeps the first entry for each word. Run it on a ranked slice
// to keep the best path per word.
func UniqueWords(found []Found) []Found {
	seen := make(map[string]bool, len(found))
	out := make([]Found, 0, len(found))
	for _, f := range found {
		if seen[f.Word] {
			continue
		}
		seen[f.Word] = true
		out = append(out, f)
	}
	return out
}

// FilterMinLength drops words shorter than n letters.
func FilterMinLength(found []Found, n int) []Found {
	out := make([]Found, 0, len(found))
	for _, f := range found {
		if len(f.Word) >= n {
			out = append(out, f)
		}
	}
	return out
}

// FindWord returns every entry spelling word (any case).
func FindWord(found []Found, word string) []Found {
	word = strings.ToUpper(strings.TrimSpace(word))
	var out []Found
	for _, f := range found {
		if f.Word == word {
			out = append(out, f)
		}
	}
	return out
}

// SamePath reports whether a and b visit the same cells in the same order.
func SamePath(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CountMultipliers counts multiplier cells holding a letter.
func CountMultipliers(g Grid) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell.Multiplier && cell.Letter.IsLetter() {
				n++
			}
		}
	}
	return n
}

// CountLetter counts cells holding exactly l.
func CountLetter(g Grid, l Letter) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell.Letter == l {
				n++
			}
		}
	}
	return n
}

// CountLetters counts cells holding any letter.
func CountLetters(g Grid) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell.Letter.IsLetter() {
				n++
			}
		}
	}
	return n
}
