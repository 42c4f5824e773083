package engine

// letterValues holds Scrabble tile values for A-Z.
var letterValues = [26]int{
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3, // A-M
	1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10, // N-Z
}

// LetterValue returns the tile value of l; non-letters score 0.
func LetterValue(l Letter) int {
	if !l.IsLetter() {
		return 0
	}
	return letterValues[l-'A']
}

// Score values the word traced by path on g: the path length times the sum
// of its letter values, doubled once for every multiplier cell on the path.
func Score(g Grid, path []Coord) int {
	sum, mult := 0, 0
	for _, c := range path {
		if !g.InBounds(c) {
			continue
		}
		cell := g.At(c)
		sum += LetterValue(cell.Letter)
		if cell.Multiplier {
			mult++
		}
	}
	return len(path) * sum << mult
}

// ScoreWord values word as if traced through the given number of multiplier
// cells.
func ScoreWord(word string, multipliers int) int {
	sum := 0
	for i := 0; i < len(word); i++ {
		sum += LetterValue(Letter(upper(word[i])))
	}
	return len(word) * sum << multipliers
}
