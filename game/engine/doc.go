// Package engine provides the board logic for Boggle Blast.
//
// A board is a rectangular Grid of cells. Each cell holds an uppercase
// letter, a blank, or a blocked square, and letter cells may carry a score
// multiplier. The package covers:
//   - Word search: every dictionary word traceable through adjacent cells
//   - Scoring: path length times Scrabble letter values, doubled per multiplier
//   - Collapse: removing a word, blasting its neighbors, and letting columns fall
//   - Board configuration in the column text form and JSON files
//
// Usage:
//
//	d, err := dict.Default()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	e, err := engine.NewEngine(engine.DefaultBoardConfig(), d.Index())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	best := e.GetFound()[0]
//	entry, err := e.Collapse(best.Path)
//
// Game Rules:
//
// Words are at least three letters long and may not reuse a cell. Words
// longer than four letters also clear every orthogonal neighbor of their
// path; blocked cells next to any collapsed word are always cleared. After
// each collapse the board gains a blank row at the bottom and loses any
// all-blank rows at the top. The game is over when no words remain, though
// edits can bring it back.
package engine
