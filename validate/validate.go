// Command validate checks the board JSON files in a configs directory
// (../configs by default). It checks:
//   - JSON structure and required fields (name, description, columns)
//   - Board size limits and allowed characters (a-z, A-Z, '#', '.')
//   - Presence of at least one letter
//   - Playability: the board has at least one dictionary word on it
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single board file. Structural
// problems are all reported; the playability check only runs on a
// structurally valid board.
func validateConfig(filePath string, index *dict.PrefixIndex) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if strings.TrimSpace(config.Name) == "" {
		result.fail("name is required")
	}
	if strings.TrimSpace(config.Description) == "" {
		result.fail("description is required")
	}

	if len(config.Columns) == 0 {
		result.fail("Columns are empty")
	} else if len(config.Columns) > engine.MaxBoardWidth {
		result.fail("Too many columns: %d (max %d)", len(config.Columns), engine.MaxBoardWidth)
	}

	letters := 0
	for i, col := range config.Columns {
		if len(col) > engine.MaxBoardHeight {
			result.fail("Column %d is too tall: %d (max %d)", i+1, len(col), engine.MaxBoardHeight)
		}
		for j, ch := range col {
			switch {
			case (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z'):
				letters++
			case ch == '#' || ch == '.':
			default:
				result.fail("Invalid character '%c' at column %d, position %d", ch, i+1, j+1)
			}
		}
	}
	if len(config.Columns) > 0 && letters == 0 {
		result.fail("Board must contain at least one letter")
	}

	if !result.Valid {
		return result
	}

	playability := validatePlayability(&config, index)
	if !playability.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, playability.Errors...)

	if result.Valid {
		grid, _ := engine.ParseColumns(config.Columns)
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Grid: %dx%d", grid.Rows(), grid.Cols()),
			fmt.Sprintf("✓ Letters: %d", engine.CountLetters(grid)),
			fmt.Sprintf("✓ Multipliers: %d", engine.CountMultipliers(grid)),
			fmt.Sprintf("✓ Blocked: %d", engine.CountLetter(grid, engine.Blocked)),
		)
	}

	return result
}

// validatePlayability solves the board and fails it when no word can be
// traced on it.
func validatePlayability(config *engine.BoardConfig, index *dict.PrefixIndex) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	grid, err := engine.ParseColumns(config.Columns)
	if err != nil {
		result.fail("Cannot parse board: %v", err)
		return result
	}

	found := engine.NewSolver(index).Solve(grid)
	if len(found) == 0 {
		result.fail("No words can be found on the board")
		return result
	}

	engine.RankFound(found)
	unique := engine.UniqueWords(found)
	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Playable: %d words (%d paths)", len(unique), len(found)),
		fmt.Sprintf("✓ Best word: %s (%d points)", found[0].Word, found[0].Score),
	)
	return result
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	configDir := flag.String("dir", "../configs", "Directory containing board files")
	wordList := flag.String("dictionary", os.Getenv("DICTIONARY_FILE"), "Word list file; embedded list when empty")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	words, err := dict.Source{File: *wordList}.Load(context.Background())
	if err != nil {
		fmt.Printf("Error loading dictionary: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding board files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No board files found in %s\n", *configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file, words.Index())

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All boards are valid!")
	} else {
		fmt.Println("❌ Some boards have errors")
		os.Exit(1)
	}
}
