package dict

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// HeaderLines is the number of leading lines a word list file carries
// before its first entry.
const HeaderLines = 2

//go:embed default_words.txt
var embeddedWords string

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// LoadStats summarises a word list parse.
type LoadStats struct {
	Lines   int // entry lines seen (header excluded)
	Words   int // entries accepted
	Skipped int // malformed lines dropped
}

// ParseWordList reads the tab separated word list format:
//
//	<header line>
//	<header line>
//	WORD<TAB>definition
//	...
//
// Words are upper-cased. Lines with no tab, an empty word, or characters
// outside A-Z are skipped. A later duplicate overwrites an earlier one.
func ParseWordList(r io.Reader) (map[string]string, LoadStats, error) {
	var stats LoadStats
	out := make(map[string]string)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo <= HeaderLines {
			continue
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		word, def, ok := strings.Cut(line, "\t")
		word = strings.ToUpper(strings.TrimSpace(word))
		if !ok || !isUpperAlpha(word) {
			stats.Skipped++
			log.Debug().Int("line", lineNo).Str("text", line).Msg("skipping malformed dictionary line")
			continue
		}

		out[word] = strings.TrimSpace(def)
		stats.Words++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read word list: %w", err)
	}
	return out, stats, nil
}

// LoadFile parses the word list at path and builds a Dictionary.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	defs, stats, err := ParseWordList(f)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("words", stats.Words).
		Int("skipped", stats.Skipped).
		Msg("loaded dictionary")

	return New(defs)
}

// Default returns the dictionary built from the embedded word list. It is
// built once and shared.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		defs, _, err := ParseWordList(strings.NewReader(embeddedWords))
		if err != nil {
			defaultErr = err
			return
		}
		defaultDict, defaultErr = New(defs)
	})
	return defaultDict, defaultErr
}

// isUpperAlpha reports whether s is non-empty and only A-Z.
func isUpperAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
