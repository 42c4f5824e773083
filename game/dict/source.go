package dict

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Source selects where the dictionary is read from.
type Source struct {
	File string // word list in the words.txt format
	DB   string // SQLite database path
}

// Load resolves the source. With DB set the SQLite store is used; an empty
// store is seeded from File, or from the embedded list when File is unset.
// Without DB, File is parsed, falling back to the embedded list.
func (s Source) Load(ctx context.Context) (*Dictionary, error) {
	if s.DB == "" {
		if s.File != "" {
			return LoadFile(s.File)
		}
		return Default()
	}

	store, err := OpenStore(s.DB)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	n, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		seed, err := Source{File: s.File}.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed dictionary db: %w", err)
		}
		if _, err := store.Import(ctx, seed.definitions); err != nil {
			return nil, err
		}
	} else if s.File != "" {
		log.Warn().Str("db", s.DB).Str("file", s.File).Msg("dictionary db already populated, ignoring word list")
	}

	d, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Str("db", s.DB).Int("words", d.Len()).Msg("loaded dictionary from sqlite")
	return d, nil
}
