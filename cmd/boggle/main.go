// Command boggle solves and plays Boggle Blast boards from the terminal.
//
// Subcommands:
//
//	solve   print a board and the words found on it
//	play    blast the best word until the board is empty, locally or
//	        against a running server (--server)
//	define  look words up in the dictionary
//	import  load a words.txt list into a SQLite dictionary
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/boggle-blast/game/config"
	"github.com/wricardo/boggle-blast/game/dict"
	"github.com/wricardo/boggle-blast/game/engine"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "boggle:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "boggle",
		Usage: "Boggle Blast word-grid solver",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dictionary",
				Usage:   "word list file (WORD<TAB>definition); embedded list when empty",
				Sources: cli.EnvVars("DICTIONARY_FILE"),
			},
			&cli.StringFlag{
				Name:    "dictionary-db",
				Usage:   "SQLite dictionary database",
				Sources: cli.EnvVars("DICTIONARY_DB"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "zerolog level",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			lvl, err := zerolog.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("invalid log level %q", cmd.String("log-level"))
			}
			zerolog.SetGlobalLevel(lvl)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.Root().ErrWriter})
			return ctx, nil
		},
		Commands: []*cli.Command{
			solveCommand(),
			playCommand(),
			defineCommand(),
			importCommand(),
		},
	}
}

func boardFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "board",
			Aliases: []string{"b"},
			Usage:   "board name from the config directory",
		},
		&cli.StringFlag{
			Name:  "columns",
			Usage: "comma-separated columns, top to bottom (e.g. \"cd,aO,tg\")",
		},
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "print the board and every word on it, best first",
		Flags: append(boardFlags(),
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "show at most this many words (0 = all)"},
			&cli.IntFlag{Name: "min-length", Usage: "drop words shorter than this"},
			&cli.BoolFlag{Name: "unique", Aliases: []string{"u"}, Usage: "best path per word only"},
			&cli.BoolFlag{Name: "json", Usage: "print the words as JSON"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			words, err := loadDictionary(ctx, cmd)
			if err != nil {
				return err
			}
			board, err := loadBoard(cmd)
			if err != nil {
				return err
			}
			eng, err := engine.NewEngine(board, words.Index())
			if err != nil {
				return err
			}

			found := eng.GetFound()
			if cmd.Bool("unique") {
				found = engine.UniqueWords(found)
			}
			if n := cmd.Int("min-length"); n > 0 {
				found = engine.FilterMinLength(found, n)
			}
			if n := cmd.Int("limit"); n > 0 && n < len(found) {
				found = found[:n]
			}

			out := cmd.Root().Writer
			if cmd.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(found)
			}

			fmt.Fprintf(out, "%s\n\n%s\n\n", board.Name, eng.GetGrid().Render())
			printWords(out, found)
			fmt.Fprintf(out, "\n%d of %d paths\n", len(found), len(eng.GetFound()))
			return nil
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "blast the best word until no words remain",
		Flags: append(boardFlags(),
			&cli.IntFlag{Name: "max-collapses", Value: 100, Usage: "stop after this many collapses"},
			&cli.StringFlag{Name: "server", Usage: "play against a server at this URL instead of locally", Sources: cli.EnvVars("BOGGLE_SERVER")},
			&cli.StringFlag{Name: "session", Usage: "with --server, resume this session instead of creating one"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print the board after every collapse"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var (
				p   player
				err error
			)
			if url := cmd.String("server"); url != "" {
				p, err = newRemotePlayer(ctx, NewClient(url), cmd.String("board"), cmd.String("session"))
			} else {
				p, err = newLocalPlayer(ctx, cmd)
			}
			if err != nil {
				return err
			}
			return play(ctx, cmd.Root().Writer, p, cmd.Int("max-collapses"), cmd.Bool("verbose"))
		},
	}
}

func defineCommand() *cli.Command {
	return &cli.Command{
		Name:      "define",
		Usage:     "look up words",
		ArgsUsage: "WORD [WORD...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("define: at least one word is required")
			}
			words, err := loadDictionary(ctx, cmd)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			missing := 0
			for _, w := range cmd.Args().Slice() {
				entry, err := words.Define(w)
				if err != nil {
					fmt.Fprintf(out, "%s: not in dictionary\n", strings.ToUpper(w))
					missing++
					continue
				}
				fmt.Fprintf(out, "%s (%d): %s\n", entry.Word, engine.ScoreWord(entry.Word, 0), entry.Definition)
			}
			if missing > 0 {
				return fmt.Errorf("%d of %d words not found", missing, cmd.Args().Len())
			}
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "load a word list into a SQLite dictionary",
		ArgsUsage: "WORDS_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "database path (defaults to --dictionary-db)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("import: WORDS_FILE is required")
			}
			db := cmd.String("db")
			if db == "" {
				db = cmd.String("dictionary-db")
			}
			if db == "" {
				return fmt.Errorf("import: --db or --dictionary-db is required")
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			defs, stats, err := dict.ParseWordList(f)
			if err != nil {
				return err
			}

			store, err := dict.OpenStore(db)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Import(ctx, defs)
			if err != nil {
				return err
			}
			total, err := store.Count(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "imported %d words (%d lines skipped), %d words in %s\n", n, stats.Skipped, total, db)
			return nil
		},
	}
}

func loadDictionary(ctx context.Context, cmd *cli.Command) (*dict.Dictionary, error) {
	return dict.Source{
		File: cmd.String("dictionary"),
		DB:   cmd.String("dictionary-db"),
	}.Load(ctx)
}

// loadBoard resolves --columns, then --board, then the default board.
func loadBoard(cmd *cli.Command) (*engine.BoardConfig, error) {
	if cols := cmd.String("columns"); cols != "" {
		board := &engine.BoardConfig{
			Name:        "command-line",
			Description: "columns given on the command line",
			Columns:     strings.Split(cols, ","),
		}
		if err := engine.ValidateBoardConfig(board); err != nil {
			return nil, err
		}
		return board, nil
	}

	name := cmd.String("board")
	dir := cmd.String("config-dir")
	if _, err := os.Stat(dir); err != nil {
		if name != "" {
			return nil, fmt.Errorf("board %q: %w", name, err)
		}
		return engine.DefaultBoardConfig(), nil
	}

	configs, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return configs.GetDefault(), nil
	}
	return configs.LoadConfig(name)
}

func printWords(out io.Writer, found []engine.Found) {
	for i, f := range found {
		fmt.Fprintf(out, "%4d. %-12s %5d  %s\n", i, f.Word, f.Score, formatPath(f.Path))
	}
}

func formatPath(path []engine.Coord) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
