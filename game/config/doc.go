// Package config loads and caches Boggle Blast board files.
//
// Boards are JSON files in a directory, one per board:
//
//	{
//	  "name": "classic",
//	  "description": "The original nine column board",
//	  "columns": ["iuzttcl", "asl", "n", "h", "s", "eym", "uiC", "oheyw", "drsdirp"]
//	}
//
// Each column runs top to bottom. Lowercase letters are normal cells,
// uppercase letters are multiplier cells, '#' is blocked and '.' an
// explicit blank. Short columns are padded with blanks at the top.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := manager.LoadConfig("classic")
//	boards, err := manager.ListConfigs()
//
// The default board is "classic" when present, else the first valid file,
// else the built-in classic board.
package config
