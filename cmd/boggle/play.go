package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/boggle-blast/game/engine"
)

// player blasts the best-ranked word on a board it owns.
type player interface {
	State() *engine.GameState
	CollapseBest(ctx context.Context) (*engine.CollapseEntry, error)
}

type localPlayer struct {
	eng *engine.GameEngine
}

func newLocalPlayer(ctx context.Context, cmd *cli.Command) (*localPlayer, error) {
	words, err := loadDictionary(ctx, cmd)
	if err != nil {
		return nil, err
	}
	board, err := loadBoard(cmd)
	if err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(board, words.Index())
	if err != nil {
		return nil, err
	}
	return &localPlayer{eng: eng}, nil
}

func (p *localPlayer) State() *engine.GameState { return p.eng.GetState() }

func (p *localPlayer) CollapseBest(ctx context.Context) (*engine.CollapseEntry, error) {
	return p.eng.CollapseFound(0)
}

type remotePlayer struct {
	client *Client
	state  *engine.GameState
}

// newRemotePlayer resumes sessionID when given, resetting a finished board,
// otherwise it creates a session on board.
func newRemotePlayer(ctx context.Context, client *Client, board, sessionID string) (*remotePlayer, error) {
	var (
		state *engine.GameState
		err   error
	)
	if sessionID != "" {
		state, err = client.UseSession(ctx, sessionID)
		if err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("failed to resume session, creating a new one")
		} else if state.GameOver {
			if state, err = client.Reset(ctx); err != nil {
				return nil, err
			}
		}
	}
	if state == nil {
		state, err = client.CreateSession(ctx, board)
		if err != nil {
			return nil, err
		}
	}
	log.Info().Str("session", client.SessionID()).Int("words", state.TotalWords).Msg("playing remote session")
	return &remotePlayer{client: client, state: state}, nil
}

func (p *remotePlayer) State() *engine.GameState { return p.state }

func (p *remotePlayer) CollapseBest(ctx context.Context) (*engine.CollapseEntry, error) {
	result, err := p.client.CollapseRank(ctx, 0)
	if err != nil {
		return nil, err
	}
	p.state = result.GameState
	return result.Collapse, nil
}

// play collapses the best word until the board is empty or limit collapses
// have been made.
func play(ctx context.Context, out io.Writer, p player, limit int, verbose bool) error {
	state := p.State()
	fmt.Fprintf(out, "%s: %d words\n\n%s\n\n", state.ConfigName, state.TotalWords, state.Grid.Render())

	n := 0
	for !p.State().GameOver && n < limit {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := p.CollapseBest(ctx)
		if err != nil {
			return err
		}
		n++

		state = p.State()
		fmt.Fprintf(out, "%3d. %-12s +%-5d total %-6d rows %d→%d  words left %d\n",
			entry.Number, entry.Word, entry.Score, state.Score, entry.RowsBefore, entry.RowsAfter, state.TotalWords)
		if verbose {
			fmt.Fprintf(out, "\n%s\n\n", state.Grid.Render())
		}
	}

	state = p.State()
	if state.GameOver {
		fmt.Fprintf(out, "\nGame over after %d collapses. Final score: %d\n", n, state.Score)
	} else {
		fmt.Fprintf(out, "\nStopped after %d collapses with %d words left. Score: %d\n", n, state.TotalWords, state.Score)
	}
	return nil
}
