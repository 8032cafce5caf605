package session

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/hbkang/chessmentor/internal/advisor"
)

// Suggester produces a move suggestion for a position. Satisfied by
// *advisor.Advisor; tests substitute a stub.
type Suggester interface {
	SuggestMove(ctx context.Context, fen string, history []string) (advisor.Suggestion, error)
}

// BeginAIMove marks an AI request in flight. It refuses when the game
// is over or a request is already pending, so at most one round-trip is
// outstanding regardless of how the trigger is invoked.
func (c *Controller) BeginAIMove() bool {
	if c.thinking || c.GameOver() {
		return false
	}
	c.thinking = true
	c.analysis = c.msgs.Thinking
	c.clearSelection()
	return true
}

// CompleteAIMove consumes the advisor round-trip started by
// BeginAIMove. A usable suggestion is applied as-is; an illegal or
// unrecognized one falls back to a uniformly random legal move with a
// notice. Service errors and empty suggestions only change the analysis
// text. The thinking flag is always cleared.
func (c *Controller) CompleteAIMove(sug advisor.Suggestion, err error) {
	if !c.thinking {
		return
	}
	defer func() { c.thinking = false }()

	if err != nil {
		c.logger.Warn("advisor request failed",
			zap.String("session_uuid", c.id),
			zap.Error(err),
		)
		c.analysis = c.msgs.Error
		return
	}

	moveText := strings.TrimSpace(sug.Move)
	if moveText == "" {
		c.analysis = c.msgs.NoMove
		return
	}

	c.analysis = sug.Explanation
	if c.ApplyNotation(moveText) {
		return
	}

	c.logger.Info("advisor move rejected, falling back to random legal move",
		zap.String("session_uuid", c.id),
		zap.String("suggested", moveText),
	)
	if !c.applyRandomLegal() {
		// No legal moves left; the game-over guard should make this
		// unreachable.
		return
	}
	c.analysis = c.msgs.Fallback
}

func (c *Controller) applyRandomLegal() bool {
	moves := c.game.ValidMoves()
	if len(moves) == 0 {
		return false
	}
	idx := 0
	if n, err := rand.Int(rand.Reader, big.NewInt(int64(len(moves)))); err == nil {
		idx = int(n.Int64())
	}
	return c.ApplyNotation(moves[idx].String())
}
