package advisor

import (
	"fmt"
	"strings"
)

// buildPrompt frames the request as a grandmaster picking one move for
// the side to move. The response shape is restated in the prompt even
// though the schema already constrains it; models follow the schema
// more reliably when both agree.
func buildPrompt(fen string, history []string) string {
	side := sideToMoveFromFEN(fen)
	moves := "(none yet)"
	if len(history) > 0 {
		moves = strings.Join(history, " ")
	}
	return fmt.Sprintf(`You are a chess grandmaster playing as %s.

Current position (FEN): %s
Recent moves: %s

Choose the strongest move for %s. Respond strictly as a JSON object with exactly two string fields:
  "move": your move, in Standard Algebraic Notation (e.g. "Nf3", "O-O", "e8=Q+") or coordinate notation (e.g. "e2e4")
  "explanation": one or two sentences on why this move is strong

Do not include anything outside the JSON object.`, side, fen, moves, side)
}

func sideToMoveFromFEN(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) >= 2 && parts[1] == "b" {
		return "Black"
	}
	return "White"
}
