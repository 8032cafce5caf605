package session

import (
	"strings"
	"testing"

	nchess "github.com/corentings/chess/v2"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return New(DefaultMessages(), nil)
}

// referenceFEN replays UCI moves on a fresh game and returns the
// engine's own FEN for the resulting position.
func referenceFEN(t *testing.T, moves ...string) string {
	t.Helper()
	game := nchess.NewGame()
	for _, mv := range moves {
		if err := game.PushNotationMove(mv, nchess.UCINotation{}, nil); err != nil {
			t.Fatalf("reference move %s: %v", mv, err)
		}
	}
	return game.FEN()
}

func mustApply(t *testing.T, c *Controller, notations ...string) {
	t.Helper()
	for _, n := range notations {
		if !c.ApplyNotation(n) {
			t.Fatalf("ApplyNotation(%q) rejected", n)
		}
	}
}

func TestApplyNotationLegalMatchesEngine(t *testing.T) {
	c := newTestController(t)
	if !c.ApplyNotation("e4") {
		t.Fatal("e4 rejected")
	}
	if got, want := c.FEN(), referenceFEN(t, "e2e4"); got != want {
		t.Fatalf("FEN after e4 = %s, want %s", got, want)
	}
	if len(c.History()) != 1 {
		t.Fatalf("history length = %d, want 1", len(c.History()))
	}
	rec := c.History()[0]
	if rec.SAN != "e4" || rec.UCI != "e2e4" {
		t.Fatalf("record = %q/%q, want e4/e2e4", rec.SAN, rec.UCI)
	}
}

func TestApplyNotationAcceptsCoordinateForm(t *testing.T) {
	c := newTestController(t)
	if !c.ApplyNotation("e2e4") {
		t.Fatal("e2e4 rejected")
	}
	if got, want := c.FEN(), referenceFEN(t, "e2e4"); got != want {
		t.Fatalf("FEN = %s, want %s", got, want)
	}
}

func TestApplyNotationIllegalLeavesNoTrace(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4")
	before := c.FEN()

	for _, bad := range []string{"Zz9", "e2e5", "Ke2", "", "   "} {
		if c.ApplyNotation(bad) {
			t.Fatalf("ApplyNotation(%q) unexpectedly accepted", bad)
		}
		if c.FEN() != before {
			t.Fatalf("position mutated by rejected input %q", bad)
		}
		if len(c.History()) != 1 {
			t.Fatalf("history mutated by rejected input %q", bad)
		}
		if len(c.CapturedByWhite())+len(c.CapturedByBlack()) != 0 {
			t.Fatalf("ledgers mutated by rejected input %q", bad)
		}
	}
}

func TestUndoReplaysHistory(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4", "e5", "Nf3")

	c.Undo()
	if got, want := c.FEN(), referenceFEN(t, "e2e4", "e7e5"); got != want {
		t.Fatalf("FEN after undo = %s, want %s", got, want)
	}
	if len(c.History()) != 2 {
		t.Fatalf("history length = %d, want 2", len(c.History()))
	}

	c.Undo()
	c.Undo()
	if got, want := c.FEN(), nchess.NewGame().FEN(); got != want {
		t.Fatalf("FEN after full undo = %s, want start position %s", got, want)
	}

	// Empty history: no-op.
	c.Undo()
	if got, want := c.FEN(), nchess.NewGame().FEN(); got != want {
		t.Fatalf("undo on empty history mutated position: %s", got)
	}
}

func TestUndoClearsAnalysis(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4")
	c.analysis = "a fine opening"
	c.Undo()
	if c.Analysis() != "" {
		t.Fatalf("analysis not cleared by undo: %q", c.Analysis())
	}
}

func TestCaptureBookkeeping(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4", "d5", "exd5")

	white := c.CapturedByWhite()
	if len(white) != 1 {
		t.Fatalf("capturedByWhite length = %d, want 1", len(white))
	}
	if white[0].Type() != nchess.Pawn || white[0].Color() != nchess.Black {
		t.Fatalf("capturedByWhite[0] = %v, want black pawn", white[0])
	}
	if len(c.CapturedByBlack()) != 0 {
		t.Fatalf("capturedByBlack should be empty")
	}

	mustApply(t, c, "Qxd5")
	black := c.CapturedByBlack()
	if len(black) != 1 || black[0].Type() != nchess.Pawn || black[0].Color() != nchess.White {
		t.Fatalf("capturedByBlack = %v, want one white pawn", black)
	}
}

func TestEnPassantCaptureRecordsPawn(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4", "a6", "e5", "d5", "exd6")

	white := c.CapturedByWhite()
	if len(white) != 1 {
		t.Fatalf("capturedByWhite length = %d, want 1", len(white))
	}
	if white[0].Type() != nchess.Pawn || white[0].Color() != nchess.Black {
		t.Fatalf("en passant capture recorded %v, want black pawn", white[0])
	}
}

func TestUndoRebuildsLedgers(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4", "d5", "exd5")
	c.Undo()
	if len(c.CapturedByWhite()) != 0 {
		t.Fatalf("ledger not rebuilt after undoing a capture")
	}
}

func TestSelectOrMoveFlow(t *testing.T) {
	c := newTestController(t)

	// Selecting an empty square or an opponent piece does nothing.
	c.SelectOrMove(nchess.E4)
	c.SelectOrMove(nchess.E7)
	if _, ok := c.Selected(); ok {
		t.Fatal("selection should be empty")
	}

	c.SelectOrMove(nchess.E2)
	if sel, ok := c.Selected(); !ok || sel != nchess.E2 {
		t.Fatalf("selected = %v/%v, want e2", sel, ok)
	}
	if !c.IsDestination(nchess.E4) || !c.IsDestination(nchess.E3) {
		t.Fatal("pawn destinations missing")
	}
	if c.IsDestination(nchess.E5) {
		t.Fatal("e5 should not be a legal pawn destination")
	}

	// Clicking the selected square again deselects.
	c.SelectOrMove(nchess.E2)
	if _, ok := c.Selected(); ok {
		t.Fatal("repeated click should deselect")
	}

	// Select and move.
	c.SelectOrMove(nchess.E2)
	c.SelectOrMove(nchess.E4)
	if got, want := c.FEN(), referenceFEN(t, "e2e4"); got != want {
		t.Fatalf("FEN = %s, want %s", got, want)
	}
	if _, ok := c.Selected(); ok {
		t.Fatal("selection should clear after a move")
	}
}

func TestSelectOrMoveFallsThroughToReselection(t *testing.T) {
	c := newTestController(t)
	c.SelectOrMove(nchess.E2)
	// d1 is not reachable from e2; the click becomes a new selection.
	c.SelectOrMove(nchess.D1)
	if sel, ok := c.Selected(); !ok || sel != nchess.D1 {
		t.Fatalf("selected = %v/%v, want d1", sel, ok)
	}
	if len(c.History()) != 0 {
		t.Fatal("no move should have been applied")
	}
}

func TestPawnPromotionDefaultsToQueen(t *testing.T) {
	c := newTestController(t)
	fenOpt, err := nchess.FEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	c.game = nchess.NewGame(fenOpt)

	c.SelectOrMove(nchess.A7)
	c.SelectOrMove(nchess.A8)
	piece := c.PieceAt(nchess.A8)
	if piece.Type() != nchess.Queen || piece.Color() != nchess.White {
		t.Fatalf("piece on a8 = %v, want white queen", piece)
	}
}

func TestResetRestoresStartPosition(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "e4", "d5", "exd5")
	c.analysis = "stale"
	prevID := c.ID()

	c.Reset()
	if got, want := c.FEN(), nchess.NewGame().FEN(); got != want {
		t.Fatalf("FEN after reset = %s, want %s", got, want)
	}
	if len(c.History()) != 0 || len(c.CapturedByWhite()) != 0 || len(c.CapturedByBlack()) != 0 {
		t.Fatal("reset did not clear history and ledgers")
	}
	if c.Analysis() != "" {
		t.Fatal("reset did not clear analysis")
	}
	if _, ok := c.Selected(); ok {
		t.Fatal("reset did not clear selection")
	}
	if c.ID() == prevID {
		t.Fatal("reset should mint a new session id")
	}
}

func TestStatusProgression(t *testing.T) {
	c := newTestController(t)
	if st := c.Status(); st.Kind != StatusTurn || st.SideToMove != nchess.White {
		t.Fatalf("initial status = %+v", st)
	}
	if got := c.StatusText(); got != "White's turn" {
		t.Fatalf("status text = %q", got)
	}

	mustApply(t, c, "e4", "f5", "Qh5+")
	st := c.Status()
	if st.Kind != StatusCheck || st.SideToMove != nchess.Black {
		t.Fatalf("status after Qh5+ = %+v, want black in check", st)
	}
}

func TestCheckmateGatesFurtherMoves(t *testing.T) {
	c := newTestController(t)
	mustApply(t, c, "f3", "e5", "g4", "Qh4#")

	st := c.Status()
	if st.Kind != StatusCheckmate || st.Winner != nchess.Black {
		t.Fatalf("status = %+v, want black checkmate win", st)
	}
	if !strings.Contains(c.StatusText(), "Black wins") {
		t.Fatalf("status text = %q", c.StatusText())
	}
	if !c.GameOver() {
		t.Fatal("GameOver() should report true")
	}

	// Terminal position rejects all further moves.
	if c.ApplyNotation("a3") {
		t.Fatal("move accepted on a terminal position")
	}
	c.SelectOrMove(nchess.A2)
	if _, ok := c.Selected(); ok {
		t.Fatal("selection allowed on a terminal position")
	}
}
