package session

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller is the single owner of all game state: the authoritative
// position, the selection, the move history and the captured-piece
// ledgers. Every mutation happens through it, on the UI event loop.
type Controller struct {
	id              string
	game            *nchess.Game
	selected        nchess.Square
	hasSelection    bool
	destinations    map[nchess.Square]bool
	history         []MoveRecord
	capturedByWhite []nchess.Piece
	capturedByBlack []nchess.Piece
	analysis        string
	thinking        bool
	msgs            Messages
	logger          *zap.Logger
}

func New(msgs Messages, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultMessages()
	if strings.TrimSpace(msgs.Thinking) == "" {
		msgs.Thinking = defaults.Thinking
	}
	if strings.TrimSpace(msgs.Fallback) == "" {
		msgs.Fallback = defaults.Fallback
	}
	if strings.TrimSpace(msgs.NoMove) == "" {
		msgs.NoMove = defaults.NoMove
	}
	if strings.TrimSpace(msgs.Error) == "" {
		msgs.Error = defaults.Error
	}
	c := &Controller{msgs: msgs, logger: logger}
	c.Reset()
	return c
}

// Reset replaces the position with the standard starting position and
// clears selection, history, ledgers and analysis. Always succeeds.
func (c *Controller) Reset() {
	c.id = uuid.NewString()
	c.game = nchess.NewGame()
	c.history = nil
	c.capturedByWhite = nil
	c.capturedByBlack = nil
	c.analysis = ""
	c.thinking = false
	c.clearSelection()
	c.logger.Info("session reset", zap.String("session_uuid", c.id))
}

// SelectOrMove resolves a square activation: select a piece of the side
// to move, deselect on a repeated click, or attempt the move from the
// current selection. A failed move attempt falls through to a fresh
// selection attempt on the clicked square.
func (c *Controller) SelectOrMove(sq nchess.Square) {
	if c.thinking || c.GameOver() {
		return
	}
	if !c.hasSelection {
		c.trySelect(sq)
		return
	}
	if sq == c.selected {
		c.clearSelection()
		return
	}
	if c.ApplySquares(c.selected, sq, nchess.NoPieceType) {
		return
	}
	c.clearSelection()
	c.trySelect(sq)
}

// ApplySquares attempts a move between two squares. Pawns reaching the
// final rank promote to a queen unless another piece is requested.
func (c *Controller) ApplySquares(from, to nchess.Square, promotion nchess.PieceType) bool {
	if promotion == nchess.NoPieceType && c.pawnPromoting(from, to) {
		promotion = nchess.Queen
	}
	text := from.String() + to.String() + promotionSuffix(promotion)
	return c.ApplyNotation(text)
}

// ApplyNotation attempts a move given in SAN or coordinate notation
// against the current position. The move is played on a clone of the
// game; only a legal move replaces the authoritative state. Illegal or
// unparseable input leaves position, history and ledgers untouched.
func (c *Controller) ApplyNotation(text string) bool {
	if c.GameOver() {
		return false
	}
	raw := strings.TrimSpace(text)
	if raw == "" {
		return false
	}

	candidate := c.game.Clone()
	pos := candidate.Position()
	notationSAN := nchess.AlgebraicNotation{}
	notationUCI := nchess.UCINotation{}

	move, err := notationSAN.Decode(pos, raw)
	if err != nil {
		move, err = notationUCI.Decode(pos, strings.ToLower(raw))
		if err != nil {
			return false
		}
	}
	if err := candidate.Move(move, nil); err != nil {
		return false
	}

	mover := pos.Turn()
	san := notationSAN.Encode(pos, move)
	record := MoveRecord{
		From:      move.S1(),
		To:        move.S2(),
		Piece:     pos.Board().Piece(move.S1()),
		Captured:  capturedPiece(pos, move),
		Promotion: move.Promo(),
		SAN:       san,
		UCI:       strings.ToLower(notationUCI.Encode(pos, move)),
		// The SAN encoder computes the check marker from the position,
		// so it holds for every decode path.
		Check: strings.HasSuffix(san, "+") || strings.HasSuffix(san, "#"),
	}

	c.game = candidate
	if record.Captured != nchess.NoPiece {
		if mover == nchess.White {
			c.capturedByWhite = append(c.capturedByWhite, record.Captured)
		} else {
			c.capturedByBlack = append(c.capturedByBlack, record.Captured)
		}
	}
	c.history = append(c.history, record)
	c.clearSelection()

	c.logger.Debug("move applied",
		zap.String("session_uuid", c.id),
		zap.String("san", record.SAN),
		zap.String("uci", record.UCI),
		zap.Int("ply", len(c.history)),
	)
	return true
}

// Undo removes the last ply and rebuilds the position by replaying the
// remaining history from the starting position. No-op on empty history.
func (c *Controller) Undo() {
	if len(c.history) == 0 {
		return
	}
	c.history = c.history[:len(c.history)-1]

	game := nchess.NewGame()
	for _, rec := range c.history {
		if err := game.PushNotationMove(rec.UCI, nchess.UCINotation{}, nil); err != nil {
			c.logger.Error("undo replay failed, resetting session",
				zap.String("session_uuid", c.id),
				zap.String("uci", rec.UCI),
				zap.Error(err),
			)
			c.Reset()
			return
		}
	}
	c.game = game
	c.rebuildLedgers()
	c.analysis = ""
	c.clearSelection()
}

// Status derives the board summary in priority order: checkmate, draw,
// check, side to move.
func (c *Controller) Status() Status {
	side := c.game.Position().Turn()
	switch c.game.Outcome() {
	case nchess.WhiteWon:
		return Status{Kind: StatusCheckmate, SideToMove: side, Winner: nchess.White}
	case nchess.BlackWon:
		return Status{Kind: StatusCheckmate, SideToMove: side, Winner: nchess.Black}
	case nchess.Draw:
		return Status{Kind: StatusDraw, SideToMove: side}
	}
	if n := len(c.history); n > 0 && c.history[n-1].Check {
		return Status{Kind: StatusCheck, SideToMove: side}
	}
	return Status{Kind: StatusTurn, SideToMove: side}
}

// StatusText renders Status with the built-in English wording.
func (c *Controller) StatusText() string {
	st := c.Status()
	switch st.Kind {
	case StatusCheckmate:
		return fmt.Sprintf("Checkmate! %s wins", colorName(st.Winner))
	case StatusDraw:
		return "Draw"
	case StatusCheck:
		return fmt.Sprintf("%s is in check", colorName(st.SideToMove))
	default:
		return fmt.Sprintf("%s's turn", colorName(st.SideToMove))
	}
}

func (c *Controller) ID() string       { return c.id }
func (c *Controller) FEN() string      { return c.game.FEN() }
func (c *Controller) Analysis() string { return c.analysis }
func (c *Controller) Thinking() bool   { return c.thinking }

func (c *Controller) GameOver() bool {
	return c.game.Outcome() != nchess.NoOutcome
}

func (c *Controller) Turn() nchess.Color {
	return c.game.Position().Turn()
}

// Moves exposes the engine's move list for opening classification.
func (c *Controller) Moves() []*nchess.Move {
	return c.game.Moves()
}

func (c *Controller) PieceAt(sq nchess.Square) nchess.Piece {
	return c.game.Position().Board().Piece(sq)
}

// Selected reports the currently selected origin square, if any.
func (c *Controller) Selected() (nchess.Square, bool) {
	return c.selected, c.hasSelection
}

// IsDestination reports whether sq is a legal destination from the
// current selection.
func (c *Controller) IsDestination(sq nchess.Square) bool {
	return c.hasSelection && c.destinations[sq]
}

// History returns a copy of the accepted plies.
func (c *Controller) History() []MoveRecord {
	return append([]MoveRecord(nil), c.history...)
}

// HistorySAN returns the SAN sequence of the accepted plies.
func (c *Controller) HistorySAN() []string {
	out := make([]string, len(c.history))
	for i, rec := range c.history {
		out[i] = rec.SAN
	}
	return out
}

// CapturedByWhite lists the pieces White has taken, oldest first.
func (c *Controller) CapturedByWhite() []nchess.Piece {
	return append([]nchess.Piece(nil), c.capturedByWhite...)
}

// CapturedByBlack lists the pieces Black has taken, oldest first.
func (c *Controller) CapturedByBlack() []nchess.Piece {
	return append([]nchess.Piece(nil), c.capturedByBlack...)
}

func (c *Controller) trySelect(sq nchess.Square) {
	piece := c.game.Position().Board().Piece(sq)
	if piece == nchess.NoPiece || piece.Color() != c.game.Position().Turn() {
		return
	}
	dests := make(map[nchess.Square]bool)
	for _, mv := range c.game.ValidMoves() {
		if mv.S1() == sq {
			dests[mv.S2()] = true
		}
	}
	c.selected = sq
	c.hasSelection = true
	c.destinations = dests
}

func (c *Controller) clearSelection() {
	c.hasSelection = false
	c.destinations = nil
}

func (c *Controller) pawnPromoting(from, to nchess.Square) bool {
	piece := c.game.Position().Board().Piece(from)
	if piece == nchess.NoPiece || piece.Type() != nchess.Pawn {
		return false
	}
	switch piece.Color() {
	case nchess.White:
		return to.Rank() == nchess.Rank8
	case nchess.Black:
		return to.Rank() == nchess.Rank1
	}
	return false
}

// rebuildLedgers recomputes both capture ledgers from history. Undo can
// remove a capturing ply, so the ledgers are derived rather than popped.
func (c *Controller) rebuildLedgers() {
	c.capturedByWhite = nil
	c.capturedByBlack = nil
	for _, rec := range c.history {
		if rec.Captured == nchess.NoPiece {
			continue
		}
		if rec.Piece.Color() == nchess.White {
			c.capturedByWhite = append(c.capturedByWhite, rec.Captured)
		} else {
			c.capturedByBlack = append(c.capturedByBlack, rec.Captured)
		}
	}
}

// capturedPiece resolves the piece a move takes, reading the board
// before the move so it works for any decode path. An en-passant
// capture lands on an empty square; the taken pawn sits one rank back
// toward the mover.
func capturedPiece(pos *nchess.Position, move *nchess.Move) nchess.Piece {
	board := pos.Board()
	if taken := board.Piece(move.S2()); taken != nchess.NoPiece {
		return taken
	}
	mover := board.Piece(move.S1())
	if mover.Type() != nchess.Pawn || move.S1().File() == move.S2().File() {
		return nchess.NoPiece
	}
	sq := move.S2()
	if pos.Turn() == nchess.White {
		sq = nchess.NewSquare(sq.File(), sq.Rank()-1)
	} else {
		sq = nchess.NewSquare(sq.File(), sq.Rank()+1)
	}
	return board.Piece(sq)
}

func promotionSuffix(pt nchess.PieceType) string {
	switch pt {
	case nchess.Queen:
		return "q"
	case nchess.Rook:
		return "r"
	case nchess.Bishop:
		return "b"
	case nchess.Knight:
		return "n"
	default:
		return ""
	}
}
