package tui

import (
	"fmt"

	nchess "github.com/corentings/chess/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hbkang/chessmentor/internal/session"
)

const boardRows = 8

// squareAt maps a table cell to a board square. Row 0 is rank 8 (White
// plays from the bottom), column 0 is the rank gutter.
func squareAt(row, col int) (nchess.Square, bool) {
	if row < 0 || row >= boardRows || col < 1 || col > boardRows {
		return 0, false
	}
	file := nchess.FileA + nchess.File(col-1)
	rank := nchess.Rank8 - nchess.Rank(row)
	return nchess.NewSquare(file, rank), true
}

// drawBoard repaints every cell of the board table from the controller
// state: base checker colors, then selection, legal-destination and
// check highlights on top.
func (u *UI) drawBoard() {
	checkSq, checkOK := u.checkedKingSquare()

	for row := 0; row <= boardRows; row++ {
		for col := 0; col <= boardRows; col++ {
			if col == 0 && row < boardRows { // rank gutter
				rank := nchess.Rank8 - nchess.Rank(row)
				cell := tview.NewTableCell(rank.String()).
					SetAlign(tview.AlignCenter).
					SetTextColor(u.theme.Label).
					SetSelectable(false)
				u.board.SetCell(row, col, cell)
				continue
			}
			if row == boardRows { // file labels
				if col == 0 {
					u.board.SetCell(row, col, tview.NewTableCell(" ").SetSelectable(false))
					continue
				}
				file := nchess.FileA + nchess.File(col-1)
				cell := tview.NewTableCell(fmt.Sprintf(" %s ", file.String())).
					SetAlign(tview.AlignCenter).
					SetTextColor(u.theme.Label).
					SetSelectable(false)
				u.board.SetCell(row, col, cell)
				continue
			}

			sq, _ := squareAt(row, col)
			bg := u.squareColor(sq)
			if checkOK && sq == checkSq {
				bg = u.theme.SquareCheck
			}

			content := "   "
			fg := u.theme.PieceWhite
			if piece := u.controller.PieceAt(sq); piece != nchess.NoPiece {
				content = fmt.Sprintf(" %s ", piece.String())
				if piece.Color() == nchess.Black {
					fg = u.theme.PieceBlack
				}
			}
			cell := tview.NewTableCell(content).
				SetAlign(tview.AlignCenter).
				SetTextColor(fg).
				SetBackgroundColor(bg)
			u.board.SetCell(row, col, cell)
		}
	}
}

func (u *UI) squareColor(sq nchess.Square) tcell.Color {
	if sel, ok := u.controller.Selected(); ok && sq == sel {
		return u.theme.SquareSelect
	}
	if u.controller.IsDestination(sq) {
		return u.theme.SquareHint
	}
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return u.theme.SquareDark
	}
	return u.theme.SquareLight
}

// checkedKingSquare locates the king of the side to move when that side
// is in check, for the check highlight.
func (u *UI) checkedKingSquare() (nchess.Square, bool) {
	st := u.controller.Status()
	if st.Kind != session.StatusCheck && st.Kind != session.StatusCheckmate {
		return 0, false
	}
	for file := nchess.FileA; file <= nchess.FileH; file++ {
		for rank := nchess.Rank1; rank <= nchess.Rank8; rank++ {
			sq := nchess.NewSquare(file, rank)
			piece := u.controller.PieceAt(sq)
			if piece != nchess.NoPiece && piece.Type() == nchess.King && piece.Color() == st.SideToMove {
				return sq, true
			}
		}
	}
	return 0, false
}
