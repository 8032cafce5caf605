package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/hbkang/chessmentor/internal/msgcat"
	"github.com/hbkang/chessmentor/internal/openings"
	"github.com/hbkang/chessmentor/internal/session"
)

type Options struct {
	Theme          string
	MoveDelay      time.Duration
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// UI drives the terminal surface. All state mutation runs on the tview
// event loop; the only goroutine is the advisor round-trip, whose
// result is committed back through QueueUpdateDraw.
type UI struct {
	app        *tview.Application
	controller *session.Controller
	suggester  session.Suggester
	cat        *msgcat.Catalog
	theme      Theme
	logger     *zap.Logger

	moveDelay      time.Duration
	requestTimeout time.Duration

	board         *tview.Table
	historyView   *tview.TextView
	capturedWhite *tview.TextView
	capturedBlack *tview.TextView
	statusView    *tview.TextView
	analysisView  *tview.TextView
	newGameBtn    *tview.Button
	undoBtn       *tview.Button
	aiMoveBtn     *tview.Button

	layout *tview.Grid
}

func New(ctrl *session.Controller, suggester session.Suggester, cat *msgcat.Catalog, opts Options) *UI {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	u := &UI{
		app:            tview.NewApplication(),
		controller:     ctrl,
		suggester:      suggester,
		cat:            cat,
		theme:          ThemeByName(opts.Theme),
		logger:         logger,
		moveDelay:      opts.MoveDelay,
		requestTimeout: opts.RequestTimeout,
	}
	u.build()
	return u
}

func (u *UI) Run() error {
	u.refresh()
	return u.app.SetRoot(u.layout, true).EnableMouse(true).Run()
}

func (u *UI) build() {
	u.board = tview.NewTable()
	u.board.SetSelectable(true, true)
	u.board.SetSelectedFunc(func(row, col int) {
		u.activateCell(row, col)
	})
	u.board.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick {
			x, y := event.Position()
			row, col := u.board.CellAt(x, y)
			u.activateCell(row, col)
		}
		return action, event
	})

	u.historyView = tview.NewTextView().SetTextColor(u.theme.StatusText)
	u.historyView.SetBorder(true).SetTitle(u.cat.Text("panel.history"))
	u.capturedWhite = tview.NewTextView().SetTextColor(u.theme.StatusText)
	u.capturedWhite.SetBorder(true).SetTitle(u.cat.Text("panel.captured_white"))
	u.capturedBlack = tview.NewTextView().SetTextColor(u.theme.StatusText)
	u.capturedBlack.SetBorder(true).SetTitle(u.cat.Text("panel.captured_black"))
	u.statusView = tview.NewTextView().SetTextColor(u.theme.StatusText)
	u.analysisView = tview.NewTextView().SetTextColor(u.theme.AnalysisText)
	u.analysisView.SetBorder(true).SetTitle(u.cat.Text("panel.analysis"))

	u.newGameBtn = tview.NewButton(u.cat.Text("button.new_game")).SetSelectedFunc(u.onNewGame)
	u.undoBtn = tview.NewButton(u.cat.Text("button.undo")).SetSelectedFunc(u.onUndo)
	u.aiMoveBtn = tview.NewButton(u.cat.Text("button.ai_move")).SetSelectedFunc(u.onAIMove)
	quitBtn := tview.NewButton(u.cat.Text("button.quit")).SetSelectedFunc(func() {
		u.app.Stop()
	})

	buttons := tview.NewGrid().
		SetColumns(12, 12, 12, 12, -1).
		AddItem(u.newGameBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(u.undoBtn, 0, 1, 1, 1, 0, 0, false).
		AddItem(u.aiMoveBtn, 0, 2, 1, 1, 0, 0, false).
		AddItem(quitBtn, 0, 3, 1, 1, 0, 0, false)

	sidePanels := tview.NewGrid().
		SetRows(-2, -1, -1).
		AddItem(u.historyView, 0, 0, 1, 1, 0, 0, false).
		AddItem(u.capturedWhite, 1, 0, 1, 1, 0, 0, false).
		AddItem(u.capturedBlack, 2, 0, 1, 1, 0, 0, false)

	u.layout = tview.NewGrid().
		SetRows(1, 1, 9, 3, -1).
		SetColumns(40, -1).
		AddItem(u.statusView, 0, 0, 1, 2, 0, 0, false).
		AddItem(buttons, 1, 0, 1, 2, 0, 0, false).
		AddItem(u.board, 2, 0, 1, 1, 0, 0, true).
		AddItem(sidePanels, 2, 1, 2, 1, 0, 0, false).
		AddItem(u.analysisView, 3, 0, 1, 1, 0, 0, false)

	u.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyRune {
			return event
		}
		switch event.Rune() {
		case 'n':
			u.onNewGame()
			return nil
		case 'u':
			u.onUndo()
			return nil
		case 'a':
			u.onAIMove()
			return nil
		case 'q':
			u.app.Stop()
			return nil
		}
		return event
	})
}

func (u *UI) activateCell(row, col int) {
	sq, ok := squareAt(row, col)
	if !ok {
		return
	}
	u.controller.SelectOrMove(sq)
	u.refresh()
}

func (u *UI) onNewGame() {
	if u.controller.Thinking() {
		return
	}
	u.controller.Reset()
	u.refresh()
}

func (u *UI) onUndo() {
	if u.controller.Thinking() {
		return
	}
	u.controller.Undo()
	u.refresh()
}

// onAIMove snapshots the position on the event loop, runs the advisor
// round-trip on a goroutine and commits the outcome back on the event
// loop. The controller's thinking guard keeps this single-flight.
func (u *UI) onAIMove() {
	if !u.controller.BeginAIMove() {
		return
	}
	u.refresh()

	fen := u.controller.FEN()
	history := u.controller.HistorySAN()
	delay := u.moveDelay
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.requestTimeout)
		defer cancel()
		sug, err := u.suggester.SuggestMove(ctx, fen, history)
		if delay > 0 {
			// Perceptible pacing between "thinking" and the move landing.
			time.Sleep(delay)
		}
		u.app.QueueUpdateDraw(func() {
			u.controller.CompleteAIMove(sug, err)
			u.refresh()
		})
	}()
}

func (u *UI) refresh() {
	u.drawBoard()
	u.historyView.SetText(u.historyText())
	u.capturedWhite.SetText(capturedText(u.controller.CapturedByWhite()))
	u.capturedBlack.SetText(capturedText(u.controller.CapturedByBlack()))
	u.statusView.SetText(u.statusText())
	u.analysisView.SetText(u.controller.Analysis())

	u.undoBtn.SetDisabled(len(u.controller.History()) == 0 || u.controller.Thinking())
	u.aiMoveBtn.SetDisabled(u.controller.Thinking() || u.controller.GameOver())
	u.newGameBtn.SetDisabled(u.controller.Thinking())
}

func (u *UI) historyText() string {
	san := u.controller.HistorySAN()
	var b strings.Builder
	if name := openings.Describe(u.controller.Moves()); name != "" {
		b.WriteString(name)
		b.WriteString("\n\n")
	}
	for i := 0; i < len(san); i += 2 {
		fmt.Fprintf(&b, "%d. %s", i/2+1, san[i])
		if i+1 < len(san) {
			fmt.Fprintf(&b, " %s", san[i+1])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// statusText renders the board summary through the message catalog,
// with the controller's own wording as fallback.
func (u *UI) statusText() string {
	st := u.controller.Status()
	var (
		out string
		err error
	)
	switch st.Kind {
	case session.StatusCheckmate:
		out, err = u.cat.Render("status.checkmate", map[string]string{"Winner": colorLabel(st.Winner)})
	case session.StatusDraw:
		out, err = u.cat.Render("status.draw", nil)
	case session.StatusCheck:
		out, err = u.cat.Render("status.check", map[string]string{"Side": colorLabel(st.SideToMove)})
	default:
		out, err = u.cat.Render("status.turn", map[string]string{"Side": colorLabel(st.SideToMove)})
	}
	if err != nil {
		return u.controller.StatusText()
	}
	return out
}

func capturedText(pieces []nchess.Piece) string {
	if len(pieces) == 0 {
		return "-"
	}
	glyphs := make([]string, len(pieces))
	for i, p := range pieces {
		glyphs[i] = p.String()
	}
	return strings.Join(glyphs, " ")
}

func colorLabel(c nchess.Color) string {
	if c == nchess.White {
		return "White"
	}
	return "Black"
}
