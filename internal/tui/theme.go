package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme colors the board and panels. Colors stay within the terminal
// safe 256-color palette.
type Theme struct {
	Name          string
	SquareDark    tcell.Color
	SquareLight   tcell.Color
	SquareSelect  tcell.Color
	SquareHint    tcell.Color
	SquareCheck   tcell.Color
	PieceWhite    tcell.Color
	PieceBlack    tcell.Color
	Label         tcell.Color
	StatusText    tcell.Color
	AnalysisText  tcell.Color
}

var themeBasic = Theme{
	Name:         "basic",
	SquareDark:   tcell.Color188,
	SquareLight:  tcell.Color230,
	SquareSelect: tcell.Color226,
	SquareHint:   tcell.Color223,
	SquareCheck:  tcell.Color218,
	PieceWhite:   tcell.Color232,
	PieceBlack:   tcell.Color232,
	Label:        tcell.Color247,
	StatusText:   tcell.Color252,
	AnalysisText: tcell.Color122,
}

var themeMidnight = Theme{
	Name:         "midnight",
	SquareDark:   tcell.Color238,
	SquareLight:  tcell.Color244,
	SquareSelect: tcell.Color130,
	SquareHint:   tcell.Color108,
	SquareCheck:  tcell.Color131,
	PieceWhite:   tcell.Color231,
	PieceBlack:   tcell.Color16,
	Label:        tcell.Color245,
	StatusText:   tcell.Color250,
	AnalysisText: tcell.Color114,
}

var themes = map[string]Theme{
	themeBasic.Name:    themeBasic,
	themeMidnight.Name: themeMidnight,
}

// ThemeByName resolves a theme, falling back to basic for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themeBasic
}
