// Package openings names the opening a game's move sequence belongs
// to, using the ECO classification shipped with the chess library.
package openings

import (
	"strings"
	"sync"

	nchess "github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var (
	ecoOnce sync.Once
	ecoBook *opening.BookECO
)

// book builds the ECO table once; construction parses the full catalog
// and is too slow to repeat per lookup.
func book() *opening.BookECO {
	ecoOnce.Do(func() {
		ecoBook = opening.NewBookECO()
	})
	return ecoBook
}

// Describe returns "<code> <title>" for the deepest ECO line matching
// the move sequence, or "" when no line matches.
func Describe(moves []*nchess.Move) string {
	if len(moves) == 0 {
		return ""
	}
	eco := book().Find(moves)
	if eco == nil {
		return ""
	}
	code := strings.TrimSpace(eco.Code())
	title := strings.TrimSpace(eco.Title())
	switch {
	case code == "":
		return title
	case title == "":
		return code
	default:
		return code + " " + title
	}
}
