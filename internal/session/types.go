package session

import (
	nchess "github.com/corentings/chess/v2"
)

// MoveRecord is one accepted ply, kept in the order it was played.
type MoveRecord struct {
	From      nchess.Square
	To        nchess.Square
	Piece     nchess.Piece
	Captured  nchess.Piece // NoPiece when the move took nothing
	Promotion nchess.PieceType
	SAN       string
	UCI       string
	Check     bool
}

// StatusKind orders the board summary by severity: a checkmate or draw
// always wins over a check, which wins over a plain turn indicator.
type StatusKind int

const (
	StatusTurn StatusKind = iota
	StatusCheck
	StatusCheckmate
	StatusDraw
)

// Status is the derived, read-only board summary.
type Status struct {
	Kind       StatusKind
	SideToMove nchess.Color
	Winner     nchess.Color // set only for StatusCheckmate
}

// Messages holds the user-visible analysis notices. The texts come from
// the message catalog at startup; DefaultMessages covers tests and any
// catalog key that fails to render.
type Messages struct {
	Thinking string
	Fallback string
	NoMove   string
	Error    string
}

func DefaultMessages() Messages {
	return Messages{
		Thinking: "Analyzing the position...",
		Fallback: "The suggestion was not legal here, so a random legal move was played instead.",
		NoMove:   "The advisor could not find a move for this position.",
		Error:    "Error communicating with the AI service.",
	}
}

func colorName(c nchess.Color) string {
	if c == nchess.White {
		return "White"
	}
	return "Black"
}
