package parser

import "github.com/atrika/airdrum/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
