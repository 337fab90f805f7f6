package player

import "github.com/dogrules/dog/engine"

// Player picks one of the offered actions given its own view of the
// game. Returning a nil action passes the turn (folding or aborting an
// unfinished split as the engine sees fit).
type Player interface {
	Name() string
	ChooseAction(view *engine.GameState, actions []engine.Action) (*engine.Action, error)
}

type PlayerFactory func() Player
