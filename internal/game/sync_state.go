package game

import (
	"github.com/google/uuid"

	"github.com/dogrules/dog/engine"
)

// SyncMarble mirrors a marble for client synchronization. Marble
// positions are open information.
type SyncMarble struct {
	Pos  uint8 `json:"pos"`
	Safe bool  `json:"safe"`
}

// SyncPlayer is one seat's state as a specific observer may see it.
// Hand is populated only for the observer's own seat; everyone else
// gets the count.
type SyncPlayer struct {
	Seat          uint8        `json:"seat"`
	UserID        uuid.UUID    `json:"userId"`
	Name          string       `json:"name"`
	HandSize      int          `json:"handSize"`
	Hand          []string     `json:"hand,omitempty"`
	Marbles       []SyncMarble `json:"marbles"`
	IsCurrentTurn bool         `json:"isCurrentTurn"`
	Finished      bool         `json:"finished"`
}

// SyncState is the full table state tailored to one seat.
type SyncState struct {
	TableID     uuid.UUID    `json:"tableId"`
	TurnID      int          `json:"turnId"`
	Phase       string       `json:"phase"`
	Round       uint16       `json:"round"`
	ActiveSeat  uint8        `json:"activeSeat"`
	ActiveCard  string       `json:"activeCard,omitempty"`
	DrawSize    int          `json:"drawSize"`
	DiscardSize int          `json:"discardSize"`
	DiscardTop  string       `json:"discardTop,omitempty"`
	Players     []SyncPlayer `json:"players"`
}

// syncStateFor builds the state snapshot for one seat. The caller must
// hold the table lock.
func (t *Table) syncStateFor(seat uint8) SyncState {
	view := t.Game.PlayerView(seat)

	out := SyncState{
		TableID:     t.ID,
		TurnID:      t.TurnID,
		Phase:       view.Phase.String(),
		Round:       view.RoundCount,
		ActiveSeat:  view.ActivePlayer,
		DrawSize:    len(view.DrawPile),
		DiscardSize: len(view.DiscardPile),
		Players:     make([]SyncPlayer, 0, engine.NumPlayers),
	}
	if view.ActiveCard != engine.EmptyCard {
		out.ActiveCard = view.ActiveCard.String()
	}
	if n := len(view.DiscardPile); n > 0 {
		out.DiscardTop = view.DiscardPile[n-1].String()
	}

	for p := uint8(0); p < engine.NumPlayers; p++ {
		ps := &view.Players[p]
		sp := SyncPlayer{
			Seat:          p,
			UserID:        t.Seats[p],
			Name:          ps.Name,
			HandSize:      len(t.Game.State.Players[p].Hand),
			Marbles:       make([]SyncMarble, 0, engine.MarblesPerPlayer),
			IsCurrentTurn: p == view.ActivePlayer,
			Finished:      view.PlayerFinished(p),
		}
		if p == seat {
			sp.Hand = make([]string, 0, len(ps.Hand))
			for _, c := range ps.Hand {
				sp.Hand = append(sp.Hand, c.String())
			}
		}
		for _, m := range ps.Marbles {
			sp.Marbles = append(sp.Marbles, SyncMarble{Pos: m.Pos, Safe: m.Safe})
		}
		out.Players = append(out.Players, sp)
	}
	return out
}
