package engine

// Board numbering. The shared circular track occupies cells 0..63; every
// player owns an 8-cell private block above it: four kennel cells followed
// by four finish cells. All zone boundaries derive from the player index —
// no cell number is special-cased anywhere else in the engine.
//
//	player p: start cell 16p, kennel 64+8p .. 67+8p, finish 68+8p .. 71+8p

const (
	TrackSize      = 64
	privateBase    = 64
	privateBlock   = 8
	kennelSize     = 4
	finishSize     = 4
	MaxPosition    = privateBase + NumPlayers*privateBlock - 1 // 95
	startSpacing   = TrackSize / NumPlayers                    // 16
	sevenEntryCost = 5 // steps consumed entering the first finish cell
	sevenTailCost  = 2 // steps consumed by the finish-internal second leg
)

// StartCell returns the track cell a player's marbles enter the board on.
func StartCell(p uint8) uint8 { return p * startSpacing }

// KennelStart returns the first of a player's four kennel cells.
func KennelStart(p uint8) uint8 { return privateBase + p*privateBlock }

// FinishStart returns the first of a player's four finish cells.
func FinishStart(p uint8) uint8 { return KennelStart(p) + kennelSize }

// OnTrack reports whether pos lies on the shared circular track.
func OnTrack(pos uint8) bool { return pos < TrackSize }

// InKennel reports whether pos is one of player p's kennel cells.
func InKennel(p, pos uint8) bool {
	return pos >= KennelStart(p) && pos < KennelStart(p)+kennelSize
}

// InFinish reports whether pos is one of player p's finish cells.
func InFinish(p, pos uint8) bool {
	return pos >= FinishStart(p) && pos < FinishStart(p)+finishSize
}

// KennelSlot returns the kennel cell reserved for marble slot on player p.
// Captured marbles return here.
func KennelSlot(p uint8, slot int) uint8 { return KennelStart(p) + uint8(slot) }

// sevenEntryFrom returns the track cell from which the fixed-cost finish
// entry leg of a split seven starts: four cells before the player's start,
// so the leg (four track steps plus one into the finish) costs exactly
// sevenEntryCost. For player 1 this yields 12 → 76.
func sevenEntryFrom(p uint8) uint8 {
	return (StartCell(p) + TrackSize - kennelSize) % TrackSize
}

// sevenTailTo returns the destination of the finish-internal second leg.
func sevenTailTo(p uint8) uint8 { return FinishStart(p) + sevenTailCost }

// PlayerFinished reports whether all of p's marbles sit in p's finish zone.
func (s *GameState) PlayerFinished(p uint8) bool {
	for _, m := range s.Players[p].Marbles {
		if !InFinish(p, m.Pos) {
			return false
		}
	}
	return true
}

// TeamWon reports whether both players of p's team have finished.
func (s *GameState) TeamWon(p uint8) bool {
	return s.PlayerFinished(p) && s.PlayerFinished(PartnerOf(p))
}

// allMarblesHome reports whether none of the player's marbles is on the
// track, i.e. every marble is still in the kennel or already in the
// finish. The joker's stand-in choice is restricted while this holds.
func allMarblesHome(ps *PlayerState) bool {
	for _, m := range ps.Marbles {
		if OnTrack(m.Pos) {
			return false
		}
	}
	return true
}

// IsPathBlocked reports whether a forward move from start to end is vetoed
// by a safe marble. Every cell strictly after start up to and including
// end is checked, walking +1 or −1 depending on direction. Kennel exits
// and jack swaps are never subject to this check.
func (s *GameState) IsPathBlocked(start, end uint8) bool {
	step := 1
	if end < start {
		step = -1
	}
	for pos := int(start) + step; ; pos += step {
		for i := range s.Players {
			for _, m := range s.Players[i].Marbles {
				if int(m.Pos) == pos && m.Safe {
					return true
				}
			}
		}
		if pos == int(end) {
			return false
		}
	}
}

// marbleAt returns the player's marble occupying pos, or nil.
func marbleAt(ps *PlayerState, pos uint8) *Marble {
	if pos == NoPosition {
		return nil
	}
	for i := range ps.Marbles {
		if ps.Marbles[i].Pos == pos {
			return &ps.Marbles[i]
		}
	}
	return nil
}

// firstKennelMarble returns the occupied kennel cell of player p closest
// to the kennel entrance, or NoPosition when the kennel is empty.
func (s *GameState) firstKennelMarble(p uint8) uint8 {
	for pos := KennelStart(p); pos < KennelStart(p)+kennelSize; pos++ {
		if marbleAt(&s.Players[p], pos) != nil {
			return pos
		}
	}
	return NoPosition
}
