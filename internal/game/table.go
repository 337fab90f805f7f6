package game

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dogrules/dog/engine"
)

// OnGameEndFunc is executed when a table's game finishes. It receives the
// table ID and the seats of the winning team.
type OnGameEndFunc func(tableID uuid.UUID, winners [2]uint8)

// GameEventType labels events a table emits to its transport callbacks.
type GameEventType string

const (
	EventTableStart       GameEventType = "table_start"        // Public: game dealt, play begins.
	EventActionApplied    GameEventType = "action_applied"     // Public: a seat played an action (plays are open information).
	EventPlayerPass       GameEventType = "player_pass"        // Public: a seat passed or folded.
	EventTurnChanged      GameEventType = "turn_changed"       // Public: the active seat moved on.
	EventRoundStarted     GameEventType = "round_started"      // Public: new round dealt.
	EventGameEnd          GameEventType = "game_end"           // Public: the game is over, includes winners.
	EventPrivateSyncState GameEventType = "private_sync_state" // Private: full state sync for one seat.
)

// EventSeat identifies a seated user in an event payload.
type EventSeat struct {
	Seat   uint8     `json:"seat"`
	UserID uuid.UUID `json:"userId"`
}

// GameEvent is the structure handed to the broadcast callbacks.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	Seat    *EventSeat             `json:"seat,omitempty"`
	Action  *engine.Action         `json:"action,omitempty"`
	State   *SyncState             `json:"state,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Errors returned by table operations. The engine itself stays
// permissive; seat and turn discipline is enforced here.
var (
	ErrTableFull     = errors.New("table already has four seated users")
	ErrAlreadySeated = errors.New("user already holds a seat")
	ErrNotSeated     = errors.New("user holds no seat at this table")
	ErrNotStarted    = errors.New("game has not started")
	ErrAlreadyStart  = errors.New("game already started")
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not this seat's turn")
)

// Table hosts one game for four seated users. All access to the
// embedded engine is serialized by the table's mutex; the engine itself
// is single-owner and never shared across tables.
type Table struct {
	ID uuid.UUID

	Seats  [engine.NumPlayers]uuid.UUID
	seatOf map[uuid.UUID]uint8
	seated int

	Game     *engine.Game
	Started  bool
	GameOver bool

	// TurnID increments on every applied action; clients use it to
	// discard stale syncs.
	TurnID int

	mu  sync.Mutex
	log *logrus.Entry

	// Transport callbacks. Nil callbacks are skipped; the table never
	// owns a connection.
	BroadcastFn       func(ev GameEvent)
	BroadcastToSeatFn func(seat uint8, ev GameEvent)
	OnGameEnd         OnGameEndFunc
}

// NewTable creates an empty table with a fresh ID.
func NewTable() *Table {
	id, _ := uuid.NewRandom()
	return &Table{
		ID:     id,
		seatOf: make(map[uuid.UUID]uint8, engine.NumPlayers),
		log:    logrus.WithField("table", id),
	}
}

// Seat assigns the user the next free seat and returns it.
func (t *Table) Seat(userID uuid.UUID) (uint8, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seatOf[userID]; ok {
		return 0, ErrAlreadySeated
	}
	if t.seated == engine.NumPlayers {
		return 0, ErrTableFull
	}
	seat := uint8(t.seated)
	t.Seats[seat] = userID
	t.seatOf[userID] = seat
	t.seated++
	t.log.WithFields(logrus.Fields{"user": userID, "seat": seat}).Info("user seated")
	return seat, nil
}

// Start deals a new game once all four seats are filled.
func (t *Table) Start(seed uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Started {
		return ErrAlreadyStart
	}
	if t.seated != engine.NumPlayers {
		return errors.New("need four seated users to start")
	}
	t.Game = engine.NewGame(seed)
	t.Started = true
	t.log.WithField("seed", seed).Info("game started")

	t.fireEvent(GameEvent{Type: EventTableStart, Payload: map[string]interface{}{
		"round": t.Game.State.RoundCount,
	}})
	t.fireTurn()
	t.syncAllLocked()
	return nil
}

// LegalActionsFor returns the actions the user's seat may take right
// now. Off-turn callers get an empty list, not an error, so clients can
// poll without special-casing.
func (t *Table) LegalActionsFor(userID uuid.UUID) ([]engine.Action, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, ok := t.seatOf[userID]
	if !ok {
		return nil, ErrNotSeated
	}
	if !t.Started {
		return nil, ErrNotStarted
	}
	if seat != t.Game.State.ActivePlayer {
		return nil, nil
	}
	return t.Game.LegalActions(), nil
}

// Act applies the user's action. A nil action is a pass.
func (t *Table) Act(userID uuid.UUID, a *engine.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, ok := t.seatOf[userID]
	if !ok {
		return ErrNotSeated
	}
	if !t.Started {
		return ErrNotStarted
	}
	if t.GameOver {
		return ErrGameOver
	}
	if seat != t.Game.State.ActivePlayer {
		return ErrNotYourTurn
	}

	roundBefore := t.Game.State.RoundCount
	activeBefore := t.Game.State.ActivePlayer

	if err := t.Game.ApplyAction(a); err != nil {
		t.log.WithFields(logrus.Fields{"seat": seat, "err": err}).Warn("action rejected")
		return err
	}
	t.TurnID++

	ev := GameEvent{Type: EventActionApplied, Seat: &EventSeat{Seat: seat, UserID: userID}, Action: a}
	if a == nil {
		ev.Type = EventPlayerPass
		ev.Action = nil
	}
	t.fireEvent(ev)

	if t.Game.State.Phase == engine.PhaseFinished {
		t.finishLocked()
		return nil
	}
	if t.Game.State.RoundCount != roundBefore {
		t.fireEvent(GameEvent{Type: EventRoundStarted, Payload: map[string]interface{}{
			"round": t.Game.State.RoundCount,
		}})
	}
	if t.Game.State.ActivePlayer != activeBefore {
		t.fireTurn()
	}
	t.syncAllLocked()
	return nil
}

// Pass yields the user's turn, folding or aborting as the rules demand.
func (t *Table) Pass(userID uuid.UUID) error { return t.Act(userID, nil) }

// View returns the game state as the user's seat may see it.
func (t *Table) View(userID uuid.UUID) (engine.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, ok := t.seatOf[userID]
	if !ok {
		return engine.GameState{}, ErrNotSeated
	}
	if !t.Started {
		return engine.GameState{}, ErrNotStarted
	}
	return t.Game.PlayerView(seat), nil
}

// ActiveUser returns the user holding the seat whose turn it is.
func (t *Table) ActiveUser() (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.Started {
		return uuid.Nil, ErrNotStarted
	}
	if t.GameOver {
		return uuid.Nil, ErrGameOver
	}
	return t.Seats[t.Game.State.ActivePlayer], nil
}

func (t *Table) finishLocked() {
	t.GameOver = true
	winners := [2]uint8{0, 2}
	if t.Game.State.TeamWon(1) {
		winners = [2]uint8{1, 3}
	}
	t.log.WithField("winners", winners).Info("game over")

	t.fireEvent(GameEvent{Type: EventGameEnd, Payload: map[string]interface{}{
		"winners": winners,
	}})
	t.syncAllLocked()
	if t.OnGameEnd != nil {
		t.OnGameEnd(t.ID, winners)
	}
}

func (t *Table) fireTurn() {
	seat := t.Game.State.ActivePlayer
	t.fireEvent(GameEvent{Type: EventTurnChanged, Seat: &EventSeat{Seat: seat, UserID: t.Seats[seat]}})
}

// fireEvent hands a public event to the broadcast callback, if wired.
func (t *Table) fireEvent(ev GameEvent) {
	if t.BroadcastFn == nil {
		return
	}
	t.BroadcastFn(ev)
}

// syncAllLocked sends every seat its private view of the game.
func (t *Table) syncAllLocked() {
	if t.BroadcastToSeatFn == nil {
		return
	}
	for seat := uint8(0); seat < engine.NumPlayers; seat++ {
		st := t.syncStateFor(seat)
		t.BroadcastToSeatFn(seat, GameEvent{Type: EventPrivateSyncState, State: &st})
	}
}
