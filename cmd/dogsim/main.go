// Command dogsim plays random bots against each other to soak-test the
// rules engine and the table layer. Configuration comes from the
// environment (optionally a .env file):
//
//	DOGSIM_GAMES        number of games to play (default 20)
//	DOGSIM_SEED         base RNG seed, 0 means time-based (default 0)
//	DOGSIM_MAX_ACTIONS  per-game action cap before giving up (default 20000)
//	DOGSIM_LOG_LEVEL    logrus level (default "warn")
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/dogrules/dog/engine"
	table "github.com/dogrules/dog/internal/game"
	"github.com/dogrules/dog/internal/player"
)

type config struct {
	Games      int
	Seed       uint64
	MaxActions int
}

func loadConfig() config {
	_ = godotenv.Load()

	cfg := config{
		Games:      intEnv("DOGSIM_GAMES", 20),
		Seed:       uint64(intEnv("DOGSIM_SEED", 0)),
		MaxActions: intEnv("DOGSIM_MAX_ACTIONS", 20000),
	}
	if cfg.Games < 1 {
		cfg.Games = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	level, err := logrus.ParseLevel(envOr("DOGSIM_LOG_LEVEL", "warn"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("bad integer in environment, using default")
		return def
	}
	return n
}

type result struct {
	winners  [2]uint8
	actions  int
	finished bool
}

// runGame hosts one table of four random bots and plays it out.
func runGame(seed uint64, maxActions int) (result, error) {
	tbl := table.NewTable()

	var users [engine.NumPlayers]uuid.UUID
	bots := [engine.NumPlayers]player.Player{}
	for i := range users {
		users[i] = uuid.New()
		if _, err := tbl.Seat(users[i]); err != nil {
			return result{}, err
		}
		bots[i] = player.NewRandomBot(int64(seed) + int64(i))
	}

	var res result
	tbl.OnGameEnd = func(_ uuid.UUID, winners [2]uint8) {
		res.winners = winners
		res.finished = true
	}
	if err := tbl.Start(seed); err != nil {
		return result{}, err
	}

	for res.actions = 0; res.actions < maxActions && !tbl.GameOver; res.actions++ {
		userID, err := tbl.ActiveUser()
		if err != nil {
			break
		}
		seat := tbl.Game.State.ActivePlayer
		actions, err := tbl.LegalActionsFor(userID)
		if err != nil {
			return res, err
		}
		view, err := tbl.View(userID)
		if err != nil {
			return res, err
		}
		a, err := bots[seat].ChooseAction(&view, actions)
		if err != nil {
			return res, err
		}
		if err := tbl.Act(userID, a); err != nil {
			return res, err
		}

		if got := tbl.Game.State.CardCount(); got != engine.DeckSize {
			return res, fmt.Errorf("card count %d after %d actions, want %d", got, res.actions, engine.DeckSize)
		}
	}
	return res, nil
}

func main() {
	cfg := loadConfig()
	logrus.WithFields(logrus.Fields{
		"games": cfg.Games, "seed": cfg.Seed, "maxActions": cfg.MaxActions,
	}).Info("starting simulation")

	bar, _ := pterm.DefaultProgressbar.WithTotal(cfg.Games).WithTitle("Simulating").Start()

	teamWins := map[string]int{}
	totalActions := 0
	unfinished := 0

	for i := 0; i < cfg.Games; i++ {
		res, err := runGame(cfg.Seed+uint64(i)*7919, cfg.MaxActions)
		if err != nil {
			pterm.Error.Printfln("game %d failed: %v", i, err)
			os.Exit(1)
		}
		totalActions += res.actions
		if res.finished {
			teamWins[fmt.Sprintf("seats %d+%d", res.winners[0], res.winners[1])]++
		} else {
			unfinished++
		}
		bar.Increment()
	}

	data := pterm.TableData{{"Outcome", "Games"}}
	for team, wins := range teamWins {
		data = append(data, []string{team, strconv.Itoa(wins)})
	}
	data = append(data,
		[]string{"unfinished (action cap)", strconv.Itoa(unfinished)},
		[]string{"avg actions per game", strconv.Itoa(totalActions / cfg.Games)},
	)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		logrus.WithError(err).Warn("summary render failed")
	}
}
