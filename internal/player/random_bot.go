package player

import (
	"math/rand"
	"strconv"

	"github.com/dogrules/dog/engine"
)

// RandomBot picks uniformly among the offered actions. Its randomness is
// its own seeded stream so simulations stay reproducible regardless of
// how the engine consumes its shuffle stream.
type RandomBot struct {
	BotName string
	rng     *rand.Rand
}

func NewRandomBot(seed int64) Player {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) Name() string {
	if b.BotName == "" {
		b.BotName = "RandomBot_" + strconv.Itoa(b.rng.Intn(100))
	}
	return b.BotName
}

func (b *RandomBot) ChooseAction(view *engine.GameState, actions []engine.Action) (*engine.Action, error) {
	if len(actions) == 0 {
		return nil, nil
	}
	a := actions[b.rng.Intn(len(actions))]
	return &a, nil
}
