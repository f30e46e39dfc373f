// Strategies turning the vote vector of the search into a single move
package decision

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/samber/lo"

	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

var (
	ErrNoVotes         = errors.New("decision: no direction received a vote")
	ErrUnknownStrategy = errors.New("decision: unknown strategy")
)

// Picks the move to play, rng is owned by the caller and may be used
// to resolve ties, implementations must not keep it
type Strategy interface {
	Decide(votes search.Votes, rng *rand.Rand) (search.Direction, error)
}

// Direction with the most votes, ties drawn uniformly
type Majority struct{}

func (Majority) Decide(votes search.Votes, rng *rand.Rand) (search.Direction, error) {
	best := mostVoted(votes)
	if len(best) == 0 {
		return 0, ErrNoVotes
	}
	if len(best) == 1 {
		return best[0], nil
	}
	return best[rng.Intn(len(best))], nil
}

func (Majority) String() string { return "majority" }

// Direction with the most votes, ties resolved by the position in Order.
// Directions missing from Order lose every tie
type Preference struct {
	Order []search.Direction
}

// Corner strategy, keeps the big tiles at the bottom left
func DefaultPreference() Preference {
	return Preference{Order: []search.Direction{search.Down, search.Left, search.Right, search.Up}}
}

func (p Preference) Decide(votes search.Votes, _ *rand.Rand) (search.Direction, error) {
	best := mostVoted(votes)
	if len(best) == 0 {
		return 0, ErrNoVotes
	}
	for _, d := range p.Order {
		if lo.Contains(best, d) {
			return d, nil
		}
	}
	return best[0], nil
}

func (Preference) String() string { return "preference" }

// Draw a direction with probability proportional to its votes
type RandomBag struct{}

func (RandomBag) Decide(votes search.Votes, rng *rand.Rand) (search.Direction, error) {
	total := votes.Total()
	if total <= 0 {
		return 0, ErrNoVotes
	}
	n := rng.Intn(total)
	for _, d := range search.Directions {
		if n < votes[d] {
			return d, nil
		}
		n -= votes[d]
	}
	panic(fmt.Sprintf("[decision] RandomBag: draw out of range for %v", votes))
}

func (RandomBag) String() string { return "random" }

// Directions sharing the highest positive vote count, in the canonical order
func mostVoted(votes search.Votes) []search.Direction {
	top := lo.Max(votes[:])
	if top <= 0 {
		return nil
	}
	return lo.Filter(search.Directions[:], func(d search.Direction, _ int) bool {
		return votes[d] == top
	})
}

func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "majority":
		return Majority{}, nil
	case "preference":
		return DefaultPreference(), nil
	case "random":
		return RandomBag{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
