package calculator

import (
	"errors"
	"math/rand/v2"

	"github.com/mmynk/finplanner/internal/models"
)

var (
	ErrNoRecommendations = errors.New("no recommendations to pick an advertisement from")
	ErrNoAdvertisements  = errors.New("selected category has no advertisements")
)

// Picker is a source of uniform random indexes. *rand.Rand satisfies it.
type Picker interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

// RandomPicker uses the global math/rand/v2 source and is safe for
// concurrent use.
type RandomPicker struct{}

// IntN implements Picker.
func (RandomPicker) IntN(n int) int { return rand.IntN(n) }

// SelectAdvertisement picks a recommendation uniformly at random and then one
// of its advertisements uniformly at random.
func SelectAdvertisement(recs []models.InvestmentRecommendation, p Picker) (models.Advertisement, error) {
	if len(recs) == 0 {
		return models.Advertisement{}, ErrNoRecommendations
	}
	rec := recs[p.IntN(len(recs))]
	ads := rec.Category.Ads
	if len(ads) == 0 {
		return models.Advertisement{}, ErrNoAdvertisements
	}
	return models.Advertisement{
		CategoryKey: rec.Category.Key,
		Text:        ads[p.IntN(len(ads))],
	}, nil
}
