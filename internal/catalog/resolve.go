package catalog

import (
	"math/rand/v2"
	"strings"
)

// Rand is the randomness used for picks and shuffles. *rand.Rand from
// math/rand/v2 satisfies it; tests inject a seeded one.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

func orDefault(rnd Rand) Rand {
	if rnd == nil {
		return globalRand{}
	}
	return rnd
}

// Resolve returns the URL of an image for category.
//
// A non-empty filename is tried first: the first record whose name contains
// it wins. Otherwise, or when nothing matches, a uniformly random record of
// the category's folder is returned. The boolean is false when there is no
// image at all; callers then use their own fallback.
func Resolve(records []Record, category, filename string, rnd Rand) (string, bool) {
	if filename != "" {
		for _, r := range records {
			if r.usable() && strings.Contains(r.Name, filename) {
				return r.PublicURL, true
			}
		}
	}

	candidates := Filter(records, FolderFor(category))
	if len(candidates) == 0 {
		return "", false
	}

	return candidates[orDefault(rnd).IntN(len(candidates))].PublicURL, true
}
