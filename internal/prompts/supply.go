package prompts

import (
	"math/rand"
	"sync"
	"time"
)

// Supply draws prompts from a Library without repeating the excluded ones.
// Once a pack is exhausted it draws from the whole pack again.
type Supply struct {
	lib *Library
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSupply(lib *Library) *Supply {
	return NewSeededSupply(lib, time.Now().UnixNano())
}

func NewSeededSupply(lib *Library, seed int64) *Supply {
	return &Supply{
		lib: lib,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (s *Supply) NextPrompt(packKey string, exclude map[string]struct{}) (string, bool) {
	pack, ok := s.lib.Pack(packKey)
	if !ok || len(pack.Prompts) == 0 {
		return "", false
	}
	candidates := selectUnused(pack.Prompts, exclude)
	if len(candidates) == 0 {
		candidates = pack.Prompts
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return candidates[s.rng.Intn(len(candidates))], true
}

func selectUnused(pool []string, used map[string]struct{}) []string {
	selected := make([]string, 0, len(pool))
	for _, prompt := range pool {
		if _, ok := used[prompt]; ok {
			continue
		}
		selected = append(selected, prompt)
	}
	return selected
}
