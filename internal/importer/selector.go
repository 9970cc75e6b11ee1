package importer

import (
	"math/rand"
	"sync"
	"time"

	"lingodeck/internal/domain"
)

// DistractorSelector picks wrong-answer images for each pair out of the
// batch's image pool. It owns the batch-wide claim set: once an image has
// been handed out as a distractor it is never handed out again within the
// same batch, so concurrent pairs cannot both claim it. Images that are some
// pair's correct answer are only eligible as distractors when no unclaimed
// neutral image remains.
type DistractorSelector struct {
	mu           sync.Mutex
	rng          *rand.Rand
	pool         []UploadedItem
	claimed      map[string]bool
	correctNames map[string]bool
	choices      int
}

func NewDistractorSelector(pool []UploadedItem, pairs []MatchedPair, choicesPerCard int) *DistractorSelector {
	correctNames := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		correctNames[p.CorrectImage.DisplayName] = true
	}
	return &DistractorSelector{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		pool:         pool,
		claimed:      make(map[string]bool),
		correctNames: correctNames,
		choices:      choicesPerCard,
	}
}

// Select claims choicesPerCard-1 distractors for a pair whose correct image
// is the given item. It fails with InsufficientDistractors rather than
// reusing an image when the pool cannot cover the request.
func (s *DistractorSelector) Select(correct UploadedItem) ([]UploadedItem, *domain.DomainError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var preferred, fallback []UploadedItem
	for _, img := range s.pool {
		if img.DisplayName == correct.DisplayName || s.claimed[img.DisplayName] {
			continue
		}
		if s.correctNames[img.DisplayName] {
			fallback = append(fallback, img)
		} else {
			preferred = append(preferred, img)
		}
	}

	need := s.choices - 1
	available := len(preferred) + len(fallback)
	if available < need {
		return nil, domain.NewInsufficientDistractorsError(need, available)
	}

	s.rng.Shuffle(len(preferred), func(i, j int) {
		preferred[i], preferred[j] = preferred[j], preferred[i]
	})
	s.rng.Shuffle(len(fallback), func(i, j int) {
		fallback[i], fallback[j] = fallback[j], fallback[i]
	})

	chosen := append(preferred, fallback...)[:need]
	for _, c := range chosen {
		s.claimed[c.DisplayName] = true
	}
	return chosen, nil
}

// PlaceCorrect inserts the correct image blob at a uniformly random position
// among the distractor blobs, preventing positional bias in the answer set.
func (s *DistractorSelector) PlaceCorrect(distractors [][]byte, correct []byte) ([][]byte, int) {
	s.mu.Lock()
	idx := s.rng.Intn(len(distractors) + 1)
	s.mu.Unlock()

	ordered := make([][]byte, 0, len(distractors)+1)
	ordered = append(ordered, distractors[:idx]...)
	ordered = append(ordered, correct)
	ordered = append(ordered, distractors[idx:]...)
	return ordered, idx
}
