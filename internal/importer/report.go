package importer

import "lingodeck/internal/domain"

// ItemResult is the outcome of one batch item: either a created flashcard or
// the reason it failed. Exactly one of Flashcard and Err is set.
type ItemResult struct {
	AudioDisplayName string
	Flashcard        *domain.Flashcard
	Err              *domain.DomainError
}

// Succeeded reports whether this item produced a flashcard.
func (r ItemResult) Succeeded() bool {
	return r.Err == nil
}

// BatchReport aggregates the per-item outcomes of one import run. Items
// preserves the input audio order so an operator re-running an import after
// fixing a subset of files gets a reproducible report.
// Succeeded + Failed always equals TotalPairs.
type BatchReport struct {
	TotalPairs int
	Succeeded  int
	Failed     int
	Items      []ItemResult
}
