// Package validation implements server-side turn checking. Correctness
// is always re-derived from the board's ground truth; nothing the client
// claims about its own placements is trusted.
package validation

import (
	"sort"

	"github.com/wordsnpics/wordsnpics/internal/model"
)

// Result classifies the placements of a single turn
type Result struct {
	Correct   []model.WordID
	Incorrect []model.WordID
}

// CorrectCount returns the number of correct placements
func (r Result) CorrectCount() int {
	return len(r.Correct)
}

// IncorrectCount returns the number of incorrect placements
func (r Result) IncorrectCount() int {
	return len(r.Incorrect)
}

// ValidateTurn classifies each placement against the board's ground
// truth. Total over its input: a word id not on the board classifies
// incorrect rather than erroring. Output slices are sorted, so the same
// input always yields the same result.
func ValidateTurn(board *model.Board, placements model.Placements) Result {
	var result Result
	for wordID, imageID := range placements {
		word := board.WordByID(wordID)
		if word == nil || word.CorrectImageID != imageID {
			result.Incorrect = append(result.Incorrect, wordID)
			continue
		}
		result.Correct = append(result.Correct, wordID)
	}

	sort.Slice(result.Correct, func(i, j int) bool { return result.Correct[i] < result.Correct[j] })
	sort.Slice(result.Incorrect, func(i, j int) bool { return result.Incorrect[i] < result.Incorrect[j] })
	return result
}
