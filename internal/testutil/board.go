package testutil

import (
	"fmt"
	"time"

	"github.com/wordsnpics/wordsnpics/internal/model"
)

// TestBoard builds a valid board fixture with deterministic IDs.
// Images img-1..img-5 carry match counts 6,5,4,3,2; words are named
// word-<image>-<n> and mapped to their image in order.
func TestBoard(id model.BoardID, date string) *model.Board {
	counts := []int{6, 5, 4, 3, 2}
	board := &model.Board{
		ID:         id,
		PuzzleDate: date,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, c := range counts {
		imgID := model.ImageID(fmt.Sprintf("img-%d", i+1))
		board.Images = append(board.Images, model.ImageSlot{
			ID:         imgID,
			Theme:      fmt.Sprintf("Theme %d", i+1),
			MatchCount: c,
			URL:        fmt.Sprintf("https://img.example/%s/%d.png", id, i+1),
		})
		for n := 1; n <= c; n++ {
			board.Words = append(board.Words, model.Word{
				ID:             model.WordID(fmt.Sprintf("word-%d-%d", i+1, n)),
				Text:           fmt.Sprintf("word %d.%d", i+1, n),
				CorrectImageID: imgID,
			})
		}
	}
	return board
}

// WordsForImage returns the fixture word IDs mapped to the given image index (1-based)
func WordsForImage(board *model.Board, imageIdx int) []model.WordID {
	imgID := model.ImageID(fmt.Sprintf("img-%d", imageIdx))
	var out []model.WordID
	for _, w := range board.Words {
		if w.CorrectImageID == imgID {
			out = append(out, w.ID)
		}
	}
	return out
}
