package model

import (
	"fmt"
	"time"
)

// BoardID uniquely identifies a puzzle board
type BoardID string

// ImageID uniquely identifies an image slot on a board
type ImageID string

// WordID uniquely identifies a word on a board
type WordID string

// Gameplay constants. A board always carries 20 words across 5 images,
// and a game allows at most 4 turns.
const (
	TotalWords  = 20
	TotalImages = 5
	MaxTurns    = 4
)

// matchCounts is the fixed capacity distribution across a board's images.
var matchCounts = []int{6, 5, 4, 3, 2}

// ImageSlot is one of the themed targets a word can be assigned to.
// MatchCount is the fixed number of words whose correct assignment is
// this image.
type ImageSlot struct {
	ID         ImageID `json:"id"`
	Theme      string  `json:"theme"`
	MatchCount int     `json:"match_count"`
	URL        string  `json:"url"`
}

// Word is a single puzzle word. CorrectImageID is ground truth and must
// never be serialized to clients before the game is complete.
type Word struct {
	ID             WordID  `json:"id"`
	Text           string  `json:"text"`
	CorrectImageID ImageID `json:"correct_image_id"`
}

// Board is an immutable puzzle definition: 5 images with capacities
// {6,5,4,3,2} and 20 words each mapped to exactly one image.
type Board struct {
	ID         BoardID     `json:"id"`
	PuzzleDate string      `json:"puzzle_date"` // YYYY-MM-DD, UTC
	Images     []ImageSlot `json:"images"`
	Words      []Word      `json:"words"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ImageByID returns the image slot with the given id, or nil
func (b *Board) ImageByID(id ImageID) *ImageSlot {
	for i := range b.Images {
		if b.Images[i].ID == id {
			return &b.Images[i]
		}
	}
	return nil
}

// WordByID returns the word with the given id, or nil
func (b *Board) WordByID(id WordID) *Word {
	for i := range b.Words {
		if b.Words[i].ID == id {
			return &b.Words[i]
		}
	}
	return nil
}

// Validate checks the board's structural invariants: 5 images whose
// match counts are a permutation of {2,3,4,5,6}, 20 words, and per-image
// word counts equal to each image's match count.
func (b *Board) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: missing board id", ErrInvalidBoard)
	}
	if len(b.Images) != TotalImages {
		return fmt.Errorf("%w: expected %d images, got %d", ErrInvalidBoard, TotalImages, len(b.Images))
	}
	if len(b.Words) != TotalWords {
		return fmt.Errorf("%w: expected %d words, got %d", ErrInvalidBoard, TotalWords, len(b.Words))
	}

	seenCounts := make(map[int]bool, TotalImages)
	wanted := make(map[int]bool, TotalImages)
	for _, c := range matchCounts {
		wanted[c] = true
	}
	for _, img := range b.Images {
		if img.ID == "" {
			return fmt.Errorf("%w: image with empty id", ErrInvalidBoard)
		}
		if !wanted[img.MatchCount] {
			return fmt.Errorf("%w: image %s has match count %d", ErrInvalidBoard, img.ID, img.MatchCount)
		}
		if seenCounts[img.MatchCount] {
			return fmt.Errorf("%w: duplicate match count %d", ErrInvalidBoard, img.MatchCount)
		}
		seenCounts[img.MatchCount] = true
	}

	perImage := make(map[ImageID]int, TotalImages)
	seenWords := make(map[WordID]bool, TotalWords)
	for _, w := range b.Words {
		if w.ID == "" {
			return fmt.Errorf("%w: word with empty id", ErrInvalidBoard)
		}
		if seenWords[w.ID] {
			return fmt.Errorf("%w: duplicate word id %s", ErrInvalidBoard, w.ID)
		}
		seenWords[w.ID] = true
		if b.ImageByID(w.CorrectImageID) == nil {
			return fmt.Errorf("%w: word %s maps to unknown image %s", ErrInvalidBoard, w.ID, w.CorrectImageID)
		}
		perImage[w.CorrectImageID]++
	}
	for _, img := range b.Images {
		if perImage[img.ID] != img.MatchCount {
			return fmt.Errorf("%w: image %s has %d words, match count is %d",
				ErrInvalidBoard, img.ID, perImage[img.ID], img.MatchCount)
		}
	}
	return nil
}

// ClientImage is the image slot as exposed to clients
type ClientImage struct {
	ID         ImageID `json:"id"`
	Theme      string  `json:"theme"`
	MatchCount int     `json:"match_count"`
	URL        string  `json:"url"`
}

// ClientWord is the word as exposed to clients pre-solve.
// Deliberately has no correctness field.
type ClientWord struct {
	ID   WordID `json:"id"`
	Text string `json:"text"`
}

// ClientBoard is the redacted board view sent to clients before a game
// is complete. The ground-truth word-to-image mapping is stripped.
type ClientBoard struct {
	ID         BoardID       `json:"board_id"`
	PuzzleDate string        `json:"date"`
	Images     []ClientImage `json:"images"`
	Words      []ClientWord  `json:"words"`
}

// ClientView returns the redacted view of the board. Word order is
// preserved; callers shuffle separately so the view itself stays pure.
func (b *Board) ClientView() *ClientBoard {
	images := make([]ClientImage, len(b.Images))
	for i, img := range b.Images {
		images[i] = ClientImage{
			ID:         img.ID,
			Theme:      img.Theme,
			MatchCount: img.MatchCount,
			URL:        img.URL,
		}
	}
	words := make([]ClientWord, len(b.Words))
	for i, w := range b.Words {
		words[i] = ClientWord{ID: w.ID, Text: w.Text}
	}
	return &ClientBoard{
		ID:         b.ID,
		PuzzleDate: b.PuzzleDate,
		Images:     images,
		Words:      words,
	}
}
