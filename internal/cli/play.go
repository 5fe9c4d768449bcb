package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/clock"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/play"
)

func newPlayCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a puzzle interactively",
		Long: `Play a puzzle in an interactive session.

Commands during play:
  show            display the board and current placements
  goto <n>        jump to image n (1-based)
  next / prev     move between images
  put <word>      place (or un-place) a word on the current image
  submit          submit the current turn for validation
  quit            abandon the session`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, boardID)
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id to play (defaults to today's puzzle)")

	return cmd
}

func runPlay(cmd *cobra.Command, boardID string) error {
	path := "/api/puzzle/daily"
	if boardID != "" {
		path = fmt.Sprintf("/api/puzzle/%s", boardID)
	}

	var puzzle Puzzle
	if err := client.Get(path, &puzzle); err != nil {
		return err
	}

	machine := play.NewMachine(clock.New())
	machine.OnThemeCompleted = func(imageID model.ImageID) {
		for _, img := range puzzle.Images {
			if img.ID == string(imageID) {
				fmt.Printf("\n*** Theme completed: %s ***\n", img.Theme)
			}
		}
	}
	playSessionID := uuid.NewString()
	machine.LoadBoard(clientBoardFromPuzzle(puzzle), model.PlaySessionID(playSessionID))

	fmt.Printf("Playing %s (%s). Type 'help' for commands.\n", puzzle.BoardID, puzzle.Date)
	printBoard(machine, puzzle)

	scanner := bufio.NewScanner(os.Stdin)
	for machine.Phase() == play.PhasePlaying {
		fmt.Printf("turn %d> ", machine.CurrentTurn())
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			fmt.Println("commands: show, goto <n>, next, prev, put <word>, submit, quit")
		case "show":
			printBoard(machine, puzzle)
		case "goto":
			if len(fields) != 2 {
				fmt.Println("usage: goto <n>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: goto <n>")
				continue
			}
			machine.SelectImage(n - 1)
			printCurrentImage(machine, puzzle)
		case "next":
			machine.NextSlide()
			printCurrentImage(machine, puzzle)
		case "prev":
			machine.PreviousSlide()
			printCurrentImage(machine, puzzle)
		case "put":
			if len(fields) != 2 {
				fmt.Println("usage: put <word>")
				continue
			}
			wordID, ok := wordIDByText(puzzle, fields[1])
			if !ok {
				fmt.Printf("no such word: %s\n", fields[1])
				continue
			}
			if err := machine.AssignWord(wordID); err != nil {
				fmt.Printf("cannot place: %s\n", err)
				continue
			}
			printCurrentImage(machine, puzzle)
		case "submit":
			outcome, err := machine.SubmitTurn(cmd.Context(), client)
			if err != nil {
				fmt.Printf("submit failed, try again: %s\n", err)
				continue
			}
			fmt.Printf("Turn %d: %d correct, %d incorrect (%d/%d total)\n",
				outcome.Turn, len(outcome.Correct), len(outcome.Incorrect),
				machine.CorrectCount(), model.TotalWords)
		case "quit":
			return nil
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}

	score, err := machine.EndGame(cmd.Context(), client)
	if err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	result := ScoreResult{
		BoardID:       string(score.BoardID),
		CorrectWords:  score.CorrectWords,
		TotalWords:    score.TotalWords,
		Turns:         score.TurnsUsed,
		MaxTurns:      score.MaxTurns,
		TimeElapsed:   score.TimeElapsed,
		IsWin:         score.IsWin,
		SessionID:     playSessionID,
		CompletedAt:   score.CompletedAt,
		GameSessionID: string(score.GameSessionID),
	}
	result.WordTurns = make(map[string]int, len(score.WordTurns))
	for w, t := range score.WordTurns {
		result.WordTurns[string(w)] = t
	}
	out.Print(result)

	if !score.Validated {
		fmt.Println("(score computed locally; server confirmation failed)")
	}
	return nil
}

func clientBoardFromPuzzle(p Puzzle) *model.ClientBoard {
	board := &model.ClientBoard{
		ID:         model.BoardID(p.BoardID),
		PuzzleDate: p.Date,
	}
	for _, img := range p.Images {
		board.Images = append(board.Images, model.ClientImage{
			ID:         model.ImageID(img.ID),
			Theme:      img.Theme,
			MatchCount: img.MatchCount,
			URL:        img.URL,
		})
	}
	for _, w := range p.Words {
		board.Words = append(board.Words, model.ClientWord{
			ID:   model.WordID(w.ID),
			Text: w.Text,
		})
	}
	return board
}

func wordIDByText(p Puzzle, text string) (model.WordID, bool) {
	for _, w := range p.Words {
		if strings.EqualFold(w.Text, text) {
			return model.WordID(w.ID), true
		}
	}
	return "", false
}

func printBoard(m *play.Machine, p Puzzle) {
	placements := m.Placements()

	fmt.Println("\nImages:")
	for i, img := range p.Images {
		marker := "  "
		if i == m.CurrentSlide() {
			marker = "> "
		}
		remaining := m.Remaining(model.ImageID(img.ID))
		fmt.Printf("%s%d. %s (%d to place)\n", marker, i+1, img.Theme, remaining)
	}

	fmt.Println("\nWords:")
	var free, placed, locked []string
	for _, w := range p.Words {
		switch {
		case m.IsWordLocked(model.WordID(w.ID)):
			locked = append(locked, w.Text)
		case placements[model.WordID(w.ID)] != "":
			placed = append(placed, w.Text)
		default:
			free = append(free, w.Text)
		}
	}
	if len(free) > 0 {
		fmt.Printf("  available: %s\n", strings.Join(free, ", "))
	}
	if len(placed) > 0 {
		fmt.Printf("  placed:    %s\n", strings.Join(placed, ", "))
	}
	if len(locked) > 0 {
		fmt.Printf("  solved:    %s\n", strings.Join(locked, ", "))
	}
	fmt.Println()
}

func printCurrentImage(m *play.Machine, p Puzzle) {
	img := p.Images[m.CurrentSlide()]
	fmt.Printf("On image %d: %s (%d to place)\n", m.CurrentSlide()+1, img.Theme, m.Remaining(model.ImageID(img.ID)))
}
