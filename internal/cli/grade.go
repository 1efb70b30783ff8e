package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
	"pub-trivia-service/internal/pack"
	"github.com/spf13/cobra"
)

// gradeSubmission is the on-disk shape of one player's answers: one answer
// slice per round, indexed by round.
type gradeSubmission struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Answers [][]string `json:"answers"`
}

// NewGradeCmd builds the offline batch grader: a terminal y/n loop over a
// pack CSV and a submissions file, scored through the same round ledgers the
// server uses. Handy for grading a game played on paper.
func NewGradeCmd() *cobra.Command {
	var packPath, subsPath string
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a set of submissions interactively from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd.OutOrStdout(), cmd.InOrStdin(), packPath, subsPath)
		},
	}
	cmd.Flags().StringVar(&packPath, "pack", "", "path to question pack CSV")
	cmd.Flags().StringVar(&subsPath, "submissions", "", "path to submissions JSON")
	_ = cmd.MarkFlagRequired("pack")
	_ = cmd.MarkFlagRequired("submissions")
	return cmd
}

func runGrade(out io.Writer, in io.Reader, packPath, subsPath string) error {
	packFile, err := os.Open(packPath)
	if err != nil {
		return err
	}
	defer packFile.Close()
	rounds, err := pack.ParseCSV(packFile)
	if err != nil {
		return err
	}

	subsData, err := os.ReadFile(subsPath)
	if err != nil {
		return err
	}
	var submissions []gradeSubmission
	if err := json.Unmarshal(subsData, &submissions); err != nil {
		return fmt.Errorf("parse submissions: %w", err)
	}

	session := game.NewSession("offline", domain.Host{ID: "host", Name: "host"})
	if err := session.SetRounds(rounds); err != nil {
		return err
	}
	for _, sub := range submissions {
		if err := session.AddPlayer(sub.ID, sub.Name); err != nil {
			return fmt.Errorf("player %q: %w", sub.Name, err)
		}
	}
	if err := session.StartGame(); err != nil {
		return err
	}

	prompts := bufio.NewScanner(in)
	for ri := range rounds {
		fmt.Fprintf(out, "\n=== Grading round: %s ===\n", rounds[ri].Title)
		for _, sub := range submissions {
			if ri >= len(sub.Answers) || len(sub.Answers[ri]) == 0 {
				continue // no submission for this round, scores zero by omission
			}
			if err := session.RecordAnswers(sub.ID, ri, sub.Answers[ri]); err != nil {
				return fmt.Errorf("answers for %q round %d: %w", sub.Name, ri, err)
			}
		}
		if err := session.StartGrading(); err != nil {
			return err
		}
		for {
			item, more := session.NextGradeItem()
			if !more {
				break
			}
			fmt.Fprintf(out, "\n[%d/%d] %s\n", item.Position, item.Total, item.QuestionText)
			fmt.Fprintf(out, "Reference answer: %s\n", item.Answer)
			fmt.Fprintf(out, "%s answered: %s\n", item.PlayerName, item.PlayerAnswer)
			fmt.Fprintf(out, "Mark correct? (y/n): ")
			if !prompts.Scan() {
				return fmt.Errorf("input ended before grading finished")
			}
			correct := strings.EqualFold(strings.TrimSpace(prompts.Text()), "y")
			if err := session.RecordVerdict(item.RoundIndex, item.QuestionIndex, item.PlayerID, correct); err != nil {
				return err
			}
		}
		if _, err := session.AdvanceRound(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n=== Final scores ===\n")
	for _, entry := range session.Scoreboard().Entries {
		fmt.Fprintf(out, "%s: %d points\n", entry.Name, entry.Score)
	}
	return nil
}
