// Package pack parses the question-pack CSV format moderators author their
// games in. The format is line oriented: a one-column row opens a round with
// that title, a three-column row adds "question,answer,points" to the open
// round. Blank lines are ignored.
package pack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pub-trivia-service/internal/domain"
)

// ParseCSV reads rounds from r. Every round must end up with at least one
// question, and every question needs a positive integer point value.
func ParseCSV(r io.Reader) ([]domain.Round, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // header rows and question rows differ
	reader.TrimLeadingSpace = true

	var rounds []domain.Round
	var current *domain.Round

	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.Questions) == 0 {
			return fmt.Errorf("round %q has no questions", current.Title)
		}
		rounds = append(rounds, *current)
		current = nil
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read pack csv: %w", err)
		}

		fields := make([]string, len(record))
		for i, f := range record {
			fields[i] = strings.TrimSpace(f)
		}

		switch len(fields) {
		case 1:
			if fields[0] == "" {
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
			current = &domain.Round{Title: fields[0]}
		case 3:
			if current == nil {
				return nil, fmt.Errorf("question before any round header: %q", strings.Join(fields, ","))
			}
			points, err := strconv.Atoi(fields[2])
			if err != nil || points <= 0 {
				return nil, fmt.Errorf("invalid point value %q for question %q", fields[2], fields[0])
			}
			current.Questions = append(current.Questions, domain.Question{
				Text:   fields[0],
				Answer: fields[1],
				Points: points,
			})
		default:
			return nil, fmt.Errorf("invalid row %q: want 1 column (round title) or 3 (question,answer,points)", strings.Join(fields, ","))
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return rounds, nil
}
