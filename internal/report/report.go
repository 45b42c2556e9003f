package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/parcours/internal/model"
	"github.com/verte-zerg/parcours/internal/navigation"
	"github.com/verte-zerg/parcours/internal/store"
)

// Journey writes the module table, pacing and description of j.
func Journey(w io.Writer, j model.Journey, width int) error {
	modules := newTable("#", "", "Module", "Duration").alignRight(0)
	for i, m := range j.Modules {
		modules.add(strconv.Itoa(i+1), m.Icon, m.Label, m.Duration)
	}
	lines := []string{j.Description, ""}
	lines = append(lines, modules.lines()...)
	lines = append(lines, "",
		fmt.Sprintf("Pace: %s (transition %.1fs, reveal %dms, one at a time: %t)",
			j.Config.Rythme, j.Config.TransitionDuration, j.Config.RevealDelay, j.Config.ShowOneAtATime),
	)
	return writeLines(w, clip(lines, width))
}

// Ranking writes the ordered items of res with their recommendation reasons.
func Ranking(w io.Writer, res navigation.Result, width int) error {
	ranked := newTable("", "Item", "Type", "Score", "Priority", "Reason").alignRight(3)
	for _, item := range navigation.Annotate(res.OrderedItems, res.Recommendations) {
		mark := ""
		if item.IsRecommended {
			mark = "★"
		}
		ranked.add(mark, item.Label, item.Type, strconv.Itoa(item.RelevanceScore), string(item.Priority), item.Reason)
	}
	lines := []string{fmt.Sprintf("Mental state: %s", res.MentalState), ""}
	lines = append(lines, ranked.lines()...)
	if len(res.Recommendations) == 0 {
		lines = append(lines, "", "No recommendations yet.")
	}
	return writeLines(w, clip(lines, width))
}

// Questions writes stored question rows.
func Questions(w io.Writer, qs []store.Question, width int) error {
	if len(qs) == 0 {
		return writeLines(w, []string{"No questions stored."})
	}
	stored := newTable("ID", "Mode", "Question").alignRight(0)
	for _, q := range qs {
		stored.add(strconv.FormatInt(q.ID, 10), q.Mode, q.Text)
	}
	return writeLines(w, clip(stored.lines(), width))
}

func writeLines(w io.Writer, lines []string) error {
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
