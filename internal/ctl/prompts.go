package ctl

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/config"
	"github.com/spf13/cobra"
)

func addPrompts(topLevel *cobra.Command, cfg *config.Config) {
	maxDay := cfg.MaxDay

	cmd := &cobra.Command{
		Use:   "check-prompts [file]",
		Short: "Validate a prompts.json file.",
		Long: `Validate a prompts.json file.

Ids must be unique and lie in [1, max-day], texts must not be empty.
Days without a prompt are listed but are not an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.PromptsFile
			if len(args) == 1 {
				path = args[0]
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			var set models.PromptSet
			if err := json.Unmarshal(data, &set); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			problems, missing := checkPrompts(set, maxDay)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintln(out, "error:", p)
			}
			if len(missing) > 0 {
				fmt.Fprintf(out, "days without prompt: %s\n", formatDays(missing))
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d problem(s)", path, len(problems))
			}
			fmt.Fprintf(out, "%s: %d prompts ok\n", path, len(set.Prompts))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxDay, "max-day", maxDay, "last day of the sequence")

	topLevel.AddCommand(cmd)
}

func checkPrompts(set models.PromptSet, maxDay int) (problems []string, missing []int) {
	seen := make(map[int]bool, len(set.Prompts))
	for _, p := range set.Prompts {
		switch {
		case p.ID < 1 || p.ID > maxDay:
			problems = append(problems, fmt.Sprintf("id %d outside [1, %d]", p.ID, maxDay))
		case seen[p.ID]:
			problems = append(problems, fmt.Sprintf("id %d repeated", p.ID))
		}
		if strings.TrimSpace(p.Text) == "" {
			problems = append(problems, fmt.Sprintf("id %d has empty text", p.ID))
		}
		seen[p.ID] = true
	}
	for d := 1; d <= maxDay; d++ {
		if !seen[d] {
			missing = append(missing, d)
		}
	}
	return problems, missing
}

// formatDays collapses consecutive days into ranges: 1-3, 7.
func formatDays(days []int) string {
	var parts []string
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && days[j+1] == days[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, fmt.Sprint(days[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", days[i], days[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
