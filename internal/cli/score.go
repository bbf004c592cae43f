package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"talentbridge/internal/domain/matching"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type scoreOutput struct {
	Score   int      `json:"match_score" yaml:"match_score"`
	Badge   string   `json:"badge" yaml:"badge"`
	Matched []string `json:"matched_skills" yaml:"matched_skills"`
	Missing []string `json:"missing_skills" yaml:"missing_skills"`
}

func newScoreCommand() *cobra.Command {
	var (
		candidate []string
		required  []string
		format    string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score candidate skills against a job's required skills",
		Example: `  talentbridge score --candidate go,sql --required go,sql,docker
  talentbridge score --candidate python --required python,react --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := matching.Explain(candidate, required)
			out := scoreOutput{
				Score:   b.Score,
				Badge:   string(b.Badge),
				Matched: b.Matched,
				Missing: b.Missing,
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "text":
				fmt.Fprintf(w, "score:   %d (%s)\n", out.Score, out.Badge)
				fmt.Fprintf(w, "matched: %s\n", strings.Join(out.Matched, ", "))
				fmt.Fprintf(w, "missing: %s\n", strings.Join(out.Missing, ", "))
				return nil
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				enc := yaml.NewEncoder(w)
				defer enc.Close()
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringSliceVar(&candidate, "candidate", nil, "candidate skills, comma separated")
	cmd.Flags().StringSliceVar(&required, "required", nil, "required skills, comma separated")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}
