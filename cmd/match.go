package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/internal/domain/vacancy"
)

var (
	matchRole         string
	matchLevel        string
	matchPurpose      string
	matchBenchmarks   string
	matchCompetencies []string
	matchLimit        int
	matchJSON         bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one vacancy match and print the report",
	Long: `Record a vacancy built from flags, rank the population against its
benchmark employees and print the top candidates.`,
	Example: `  talentmatch match --role "Data Analyst" --level Mid-Level \
    --competency SQL --competency Storytelling --benchmarks 312,335`,
	RunE: runMatch,
}

func init() {
	f := matchCmd.Flags()
	f.StringVar(&matchRole, "role", "", "role name")
	f.StringVar(&matchLevel, "level", "", "job level: Junior, Mid-Level or Senior")
	f.StringVar(&matchPurpose, "purpose", "", "role purpose")
	f.StringVar(&matchBenchmarks, "benchmarks", "", "comma-separated benchmark employee ids (1-3)")
	f.StringArrayVar(&matchCompetencies, "competency", nil, "required competency (repeatable)")
	f.IntVar(&matchLimit, "limit", 0, "rows in the top table (0 uses top_n from config)")
	f.BoolVar(&matchJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	svc, err := newService(cfg, store)
	if err != nil {
		_ = store.Close()
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	rep, err := svc.Match(ctx, matchVacancy(), matchLimit)
	if err != nil {
		return err
	}

	if matchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printReport(cmd.OutOrStdout(), rep)
}

// matchVacancy assembles the vacancy from flags. Competencies pass through
// an ItemList so blank entries are dropped.
func matchVacancy() model.Vacancy {
	competencies := vacancy.NewItemList(matchCompetencies...)
	return model.Vacancy{
		RoleName:     matchRole,
		JobLevel:     matchLevel,
		RolePurpose:  matchPurpose,
		Competencies: competencies.Items(),
		BenchmarkIDs: matchBenchmarks,
	}
}

func printReport(out io.Writer, rep model.Report) error {
	fmt.Fprintf(out, "Run %d: %d candidates ranked, %d excluded, best %.2f%%\n\n",
		rep.RunID, len(rep.Rows), rep.Excluded, rep.MaxRate)
	for _, w := range rep.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if len(rep.Top) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tROLE\tDEPARTMENT\tGRADE\tMATCH %")
	for _, r := range rep.Top {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%.2f\n",
			r.Rank, r.EmployeeID, r.Name, r.Role, r.Department, r.Grade, r.FinalRate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.GroupMeans) > 0 {
		means := make([]string, 0, len(rep.GroupMeans))
		for _, g := range rep.GroupMeans {
			means = append(means, fmt.Sprintf("%s %.1f", g.Group, g.MeanRate))
		}
		fmt.Fprintf(out, "\nTGV means: %s\n", strings.Join(means, ", "))
	}
	return nil
}
