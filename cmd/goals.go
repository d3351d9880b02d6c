package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/dashboard"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

var (
	flagGoalTitle    string
	flagGoalType     string
	flagGoalTarget   string
	flagGoalDeadline string
	flagGoalNoDate   bool
	flagGoalsAll     bool
)

var goalsCmd = &cobra.Command{
	Use:     "goals",
	Aliases: []string{"goal"},
	Short:   "List and manage goals",
	RunE:    runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a goal",
	Example: `  fintrack goals add "Emergency fund" --target 50000 --deadline 2026-12-31
  fintrack goals add "June savings" --type monthly_savings --target 2000`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalsAdd,
}

var goalsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a goal's title, type, target or deadline",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsEdit,
}

var goalsRaceCmd = &cobra.Command{
	Use:   "race",
	Short: "Rank active goals by progress",
	RunE:  runGoalsRace,
}

func init() {
	goalsCmd.Flags().BoolVarP(&flagGoalsAll, "all", "a", false, "Include archived goals")

	for _, c := range []*cobra.Command{goalsAddCmd, goalsEditCmd} {
		c.Flags().StringVarP(&flagGoalType, "type", "t", string(model.GoalBalance), "Goal type: "+goalTypeList())
		c.Flags().StringVar(&flagGoalTarget, "target", "", "Target amount")
		c.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline YYYY-MM-DD")
	}
	goalsEditCmd.Flags().StringVar(&flagGoalTitle, "title", "", "New title")
	goalsEditCmd.Flags().BoolVar(&flagGoalNoDate, "clear-deadline", false, "Remove the deadline")
	_ = goalsAddCmd.MarkFlagRequired("target")

	goalsCmd.AddCommand(
		goalsAddCmd,
		goalsEditCmd,
		goalStateCmd("complete", "Mark a goal completed", func(s *store.Store, id int64) error { return s.SetGoalCompleted(id, true) }),
		goalStateCmd("reopen", "Mark a completed goal active again", func(s *store.Store, id int64) error { return s.SetGoalCompleted(id, false) }),
		goalStateCmd("archive", "Hide a goal from active views", (*store.Store).ArchiveGoal),
		goalStateCmd("delete", "Permanently delete a goal", (*store.Store).DeleteGoal),
		goalsRaceCmd,
	)
	rootCmd.AddCommand(goalsCmd)
}

func goalTypeList() string {
	names := make([]string, len(model.GoalTypes))
	for i, t := range model.GoalTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// goalStateCmd builds the single-id subcommands that only flip goal state.
func goalStateCmd(use, short string, apply func(*store.Store, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, _, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := apply(s, id); err != nil {
				return err
			}
			fmt.Printf("  Goal #%d: %s\n", id, use)
			return nil
		},
	}
}

func runGoalsList(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := readLedger(s, flagGoalsAll)
	if err != nil {
		return err
	}
	l.Config = cfg

	snap := l.snapshot()
	if len(snap.Goals) == 0 {
		fmt.Println("\n  No goals yet. Add one with `fintrack goals add`.")
		return nil
	}

	rows := make([][]string, 0, len(snap.Goals))
	for _, v := range snap.Goals {
		rows = append(rows, goalRow(l, v))
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Goals",
		Headers: []string{"ID", "Goal", "Type", "Progress", "Current", "Target", "Status", "Deadline"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func goalRow(l *ledger, v dashboard.GoalView) []string {
	status := "on track"
	switch {
	case v.Goal.Archived:
		status = "archived"
	case v.Goal.Completed:
		status = "completed"
	case !v.Progress.OnTrack:
		status = cli.RenderWarn("behind")
	}

	deadline := "-"
	if v.Deadline != nil {
		deadline = v.Deadline.Text
		if v.Deadline.Overdue {
			deadline = cli.RenderWarn(deadline)
		}
	}

	return []string{
		fmt.Sprintf("%d", v.Goal.ID),
		cli.Truncate(v.Info.Icon+" "+v.Goal.Title, 28),
		v.Info.Label,
		cli.RenderProgressBar(v.Progress.Percentage, 12),
		l.signed(v.Progress.Current),
		l.money(v.Progress.Target),
		status,
		deadline,
	}
}

func runGoalsAdd(_ *cobra.Command, args []string) error {
	n, err := parseNewGoal(args[0], flagGoalType, flagGoalTarget, flagGoalDeadline)
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.CreateGoal(n)
	if err != nil {
		return err
	}
	fmt.Printf("  Created goal #%d: %s\n", id, n.Title)
	return nil
}

func runGoalsEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.GetGoal(id)
	if err != nil {
		return err
	}

	u := store.GoalUpdate{Title: g.Title, Type: g.Type, TargetAmount: g.TargetAmount, Deadline: g.Deadline}
	flags := cmd.Flags()
	if flags.Changed("title") {
		u.Title = flagGoalTitle
	}
	if flags.Changed("type") {
		u.Type = model.GoalType(strings.ToLower(flagGoalType))
	}
	if flags.Changed("target") {
		if u.TargetAmount, err = decimal.NewFromString(flagGoalTarget); err != nil {
			return fmt.Errorf("%w: target %q", store.ErrInvalid, flagGoalTarget)
		}
	}
	if flags.Changed("deadline") {
		if u.Deadline, err = parseOptionalDate(flagGoalDeadline); err != nil {
			return err
		}
	}
	if flagGoalNoDate {
		u.Deadline = nil
	}

	if err := s.UpdateGoal(id, u); err != nil {
		return err
	}
	fmt.Printf("  Updated goal #%d\n", id)
	return nil
}

func runGoalsRace(_ *cobra.Command, _ []string) error {
	l, err := loadLedger()
	if err != nil {
		return err
	}

	race := l.snapshot().Race
	if len(race) == 0 {
		fmt.Println("\n  No active goals.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GOAL RACE"))
	fmt.Println()
	for i, r := range race {
		marker := " "
		if r.OnTrack {
			marker = "✓"
		}
		fmt.Printf("  %d. %s %s  %s\n", i+1, marker,
			cli.RenderProgressBar(r.Progress, 30), cli.Truncate(r.Title, 30))
	}
	fmt.Println()
	return nil
}

func parseNewGoal(title, typ, target, deadline string) (store.NewGoal, error) {
	n := store.NewGoal{
		Title: strings.TrimSpace(title),
		Type:  model.GoalType(strings.ToLower(typ)),
	}

	amt, err := decimal.NewFromString(target)
	if err != nil {
		return n, fmt.Errorf("%w: target %q", store.ErrInvalid, target)
	}
	n.TargetAmount = amt

	if n.Deadline, err = parseOptionalDate(deadline); err != nil {
		return n, err
	}
	return n, n.Validate()
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", store.ErrInvalid, s)
	}
	return &d, nil
}
