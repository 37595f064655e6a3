package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/finplanner/internal/calculator"
	"github.com/mmynk/finplanner/internal/cli"
	"github.com/mmynk/finplanner/internal/report"
	"github.com/mmynk/finplanner/internal/service"
	planner "github.com/mmynk/finplanner/pkg/planner"
	"github.com/mmynk/finplanner/pkg/planner/plannerconnect"
)

const requestTimeout = 30 * time.Second

var (
	flagName     string
	flagAge      string
	flagSalary   string
	flagExpenses []string
	flagApprox   []string
	flagServer   string
	flagReport   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a savings and investment plan",
	Long: "Build a savings and investment plan from a monthly salary and expenses.\n" +
		"Missing details are asked for interactively when running in a terminal.",
	Example: "  finplanner plan --name Asha --age 30 --salary 50000 --expense Rent=12000 --approx Food=8000",
	Args:    cobra.NoArgs,
	RunE:    runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagName, "name", "", "Your name")
	planCmd.Flags().StringVar(&flagAge, "age", "", "Your age in years")
	planCmd.Flags().StringVar(&flagSalary, "salary", "", "Monthly salary")
	planCmd.Flags().StringArrayVarP(&flagExpenses, "expense", "e", nil, "Accurate monthly expense as label=amount (repeatable)")
	planCmd.Flags().StringArrayVarP(&flagApprox, "approx", "a", nil, "Approximate monthly expense as label=amount (repeatable)")
	planCmd.Flags().StringVar(&flagServer, "server", "", "Plan through a finplanner server at this URL instead of locally")
	planCmd.Flags().StringVar(&flagReport, "report", "", "Also write an HTML report to this file (\"auto\" picks a name)")
	rootCmd.AddCommand(planCmd)
}

// planInput is everything needed to build one plan.
type planInput struct {
	Profile     planner.Profile
	Accurate    []planner.ExpenseItem
	Approximate []planner.ExpenseItem
}

func (in planInput) complete() bool {
	return strings.TrimSpace(in.Profile.Name) != "" &&
		strings.TrimSpace(in.Profile.Age) != "" &&
		strings.TrimSpace(in.Profile.MonthlySalary) != "" &&
		len(in.Accurate)+len(in.Approximate) > 0
}

func runPlan(cmd *cobra.Command, _ []string) error {
	in := planInput{
		Profile: planner.Profile{Name: flagName, Age: flagAge, MonthlySalary: flagSalary},
	}
	var err error
	if in.Accurate, err = parseExpenseFlags(flagExpenses); err != nil {
		return fmt.Errorf("--expense: %w", err)
	}
	if in.Approximate, err = parseExpenseFlags(flagApprox); err != nil {
		return fmt.Errorf("--approx: %w", err)
	}

	if !in.complete() {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return errors.New("--name, --age, --salary and at least one --expense or --approx are required when not running in a terminal")
		}
		if err := promptPlan(&in); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	var (
		result   *planner.ComputeRecommendationsResponse
		currency string
	)
	if flagServer != "" {
		result, currency, err = planRemote(ctx, plannerconnect.NewPlannerServiceClient(http.DefaultClient, flagServer), in)
	} else {
		result, currency, err = planLocal(in)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderRecommendations(currency, result))
	if result.FeaturedAd != nil {
		fmt.Fprintln(out, cli.RenderAdvertisement(result.FeaturedAd))
	}

	if flagReport != "" {
		path := flagReport
		if path == "auto" {
			path = report.FileName(result.User.Name, time.Now())
		}
		if err := writeReport(path, currency, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n  Report written to %s\n", path)
	}
	return nil
}

func planLocal(in planInput) (*planner.ComputeRecommendationsResponse, string, error) {
	cat, err := loadCatalog("")
	if err != nil {
		return nil, "", err
	}
	result, err := service.Evaluate(in.Profile, in.Accurate, in.Approximate, cat, calculator.RandomPicker{})
	if err != nil {
		return nil, "", err
	}
	return result, cat.Currency(), nil
}

// planRemote walks the server through the profile, expenses and
// recommendations steps with one session handle.
func planRemote(ctx context.Context, client plannerconnect.PlannerServiceClient, in planInput) (*planner.ComputeRecommendationsResponse, string, error) {
	cat, err := client.GetCatalog(ctx, connect.NewRequest(&planner.GetCatalogRequest{}))
	if err != nil {
		return nil, "", fmt.Errorf("get catalog: %w", err)
	}

	profile, err := client.AcceptProfile(ctx, connect.NewRequest(&planner.AcceptProfileRequest{Profile: in.Profile}))
	if err != nil {
		return nil, "", fmt.Errorf("submit profile: %w", err)
	}
	bearer := "Bearer " + profile.Msg.Handle

	expReq := connect.NewRequest(&planner.AcceptExpensesRequest{
		Accurate:    in.Accurate,
		Approximate: in.Approximate,
	})
	expReq.Header().Set("Authorization", bearer)
	if _, err := client.AcceptExpenses(ctx, expReq); err != nil {
		return nil, "", fmt.Errorf("submit expenses: %w", err)
	}

	recReq := connect.NewRequest(&planner.ComputeRecommendationsRequest{})
	recReq.Header().Set("Authorization", bearer)
	recs, err := client.ComputeRecommendations(ctx, recReq)
	if err != nil {
		return nil, "", fmt.Errorf("compute recommendations: %w", err)
	}
	return recs.Msg, cat.Msg.Currency, nil
}

func writeReport(path, currency string, result *planner.ComputeRecommendationsResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Write(f, currency, result, time.Now()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// promptPlan asks for whatever the flags left out: basic details first,
// then expenses.
func promptPlan(in *planInput) error {
	accurate := formatExpenseFlags(in.Accurate)
	approximate := formatExpenseFlags(in.Approximate)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.Profile.Name).
				Validate(requireText),
			huh.NewInput().
				Title("Age").
				Value(&in.Profile.Age).
				Validate(validateAge),
			huh.NewInput().
				Title("Monthly salary").
				Value(&in.Profile.MonthlySalary).
				Validate(validateSalary),
		).Title("Basic details"),
		huh.NewGroup(
			huh.NewText().
				Title("Accurate expenses").
				Description("One per line as label=amount, e.g. Rent=12000").
				Value(&accurate).
				Validate(validateExpenseLines),
			huh.NewText().
				Title("Approximate expenses").
				Description("Estimates such as Food=8000. Leave empty if none.").
				Value(&approximate).
				Validate(validateExpenseLines),
		).Title("Monthly expenses"),
	)
	if err := form.Run(); err != nil {
		return err
	}

	var err error
	if in.Accurate, err = parseExpenseFlags(splitLines(accurate)); err != nil {
		return err
	}
	if in.Approximate, err = parseExpenseFlags(splitLines(approximate)); err != nil {
		return err
	}
	if len(in.Accurate)+len(in.Approximate) == 0 {
		return errors.New("no expenses provided")
	}
	return nil
}

// parseExpenseFlags parses label=amount pairs. The amount is passed through
// as text; blank or non-numeric amounts are skipped by the planner.
func parseExpenseFlags(pairs []string) ([]planner.ExpenseItem, error) {
	items := make([]planner.ExpenseItem, 0, len(pairs))
	for _, pair := range pairs {
		label, amount, ok := strings.Cut(pair, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return nil, fmt.Errorf("%q is not in label=amount form", pair)
		}
		items = append(items, planner.ExpenseItem{Type: label, Amount: strings.TrimSpace(amount)})
	}
	return items, nil
}

func formatExpenseFlags(items []planner.ExpenseItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.Type + "=" + item.Amount
	}
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateAge(s string) error {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}

func validateSalary(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return errors.New("enter an amount of zero or more")
	}
	return nil
}

func validateExpenseLines(text string) error {
	_, err := parseExpenseFlags(splitLines(text))
	return err
}
