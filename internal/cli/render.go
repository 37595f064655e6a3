package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	planner "github.com/mmynk/finplanner/pkg/planner"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	positiveStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	negativeStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	adStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Foreground(ColorYellow).
		Padding(0, 1)
)

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders a section heading.
func RenderSection(heading string) string {
	return "  " + headerStyle.Render(heading)
}

// newTable returns a rounded table whose non-first columns are right aligned.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorTextDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := valueStyle.Padding(0, 1)
			if row == table.HeaderRow {
				style = headerStyle.Padding(0, 1)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
}

// RenderRecommendations renders a full planner result: the user summary,
// monthly balance, savings projections and investment suggestions.
func RenderRecommendations(currency string, r *planner.ComputeRecommendationsResponse) string {
	var b strings.Builder

	b.WriteString(RenderTitle("Financial Plan for " + r.User.Name))
	b.WriteString("\n\n")

	summary := []struct{ label, value string }{
		{"Age", fmt.Sprintf("%d", r.User.Age)},
		{"Monthly salary", FormatAmount(currency, r.User.MonthlySalary)},
		{"Monthly expenses", FormatAmount(currency, r.User.TotalExpenses)},
	}
	for _, row := range summary {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", row.label)), valueStyle.Render(row.value))
	}

	remaining := FormatAmount(currency, r.RemainingSalary)
	style := positiveStyle
	if strings.HasPrefix(strings.TrimSpace(r.RemainingSalary), "-") {
		style = negativeStyle
	}
	fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render(fmt.Sprintf("%-18s", "Remaining balance")), style.Render(remaining))

	b.WriteString(RenderSavingsPlans(currency, r.SavingsPlans))
	b.WriteString("\n")
	b.WriteString(RenderInvestments(currency, r.Investments))

	return b.String()
}

// RenderSavingsPlans renders one row per horizon, shortest first.
func RenderSavingsPlans(currency string, plans map[int32]planner.SavingsPlan) string {
	horizons := make([]int32, 0, len(plans))
	for h := range plans {
		horizons = append(horizons, h)
	}
	sort.Slice(horizons, func(i, j int) bool { return horizons[i] < horizons[j] })

	t := newTable("Horizon", "Projected savings", "Tier")
	for _, h := range horizons {
		p := plans[h]
		t.Row(FormatMonths(h), FormatAmount(currency, p.Total), FormatTier(p.Category))
	}

	var b strings.Builder
	b.WriteString(RenderSection("Savings projections"))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	for _, h := range horizons {
		p := plans[h]
		fmt.Fprintf(&b, "  %s\n", labelStyle.Render(FormatMonths(h)+" ("+FormatTier(p.Category)+"):"))
		for _, product := range p.Products {
			fmt.Fprintf(&b, "    • %s\n", valueStyle.Render(product))
		}
	}
	return b.String()
}

// RenderInvestments renders the per-category suggestions, or a notice when
// the balance leaves nothing to invest.
func RenderInvestments(currency string, investments []planner.Investment) string {
	var b strings.Builder
	b.WriteString(RenderSection("Investment suggestions"))
	b.WriteString("\n")

	if len(investments) == 0 {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render("Expenses use up the whole salary, so there is nothing left to invest."))
		b.WriteString("\n")
		return b.String()
	}

	t := newTable("Investment", "Suggested / month")
	for _, inv := range investments {
		t.Row(inv.Title, FormatAmount(currency, inv.SuggestedAmount))
	}
	b.WriteString(t.String())
	b.WriteString("\n")

	for _, inv := range investments {
		fmt.Fprintf(&b, "  %s %s\n", headerStyle.Render(inv.Title+":"), valueStyle.Render(inv.Description))
		if inv.Link != "" {
			fmt.Fprintf(&b, "    %s\n", labelStyle.Render(inv.Link))
		}
	}
	b.WriteString(labelStyle.Render("  Each suggestion is an alternative, not a share of one combined budget."))
	b.WriteString("\n")
	return b.String()
}

// RenderAdvertisement renders a featured advertisement in a highlighted box.
func RenderAdvertisement(ad *planner.Advertisement) string {
	if ad == nil {
		return ""
	}
	return adStyle.Render(ad.Text)
}

// RenderCatalog renders the horizons, tiers and investment categories.
func RenderCatalog(c *planner.GetCatalogResponse) string {
	var b strings.Builder

	b.WriteString(RenderTitle("Planner Catalog"))
	b.WriteString("\n\n")

	horizons := make([]string, len(c.Horizons))
	for i, h := range c.Horizons {
		horizons[i] = FormatMonths(h)
	}
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Horizons:"), valueStyle.Render(strings.Join(horizons, ", ")))
	fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Contribution per category:"), valueStyle.Render(c.ContributionFraction+" of remaining balance"))

	tiers := newTable("Tier", "Range", "Up to")
	for _, t := range c.Tiers {
		limit := "no limit"
		if t.MaxTotal != "" {
			limit = FormatAmount(c.Currency, t.MaxTotal)
		}
		tiers.Row(FormatTier(t.Name), t.Range, limit)
	}
	b.WriteString(RenderSection("Savings tiers"))
	b.WriteString("\n")
	b.WriteString(tiers.String())
	b.WriteString("\n\n")

	b.WriteString(RenderSection("Investment categories"))
	b.WriteString("\n")
	for _, cat := range c.Categories {
		fmt.Fprintf(&b, "  %s %s\n", headerStyle.Render(cat.Title), labelStyle.Render("("+cat.Type+")"))
		fmt.Fprintf(&b, "    %s\n", valueStyle.Render(cat.Description))
		for _, ad := range cat.Ads {
			fmt.Fprintf(&b, "    • %s\n", labelStyle.Render(ad))
		}
	}
	return b.String()
}
