// Package report renders a planner result as a standalone HTML document.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mmynk/finplanner/internal/cli"
	planner "github.com/mmynk/finplanner/pkg/planner"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Plan is one savings horizon row.
type Plan struct {
	Horizon int32
	planner.SavingsPlan
}

type view struct {
	*planner.ComputeRecommendationsResponse
	Plans     []Plan
	Negative  bool
	Generated time.Time
}

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":   strings.Join,
	"money":  func(string) string { return "" },
	"months": cli.FormatMonths,
	"tier":   cli.FormatTier,
}).ParseFS(templatesFS, "templates/*.html"))

// Write renders r as HTML to w. Amounts are prefixed with currency.
func Write(w io.Writer, currency string, r *planner.ComputeRecommendationsResponse, generated time.Time) error {
	t, err := tmpl.Clone()
	if err != nil {
		return err
	}
	// money depends on the currency, so it is bound per call
	t.Funcs(template.FuncMap{
		"money": func(amount string) string { return cli.FormatAmount(currency, amount) },
	})

	v := view{
		ComputeRecommendationsResponse: r,
		Plans:                          plans(r.SavingsPlans),
		Negative:                       strings.HasPrefix(strings.TrimSpace(r.RemainingSalary), "-"),
		Generated:                      generated,
	}
	if err := t.ExecuteTemplate(w, "report.html", v); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// FileName suggests a file name for a report, e.g. "finplanner-report-Asha-2026-10-17.html".
func FileName(name string, generated time.Time) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '/' || r == '\\' || r == ':' || r < 32:
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "plan"
	}
	return fmt.Sprintf("finplanner-report-%s-%s.html", clean, generated.Format("2006-01-02"))
}

func plans(m map[int32]planner.SavingsPlan) []Plan {
	out := make([]Plan, 0, len(m))
	for h, p := range m {
		out = append(out, Plan{Horizon: h, SavingsPlan: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Horizon < out[j].Horizon })
	return out
}
