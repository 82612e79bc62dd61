package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/model"
	"github.com/san-kum/aviasim/internal/scenario"
)

var (
	cell     = lipgloss.NewStyle().PaddingRight(2)
	nameCell = cell.Width(52)
)

func row(cols ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// ScenarioTable lists each indicator with its initial value and restriction.
func ScenarioTable(sc *scenario.Scenario) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(row(
		cell.Render("ind"), nameCell.Render("indicator"), cell.Render("initial"), cell.Render("restriction"),
	)))
	b.WriteString("\n")
	for i := 0; i < dynamo.NumIndicators; i++ {
		b.WriteString(row(
			cell.Render(model.IndicatorSymbol(i)),
			nameCell.Render(model.IndicatorNames[i]),
			MetricValue.Inherit(cell).Render(fmt.Sprintf("%.2f", sc.Initial[i])),
			MetricValue.Inherit(cell).Render(fmt.Sprintf("%.2f", sc.Restrictions[i])),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// DriverTable lists F1..F5 with their formulas.
func DriverTable(sc *scenario.Scenario) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(row(cell.Render("drv"), nameCell.Render("driver"), cell.Render("F(t)"))))
	b.WriteString("\n")
	for i, p := range sc.Drivers {
		b.WriteString(row(
			cell.Render(model.DriverSymbol(i)),
			nameCell.Render(model.DriverNames[i]),
			MetricValue.Render(model.DriverFormula(p)),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// CouplingTable lists f1..f18 as b + k*Xj with the indicator each reads.
func CouplingTable(sc *scenario.Scenario) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(row(cell.Render("fn "), cell.Render("reads"), cell.Render("f(X)"))))
	b.WriteString("\n")
	for k, p := range sc.Couplings {
		dep := model.DependencyOf(k + 1)
		b.WriteString(row(
			cell.Render(fmt.Sprintf("f%-2d", k+1)),
			cell.Render(fmt.Sprintf("X%d   ", dep)),
			MetricValue.Render(model.CouplingFormula(k, p)),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// SeriesTable summarizes bounded series: start, end, extremes and a sparkline.
func SeriesTable(panel *display.Panel, sparkWidth int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(row(
		cell.Render("ind"), cell.Render("start"), cell.Render("end  "),
		cell.Render("min  "), cell.Render("max  "), cell.Render("trend"),
	)))
	b.WriteString("\n")
	for _, s := range panel.Bounded {
		if len(s.Values) == 0 {
			continue
		}
		lo, hi := s.Values[0], s.Values[0]
		for _, v := range s.Values {
			lo, hi = min(lo, v), max(hi, v)
		}
		b.WriteString(row(
			cell.Render(s.Symbol),
			cell.Render(fmt.Sprintf("%.3f", s.Values[0])),
			cell.Render(fmt.Sprintf("%.3f", s.Values[len(s.Values)-1])),
			cell.Render(fmt.Sprintf("%.3f", lo)),
			cell.Render(fmt.Sprintf("%.3f", hi)),
			Sparkline(s.Values, sparkWidth),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// MetricsTable prints metric values sorted by name.
func MetricsTable(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-22s", name)))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%.4g", metrics[name])))
		b.WriteString("\n")
	}
	return b.String()
}
