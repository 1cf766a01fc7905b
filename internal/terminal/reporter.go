package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/utils"
)

const comparisonTemplate = `
Comparação {{.ReferenceYear}} x {{.CurrentYear}}

Faturamento {{.ReferenceYear}}: {{money .Result.Previous}}
Faturamento {{.CurrentYear}}: {{money .Result.Current}}
Variação: {{percent .Result.PercentChange}}
Diferença absoluta: {{money .Result.AbsoluteDelta}}
Categoria: {{.Result.Category}} ({{.Result.Direction}})
Limiares: alto > {{percent .Thresholds.HighGrowth}}, moderado > {{percent .Thresholds.ModerateGrowth}}, queda leve > {{percent .Thresholds.MildDecline}}, queda moderada > {{percent .Thresholds.ModerateDecline}}
`

const analysisTemplate = `
{{.Title}} ({{.Statistics.Count}} pontos)

Mínimo:  {{money .Statistics.Min}} em {{date .Statistics.MinDate}}
Máximo:  {{money .Statistics.Max}} em {{date .Statistics.MaxDate}}
Média:   {{money .Statistics.Mean}} (mais próximo em {{date .Statistics.MeanNearestDate}})
Mediana: {{money .Statistics.Median}} (mais próximo em {{date .Statistics.MedianNearestDate}})

{{printf "%-12s" "Data"}} {{printf "%14s" "Faturamento"}} {{printf "%14s" "Variação"}}
{{range $i, $point := .Series}}{{printf "%-12s" (date $point.Date)}} {{printf "%14.2f" $point.Revenue}} {{growthAt $.Growth $i}}
{{end}}`

// AnalysisReport agrupa o que é impresso por analyze e sample
type AnalysisReport struct {
	Title      string
	Series     domain.RevenueSeries
	Statistics domain.StatisticsSummary
	Growth     domain.GrowthSeries
}

type Reporter struct {
	writer     io.Writer
	comparison *template.Template
	analysis   *template.Template
	jsonOutput bool
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}

	funcMap := template.FuncMap{
		"money":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"date":    func(t time.Time) string { return t.Format(time.DateOnly) },
		"growthAt": func(g domain.GrowthSeries, i int) string {
			if i >= len(g.Points) || g.Points[i].Value == nil {
				return fmt.Sprintf("%14s", "-")
			}
			return fmt.Sprintf("%+14.2f", *g.Points[i].Value)
		},
	}

	return &Reporter{
		writer:     writer,
		comparison: template.Must(template.New("comparison").Funcs(funcMap).Parse(comparisonTemplate)),
		analysis:   template.Must(template.New("analysis").Funcs(funcMap).Parse(analysisTemplate)),
	}
}

// SetJSON troca a saída em texto por JSON indentado
func (r *Reporter) SetJSON(enabled bool) {
	r.jsonOutput = enabled
}

func (r *Reporter) Comparison(report *domain.YearComparisonReport) error {
	if r.jsonOutput {
		return r.printJSON(report)
	}
	return r.comparison.Execute(r.writer, report)
}

func (r *Reporter) Analysis(report AnalysisReport) error {
	if r.jsonOutput {
		return r.printJSON(map[string]any{
			"title":      report.Title,
			"series":     report.Series,
			"statistics": report.Statistics,
			"growth":     report.Growth,
		})
	}
	return r.analysis.Execute(r.writer, report)
}

func (r *Reporter) printJSON(v any) error {
	out := utils.PrettyJson(v)
	if out == "" {
		return fmt.Errorf("falha ao serializar relatório")
	}
	_, err := fmt.Fprintln(r.writer, out)
	return err
}

// Printf escreve texto livre; em modo JSON fica em silêncio para não quebrar a saída
func (r *Reporter) Printf(format string, args ...any) {
	if r.jsonOutput {
		return
	}
	fmt.Fprintf(r.writer, format, args...)
}
