package terminal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/internal/growth"
	"github.com/vfg2006/revenue-compare-api/internal/ingest"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/utils"
)

type compareCmd struct {
	cli    *CLI
	input  domain.YearComparison
	outDir string
}

func (cli *CLI) newCompareCmd() *cobra.Command {
	defaults := cli.cfg.Analysis.Thresholds()
	cc := &compareCmd{cli: cli}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compara o faturamento de dois anos e classifica a variação",
		RunE:  cc.run,
	}

	flags := cmd.Flags()
	flags.IntVar(&cc.input.ReferenceYear, "reference-year", 0, "Ano de referência")
	flags.IntVar(&cc.input.CurrentYear, "current-year", 0, "Ano atual")
	flags.Float64Var(&cc.input.ReferenceRevenue, "reference-revenue", 0, "Faturamento do ano de referência")
	flags.Float64Var(&cc.input.CurrentRevenue, "current-revenue", 0, "Faturamento do ano atual")
	flags.Float64Var(&cc.input.Thresholds.HighGrowth, "high-growth", defaults.HighGrowth, "Limiar de crescimento alto (%)")
	flags.Float64Var(&cc.input.Thresholds.ModerateGrowth, "moderate-growth", defaults.ModerateGrowth, "Limiar de crescimento moderado (%)")
	flags.Float64Var(&cc.input.Thresholds.MildDecline, "mild-decline", defaults.MildDecline, "Limiar de queda leve (%)")
	flags.Float64Var(&cc.input.Thresholds.ModerateDecline, "moderate-decline", defaults.ModerateDecline, "Limiar de queda moderada (%)")
	flags.StringVar(&cc.outDir, "out", "", "Diretório onde gravar a planilha com o gráfico")

	_ = cmd.MarkFlagRequired("reference-year")
	_ = cmd.MarkFlagRequired("current-year")
	_ = cmd.MarkFlagRequired("reference-revenue")
	_ = cmd.MarkFlagRequired("current-revenue")

	return cmd
}

func (cc *compareCmd) run(cmd *cobra.Command, args []string) error {
	report, err := comparing.ClassifyYears(cc.input, cc.cli.cfg.Analysis.MinYear, cc.cli.now().Year())
	if err != nil {
		return err
	}

	if err := cc.cli.reporter.Comparison(report); err != nil {
		return err
	}

	if cc.outDir == "" {
		return nil
	}

	wb, err := exporting.BuildYearComparisonWorkbook(cc.cli.cfg.Export.SheetName, report)
	if err != nil {
		return err
	}
	return cc.cli.writeWorkbook(cc.outDir, wb)
}

type analyzeCmd struct {
	cli       *CLI
	file      string
	window    int
	startDate string
	endDate   string
	outDir    string
}

func (cli *CLI) newAnalyzeCmd() *cobra.Command {
	ac := &analyzeCmd{cli: cli}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Estatísticas e variação por janela de um arquivo csv ou xlsx",
		RunE:  ac.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&ac.file, "file", cli.cfg.DataFile.Path, "Arquivo com as colunas Date e Sales Revenue")
	flags.IntVar(&ac.window, "window", cli.cfg.Analysis.DefaultWindow, "Tamanho da janela em pontos")
	flags.StringVar(&ac.startDate, "start", "", "Data inicial (yyyy-mm-dd)")
	flags.StringVar(&ac.endDate, "end", "", "Data final (yyyy-mm-dd)")
	flags.StringVar(&ac.outDir, "out", "", "Diretório onde gravar a planilha com o gráfico")

	return cmd
}

func (ac *analyzeCmd) run(cmd *cobra.Command, args []string) error {
	format, err := ingest.FormatFromFilename(ac.file)
	if err != nil {
		return err
	}

	f, err := os.Open(ac.file)
	if err != nil {
		return domain.NewRevenueError(domain.ErrMissingDataSource, err.Error())
	}
	defer f.Close()

	series, err := ingest.ReadSeries(f, format)
	if err != nil {
		return err
	}

	series, err = ac.filter(series)
	if err != nil {
		return err
	}

	return ac.cli.analyze(filepath.Base(ac.file), series, ac.window, ac.outDir)
}

func (ac *analyzeCmd) filter(series domain.RevenueSeries) (domain.RevenueSeries, error) {
	if ac.startDate == "" && ac.endDate == "" {
		return series, nil
	}

	start, err := utils.ParseDate(ac.startDate)
	if err != nil {
		return nil, fmt.Errorf("data inicial inválida: %w", err)
	}
	end, err := utils.ParseDate(ac.endDate)
	if err != nil {
		return nil, fmt.Errorf("data final inválida: %w", err)
	}

	first, last, _ := series.Bounds()
	if start == nil {
		start = &first
	}
	if end == nil {
		end = &last
	}

	return growth.FilterByDateRange(series, *start, *end)
}

type sampleCmd struct {
	cli    *CLI
	params ingest.SampleParams
	trend  string
	window int
	outDir string
}

func (cli *CLI) newSampleCmd() *cobra.Command {
	sc := &sampleCmd{cli: cli}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Gera uma série sintética com sazonalidade e analisa",
		RunE:  sc.run,
	}

	flags := cmd.Flags()
	flags.IntVar(&sc.params.Period, "period", 12, "Período da sazonalidade (3 ou 12)")
	flags.StringVar(&sc.trend, "trend", string(ingest.TrendPositive), "Tendência da sazonalidade (positive ou negative)")
	flags.Int64Var(&sc.params.Seed, "seed", 0, "Semente do gerador; 0 sorteia uma")
	flags.IntVar(&sc.window, "window", cli.cfg.Analysis.DefaultWindow, "Tamanho da janela em pontos")
	flags.StringVar(&sc.outDir, "out", "", "Diretório onde gravar a planilha com o gráfico")

	return cmd
}

func (sc *sampleCmd) run(cmd *cobra.Command, args []string) error {
	sc.params.Trend = ingest.Trend(sc.trend)

	sample, err := ingest.NewSampleCache().Get(sc.params)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Amostra período %d, tendência %s, semente %d", sample.Period, sample.Trend, sample.Seed)
	return sc.cli.analyze(title, sample.Series, sc.window, sc.outDir)
}

func (cli *CLI) analyze(title string, series domain.RevenueSeries, window int, outDir string) error {
	stats, err := growth.Describe(series)
	if err != nil {
		return err
	}

	diff, err := growth.WindowedDiff(series, window)
	if err != nil {
		return err
	}

	err = cli.reporter.Analysis(AnalysisReport{
		Title:      title,
		Series:     series,
		Statistics: stats,
		Growth:     diff,
	})
	if err != nil {
		return err
	}

	if outDir == "" {
		return nil
	}

	wb, err := exporting.BuildSeriesWorkbook(cli.cfg.Export.SheetName, series, &diff)
	if err != nil {
		return err
	}
	return cli.writeWorkbook(outDir, wb)
}

func (cli *CLI) writeWorkbook(dir string, wb *exporting.Workbook) error {
	path, err := saveWorkbook(dir, wb)
	if err != nil {
		return err
	}
	cli.reporter.Printf("\nPlanilha gravada em %s\n", path)
	return nil
}
