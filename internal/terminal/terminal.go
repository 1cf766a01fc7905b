// Package terminal implementa a linha de comando para comparar anos e analisar séries sem subir a API.
package terminal

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

type CLI struct {
	cfg      *config.Config
	reporter *Reporter
	now      func() time.Time
	rootCmd  *cobra.Command
	logLevel string
	json     bool
}

type Options struct {
	Config *config.Config
	Output io.Writer
	Now    func() time.Time
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		cfg:      opts.Config,
		reporter: NewReporter(opts.Output),
		now:      opts.Now,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs substitui os argumentos de os.Args
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "revenue",
		Short:         "Comparação de faturamento e análise de séries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Configure(cli.logLevel)
			cli.reporter.SetJSON(cli.json)
		},
	}

	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", cli.cfg.App.LogLevel, "Nível de log (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&cli.json, "json", false, "Imprime o relatório em JSON")

	cmd.AddCommand(cli.newCompareCmd())
	cmd.AddCommand(cli.newAnalyzeCmd())
	cmd.AddCommand(cli.newSampleCmd())

	return cmd
}

// saveWorkbook grava a planilha no diretório informado e devolve o caminho final
func saveWorkbook(dir string, wb *exporting.Workbook) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, wb.Filename)
	if err := os.WriteFile(path, wb.Data, 0o644); err != nil {
		return "", err
	}

	log.L.WithField("path", path).Info("Planilha gravada")
	return path, nil
}
