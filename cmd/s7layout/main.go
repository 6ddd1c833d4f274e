package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/s7layout"
	"github.com/wippyai/s7layout/config"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/report"
	"github.com/wippyai/s7layout/witgen"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// fileList collects a repeatable path flag.
type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("s7layout", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFile  = fs.String("config", "", "Path to a TOML configuration file")
		format      = fs.String("format", "", "Output format: text, json, yaml or wit")
		query       = fs.String("query", "", "jq expression evaluated over the JSON report")
		strict      = fs.Bool("strict", false, "Fail on any diagnostic")
		interactive = fs.Bool("i", false, "Interactive mode with TUI")
		color       = fs.String("color", "", "Colored text output: auto, always or never")
		address     = fs.Bool("address", false, "Show S7 absolute addresses in text output")
		logLevel    = fs.String("log-level", "", "Log level: debug, info, warn or error")
		logFormat   = fs.String("log-format", "", "Log encoding: console or json")
		witPackage  = fs.String("wit-package", "", "WIT package name for -format wit")
		typeFiles   fileList
	)
	fs.Var(&typeFiles, "types", "UDT library parsed before the input (repeatable)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stdout, "Usage: s7layout [flags] data_block.db")
		fmt.Fprintln(stdout, "       s7layout -i data_block.db  (interactive mode)")
		return 0
	}
	input := fs.Arg(0)

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "query":
			cfg.Query = *query
		case "strict":
			cfg.Strict = *strict
		case "color":
			cfg.Color = *color
		case "address":
			cfg.Address = *address
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "wit-package":
			cfg.WITPackage = *witPackage
		}
	})
	cfg.Types = append(cfg.Types, typeFiles...)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync()
	s7layout.SetLogger(logger)
	defer s7layout.SetLogger(zap.NewNop())

	if _, err := os.Stat(input); os.IsNotExist(err) {
		fmt.Fprintf(stdout, "The file %s doesn't exist\n", input)
		return 0
	}
	data, err := os.ReadFile(input)
	if err != nil {
		logger.Debug("read failed", zap.String("path", input), zap.Error(err))
		fmt.Fprintln(stdout, "Unable to read the provided file")
		return 0
	}

	p := s7layout.New(
		s7layout.WithRegistry(registry.NewDefault()),
		s7layout.WithStrict(cfg.Strict),
	)
	if len(cfg.Types) > 0 {
		if _, err := p.ParseFiles(cfg.Types...); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	res, err := p.Parse(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *interactive {
		if err := runInteractive(input, res.DataBlocks); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := write(stdout, cfg, res); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func write(w io.Writer, cfg config.Config, res *s7layout.Result) error {
	if cfg.Query != "" {
		results, err := report.Query(res.DataBlocks, cfg.Query)
		if err != nil {
			return err
		}
		return report.WriteQuery(w, results)
	}

	switch cfg.Format {
	case config.FormatJSON:
		return report.WriteJSON(w, res.DataBlocks)
	case config.FormatYAML:
		return report.WriteYAML(w, res.DataBlocks)
	case config.FormatWIT:
		return witgen.Render(w, cfg.WITPackage, res.DataBlocks)
	default:
		styles := report.Styles{}
		if useColor(cfg.Color, w) {
			styles = report.ColorStyles()
		}
		styles.ShowAddress = cfg.Address
		return report.WriteText(w, res.DataBlocks, styles)
	}
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(cfg config.Config, w io.Writer) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	if cfg.LogFormat == config.LogJSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
