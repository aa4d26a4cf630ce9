package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"btcscan/internal/config"
	"btcscan/internal/report"
	"btcscan/internal/scan"
	"btcscan/internal/walk"
)

var scanCommand = &cobra.Command{
	Use:   "scan [flags] [path]",
	Short: "Scan a file or directory tree and write the hits to a CSV case file",
	Long: `Scan reads every file below the input path and reports the Base58Check
tokens whose checksum verifies. Hits are written to
<case>-DDMMYYYY-HHMMSS.csv in the output directory. The file is removed
again when nothing was found, unless --keep-empty is given.

Every flag can also be set with a BTCSCAN_ environment variable, for
example BTCSCAN_WORKERS=4, or in the file given with --config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(command *cobra.Command, args []string) error {
		v := config.New()
		if err := config.BindFlags(v, command.Flags()); err != nil {
			return err
		}
		if len(args) == 1 && !command.Flags().Changed("input") {
			v.Set("input", args[0])
		}
		configFile, _ := command.Flags().GetString("config")
		cfg, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		verbose, _ := command.Flags().GetCount("verbose")
		log, err := newLogger(os.Stderr, cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		caseName := resolveCase(cfg.Case, os.Stdin, os.Stdout, isInteractive(os.Stdin))

		ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt)
		defer stop()
		_, _, err = runScan(ctx, cfg, caseName, log, os.Stdout)
		return err
	},
}

func init() {
	flags := scanCommand.Flags()
	flags.StringP("input", "i", "", "File or directory to scan")
	flags.BoolP("quick", "q", false, "Skip the BIP32 extended key searches")
	flags.BoolP("unicode", "u", false, "Only search UTF-16 encoded tokens")
	flags.BoolP("nonunicode", "n", false, "Only search plain encoded tokens")
	flags.String("case", "", "Case name used for the output file (prompted for when empty)")
	flags.StringP("output-dir", "o", ".", "Directory receiving the case file")
	flags.IntP("workers", "j", 1, "Number of files scanned in parallel")
	flags.Bool("keep-empty", false, "Keep the case file even when nothing was found")
	Root.AddCommand(scanCommand)
}

// isInteractive reports whether f is a terminal a prompt can be shown on.
func isInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveCase returns name, or asks for one when interactive.
func resolveCase(name string, in io.Reader, out io.Writer, interactive bool) string {
	if name == "" && interactive {
		fmt.Fprint(out, "Case name: ")
		line, _ := bufio.NewReader(in).ReadString('\n')
		name = strings.TrimSpace(line)
	}
	if name == "" {
		return config.DefaultCase
	}
	return name
}

// runScan scans cfg.Input into a new case file and prints the summary
// to out. It returns the path of the case file, empty if it was removed.
func runScan(ctx context.Context, cfg *config.Config, caseName string, log *logrus.Logger, out io.Writer) (string, scan.Stats, error) {
	if _, err := os.Stat(cfg.Input); err != nil {
		return "", scan.Stats{}, usageError{errors.Wrap(err, "input")}
	}
	if cfg.Unicode && cfg.NonUnicode {
		log.Warn("--unicode and --nonunicode both given: no token types selected")
	}

	start := time.Now()
	cf, err := report.CreateCaseFile(cfg.OutputDir, caseName, start)
	if err != nil {
		return "", scan.Stats{}, err
	}
	console := report.NewConsole(out)
	s := scan.ForMode(cfg.Mode(), cf, scan.WithProgress(console), scan.WithLogger(log))
	log.WithFields(logrus.Fields{
		"input":   cfg.Input,
		"types":   len(s.Specs()),
		"workers": cfg.Workers,
		"case":    cf.Path(),
	}).Info("starting scan")

	paths := make(chan string, 64)
	g, gCtx := errgroup.WithContext(ctx)
	w := &walk.Walker{Log: log}
	g.Go(func() error {
		return w.Feed(gCtx, cfg.Input, paths)
	})
	var stats scan.Stats
	g.Go(func() error {
		var err error
		stats, err = s.Run(gCtx, paths, cfg.Workers)
		return err
	})
	err = g.Wait()
	console.Done()

	kept, closeErr := cf.Close(cfg.KeepEmpty)
	if err == nil {
		err = closeErr
	}
	report.WriteSummary(out, stats, time.Since(start))
	if serr := stats.Err(); serr != nil {
		log.WithError(serr).Warn("some files were not scanned")
	}
	if stats.Hits == 0 {
		fmt.Fprintln(out, "No matches found")
	}
	path := ""
	if kept {
		path = cf.Path()
		fmt.Fprintf(out, "Output file: %s\n", path)
	}
	return path, stats, err
}
