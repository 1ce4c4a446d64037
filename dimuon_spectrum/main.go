package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/profile"

	"github.com/decibelcooper/dimuplot"
)

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `Usage: `+fs.Name()+` [options] <nanoaod-or-proio-input-file>

ex:
 $> `+fs.Name()+` -t 8 -o dimuonSpectrumAll1.pdf Run2012BC_DoubleMuParked_Muons.root
 $> `+fs.Name()+` -window 60 -window 120 Run2012BC_DoubleMuParked_Muons.root

options:
`,
	)
	fs.PrintDefaults()
}

func main() {
	log.SetPrefix("dimuon_spectrum: ")
	log.SetFlags(0)

	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		nThreads   = fs.Int("t", 0, "number of worker threads (0: one per CPU)")
		output     = fs.String("o", "", "output file (default from config)")
		configPath = fs.String("config", "", "YAML file overriding the default configuration")
		tree       = fs.String("tree", "", "name of the event tree in ROOT inputs")
		tag        = fs.String("tag", "", "particle tag in proio inputs")
		format     = fs.String("format", "", "input format: root or proio (default from file extension)")
		profDir    = fs.String("profile", "", "write a CPU profile into this directory")
		verbose    = fs.Bool("v", false, "enable debug logging")
		windows    dimuplot.FloatArrayFlags
	)
	fs.Var(&windows, "window", "mass window edges of an extra linear plot, repeat as low,high pairs")
	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		printUsage(fs)
		return errors.New("invalid arguments")
	}

	wins, err := windows.Windows()
	if err != nil {
		printUsage(fs)
		return fmt.Errorf("invalid -window flags: %w", err)
	}

	if *profDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	}

	cfg := dimuplot.DefaultConfig()
	if *configPath != "" {
		cfg, err = dimuplot.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	if *nThreads != 0 {
		cfg.Threads = *nThreads
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *tree != "" {
		cfg.Tree = *tree
	}
	if *tag != "" {
		cfg.ProioTag = *tag
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	err = process(fs.Arg(0), *format, wins, cfg, stdout)
	if err != nil {
		return fmt.Errorf("could not produce dimuon spectrum: %w", err)
	}
	return nil
}

func process(fname, format string, wins []dimuplot.Window, cfg dimuplot.Config, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := dimuplot.Open(fname, format, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := dimuplot.Run(ctx, src, cfg)
	if err != nil {
		return fmt.Errorf("could not process %q: %w", fname, err)
	}

	err = dimuplot.Render(cfg.Output, res.Hist, cfg)
	if err != nil {
		return fmt.Errorf("could not render spectrum: %w", err)
	}
	cfg.Logger.Info("wrote spectrum", "file", cfg.Output)

	for _, win := range wins {
		name := dimuplot.WindowName(cfg.Output, win)
		err = dimuplot.RenderWindow(name, res.Hist, win, cfg)
		if err != nil {
			return fmt.Errorf("could not render window [%g, %g): %w", win.Low, win.High, err)
		}
		cfg.Logger.Info("wrote window", "file", name)
	}

	return res.CutFlow.Report(stdout)
}
