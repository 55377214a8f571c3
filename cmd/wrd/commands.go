package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"crosswarped.com/wrd"
	"crosswarped.com/wrd/internal/config"
	"crosswarped.com/wrd/internal/logging"
	"crosswarped.com/wrd/internal/render"
	"crosswarped.com/wrd/internal/tui"
	"crosswarped.com/wrd/pkg/dictionary"
)

// app is what every command shares once flags and the config file are read.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath    string
	logLevel      string
	dict          string
	color         string
	wordsFile     string
	bigqueryScope string
	cpuProfile    string

	profile *os.File
	cfg     config.Config
	logger  *logging.Logger
	painter *render.Painter
}

// execute runs the command line in args. Profiles and log files are closed however the command
// ends.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	defer a.teardown()

	root := a.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wrd",
		Short: "Find words by pattern and solve word-guessing games",
		Long: `wrd searches a dictionary for words matching a pattern of per-letter constraints,
and narrows the candidates for a hidden word from a sequence of guess results.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wrd/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&a.dict, "dict", "", fmt.Sprintf("bundled dictionary to search, one of %v", dictionary.Names()))
	flags.StringVar(&a.color, "color", "", "auto, always or never")
	flags.StringVar(&a.wordsFile, "words-file", "", "search the words in this file, one per line, instead of a dictionary")
	flags.StringVar(&a.bigqueryScope, "bigquery-scope", "", "search the words of this scope in BigQuery instead of a dictionary")
	flags.StringVar(&a.cpuProfile, "cpu-profile", "", "write a CPU profile to this file")

	root.AddCommand(
		a.matchCmd(),
		a.notwordleCmd(),
		a.tuiCmd(),
		a.dictsCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("dict") {
		cfg.Dictionary = a.dict
	}
	if flags.Changed("color") {
		cfg.Color = config.ColorMode(a.color)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.Logging()
	logCfg.Output = a.stderr
	logCfg.Service = "wrd"
	a.logger = logging.New(logCfg)
	a.painter = render.NewPainter(a.colorEnabled())

	a.logger.Debug("loaded config", "path", path, "dictionary", cfg.Dictionary, "command", cmd.Name())

	if a.cpuProfile != "" {
		f, err := os.Create(a.cpuProfile)
		if err != nil {
			return fmt.Errorf("creating the profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("starting the CPU profile: %w", err)
		}
		a.profile = f
	}
	return nil
}

func (a *app) teardown() {
	if a.profile != nil {
		pprof.StopCPUProfile()
		if err := a.profile.Close(); err != nil {
			a.logger.Warn("closing the profile file", "error", err)
		}
		a.profile = nil
	}
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

func (a *app) colorEnabled() bool {
	if a.cfg.Color == config.ColorAlways {
		return true
	}
	f, ok := a.stdout.(*os.File)
	return ok && render.ColorEnabled(a.cfg.Color, f)
}

// words returns the explicit word list chosen by flags, or nil for the configured dictionary.
func (a *app) words(ctx context.Context) ([]string, error) {
	switch {
	case a.wordsFile != "" && a.bigqueryScope != "":
		return nil, errors.New("--words-file and --bigquery-scope are mutually exclusive")
	case a.wordsFile != "":
		words, err := dictionary.LoadFile(ctx, a.wordsFile)
		if err != nil {
			return nil, fmt.Errorf("loading words: %w", err)
		}
		a.logger.Info("loaded words from file", "file", a.wordsFile, "words", len(words))
		return words, nil
	case a.bigqueryScope != "":
		words, err := dictionary.LoadBigQuery(ctx, dictionary.BigQueryConfig{Scope: a.bigqueryScope})
		if err != nil {
			return nil, fmt.Errorf("loading words: %w", err)
		}
		a.logger.Info("loaded words from bigquery", "scope", a.bigqueryScope, "words", len(words))
		return words, nil
	}
	return nil, nil
}

func (a *app) printGrid(words []string) {
	if len(words) == 0 {
		return
	}
	fmt.Fprintln(a.stdout, a.painter.Grid(words, a.cfg.Columns))
}

func (a *app) matchCmd() *cobra.Command {
	var pattern string
	var opts wrd.Options

	cmd := &cobra.Command{
		Use:   "match [pattern]",
		Short: "Print the words matching a pattern",
		Long: `Print the words matching a pattern of space separated entries, one per letter:

  *      any letter
  **     any number of letters, including none
  abc    one of a, b or c
  !abc   anything but a, b or c`,
		Example: `  wrd match '* b !ar !r *'
  wrd match -p 'y e **' -i t -w ytanpem`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if pattern != "" {
					return errors.New("give the pattern either as an argument or with --pattern")
				}
				pattern = args[0]
			}
			if pattern == "" {
				return errors.New("a pattern is required")
			}

			words, err := a.words(cmd.Context())
			if err != nil {
				return err
			}
			var matcher *wrd.Matcher
			if words != nil {
				matcher = wrd.NewMatcher(words)
			} else {
				matcher = wrd.NewDictionaryMatcher(a.cfg.DictionaryName())
			}

			matches, err := matcher.Match(pattern, opts)
			if err != nil {
				return err
			}
			a.logger.Debug("matched", "pattern", pattern, "matches", len(matches))
			a.printGrid(matches)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&pattern, "pattern", "p", "", "the pattern to match")
	flags.StringVarP(&opts.Include, "include", "i", "", "letters that must be in the word")
	flags.StringVarP(&opts.Exclude, "exclude", "e", "", "letters that must not be in the word")
	flags.StringVarP(&opts.Within, "within", "w", "", "the only letters the word may use")
	return cmd
}

func (a *app) notwordleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notwordle [guess results]",
		Short: "Narrow down the hidden word of a guessing game from guess results",
		Long: `Narrow down the hidden word from guess results, one entry per letter:

  p    p is at this position
  ?p   p is in the word at another position
  !p   p is not in the word

Separate several guesses with commas. Without an argument, guesses are read one line at a time
from standard input.`,
		Example: `  wrd notwordle 'p ?l !a ?t !e, p ?o l ?i t'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := a.words(cmd.Context())
			if err != nil {
				return err
			}
			opts := []wrd.SessionOption{wrd.WithLogger(a.logger.Slog())}
			if words != nil {
				opts = append(opts, wrd.WithWords(words))
			} else {
				opts = append(opts, wrd.WithDictionary(a.cfg.DictionaryName()))
			}
			session := wrd.NewSession(opts...)

			if len(args) == 1 {
				matches, err := a.registerBatch(session, args[0])
				if err != nil {
					return err
				}
				a.printGrid(matches)
				return nil
			}
			return a.notwordleInteractive(cmd.Context(), session)
		},
	}
}

// registerBatch registers every guess of batch, reporting the remaining count after each.
func (a *app) registerBatch(session *wrd.Session, batch string) ([]string, error) {
	reports, err := session.RegisterGuessResults(batch)
	for _, r := range reports {
		fmt.Fprintf(a.stdout, "%d remaining after %s\n", len(r.Matches), a.painter.Guess(r.Outcomes))
	}
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return session.Matches(), nil
	}
	return reports[len(reports)-1].Matches, nil
}

// notwordleInteractive reads guesses line by line. A rejected guess is reported and the session
// carries on from the state before it.
func (a *app) notwordleInteractive(ctx context.Context, session *wrd.Session) error {
	f, ok := a.stdin.(*os.File)
	prompt := ok && isatty.IsTerminal(f.Fd())

	scanner := bufio.NewScanner(a.stdin)
	for {
		if prompt {
			fmt.Fprint(a.stderr, "guess> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "reset":
			session.Reset()
			fmt.Fprintln(a.stdout, "starting over")
			continue
		}

		matches, err := a.registerBatch(session, line)
		if err != nil {
			fmt.Fprintln(a.stderr, "Error:", err)
			continue
		}
		a.printGrid(matches)
	}
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, ok := a.stdout.(*os.File)
			if !ok || !isatty.IsTerminal(f.Fd()) {
				return errors.New("tui needs a terminal")
			}
			words, err := a.words(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.Options{
				Dictionary: a.cfg.DictionaryName(),
				Words:      words,
				Logger:     a.logger.Slog(),
			})
		},
	}
}

func (a *app) dictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dicts",
		Short: "List the bundled dictionaries",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, name := range dictionary.Names() {
				mark := " "
				if name == a.cfg.DictionaryName() {
					mark = "*"
				}
				fmt.Fprintf(a.stdout, "%s %-8s %d words\n", mark, name, len(dictionary.Words(name)))
			}
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if write {
				path := a.configPath
				if path == "" {
					var err error
					if path, err = config.DefaultPath(); err != nil {
						return err
					}
				}
				if err := config.Save(path, a.cfg); err != nil {
					return err
				}
				fmt.Fprintln(a.stderr, "wrote", path)
			}
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "also save the effective configuration to the config file")
	return cmd
}
