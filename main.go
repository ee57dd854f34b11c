package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/thatisuday/commando"

	// Internal layered packages
	"lfichef/internal/config"
	"lfichef/internal/encoding"
	"lfichef/internal/engine"
	"lfichef/internal/logging"
	genmod "lfichef/internal/modules/generate"
	harvestmod "lfichef/internal/modules/harvest"
	sanitizemod "lfichef/internal/modules/sanitize"
	"lfichef/internal/mutate"
	"lfichef/internal/wordlist"
)

// Exit codes: 0 success, 2 validation failure, 3 file I/O failure,
// 1 unexpected internal failure.
const (
	exitOK         = 0
	exitInternal   = 1
	exitValidation = 2
	exitIO         = 3
)

func main() {
	commando.
		SetExecutableName("lfi-chef").
		SetVersion("1.0.0").
		SetDescription("LFI wordlist generation and sanitization with integrated evasion techniques")
	commando.
		Register(nil).
		AddArgument("in_file", "path to the input wordlist (generate/sanitize) or HTML page (harvest)", "").
		AddArgument("mode", "operating mode: generate, sanitize or harvest", "").
		AddArgument("os", "target OS of the wordlist: linux, mac or windows", "").
		AddFlag("encoding", "encoding families for generation: u => url, d => double url, b => 16-bit unicode, o => overlong utf-8; any order/combo like udbo or ou", commando.String, "-").
		AddFlag("encoding_file", "TOML file defining extra encoding families selectable via --encoding", commando.String, "-").
		AddFlag("traversal", "directory traversal depth N or inclusive range like 2:4", commando.String, "-").
		AddFlag("traversal_chars", "custom climb:separator pairs, comma-separated, like ../:/,....//://", commando.String, "-").
		AddFlag("null_byte", "null byte injection mode: p (prepend), a (append), b (both)", commando.String, "-").
		AddFlag("out_file", "output wordlist path; defaults to a generated name in the working directory", commando.String, "-").
		AddFlag("drive", "windows drive letter directive for sanitize mode; strip drives when omitted", commando.String, "-").
		AddFlag("max_expansion", "cap on payloads generated per input line; 0 disables the cap", commando.Int, 0).
		AddFlag("near_dupes", "log sanitize-mode payloads within this edit distance of an earlier one; 0 disables", commando.Int, 0).
		AddFlag("log_file", "log file path", commando.String, logging.DefaultLogFile).
		AddFlag("verbose", "enable debug logging", commando.Bool, false).
		SetAction(func(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
			os.Exit(run(args, flags))
		})

	commando.Parse(nil)
}

func run(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) int {
	runID := logging.GenerateRunID()

	logFile, _ := flags["log_file"].GetString()
	verbose, _ := flags["verbose"].GetBool()
	closeLog, err := logging.Setup(logFile, runID, verbose)
	if err != nil {
		printErr(fmt.Sprintf("cannot open log file: %v", err))
		return exitIO
	}
	defer closeLog()

	opts, err := buildOptions(args, flags, runID)
	if err != nil {
		printErr(err.Error())
		slog.Error("configuration rejected", "error", err)
		return exitCode(err)
	}

	fmt.Printf("[+] %s: %s wordlist from %s\n", opts.Mode, opts.OS, opts.InFile)
	if err := execute(opts); err != nil {
		printErr(err.Error())
		slog.Error("run failed", "mode", opts.Mode, "error", err)
		return exitCode(err)
	}
	fmt.Printf("[!] %s complete, stored at:\n\n\t\t- %s\n", opts.Mode, opts.OutFile)
	return exitOK
}

// buildOptions validates CLI input and assembles the immutable run options.
// Commando returns the literal "-" placeholder for flags the user did not
// pass; flagValue folds that back to "absent".
func buildOptions(args map[string]commando.ArgValue, flags map[string]commando.FlagValue, runID string) (*config.Options, error) {
	mode, err := config.ValidateMode(args["mode"].Value)
	if err != nil {
		return nil, err
	}
	targetOS, err := config.ValidateOS(args["os"].Value)
	if err != nil {
		return nil, err
	}
	inFile, err := config.ValidateInFile(args["in_file"].Value)
	if err != nil {
		return nil, err
	}

	opts := &config.Options{
		InFile:  inFile,
		Mode:    mode,
		OS:      targetOS,
		LogFile: flagValue(flags, "log_file"),
		RunID:   runID,
	}
	opts.MaxExpansion, _ = flags["max_expansion"].GetInt()
	opts.NearDupes, _ = flags["near_dupes"].GetInt()
	opts.Verbose, _ = flags["verbose"].GetBool()

	if enc := flagValue(flags, "encoding"); enc != "" {
		custom := map[rune][]encoding.Rule{}
		if encFile := flagValue(flags, "encoding_file"); encFile != "" {
			custom, err = encoding.LoadCustom(encFile)
			if err != nil {
				var perr *os.PathError
				if errors.As(err, &perr) {
					return nil, err
				}
				return nil, config.Validationf("invalid encoding file: %v", err)
			}
		}
		table, ignored := encoding.Build(enc, targetOS, custom)
		for _, c := range ignored {
			slog.Warn("ignoring unknown encoding family", "code", string(c))
		}
		opts.Encoding = table
	}

	if trav := flagValue(flags, "traversal"); trav != "" {
		opts.TraversalStart, opts.TraversalEnd, err = config.ParseTraversal(trav)
		if err != nil {
			return nil, err
		}
		if chars := flagValue(flags, "traversal_chars"); chars != "" {
			pairs, ignored := config.ParseTraversalChars(chars)
			for _, item := range ignored {
				slog.Warn("dropping malformed traversal chars entry", "entry", item)
			}
			opts.TraversalChars = pairs
		} else {
			opts.TraversalChars = config.DefaultTraversalChars(targetOS)
		}
	}

	if nb := flagValue(flags, "null_byte"); nb != "" {
		opts.NullByte, err = config.ParseNullByte(nb)
		if err != nil {
			return nil, err
		}
	}

	if drive := flagValue(flags, "drive"); drive != "" {
		if !opts.Windows() {
			return nil, config.Validationf("--drive requires os windows, got %s", targetOS)
		}
		if mode != config.ModeSanitize {
			slog.Warn("--drive only applies in sanitize mode, ignoring", "mode", mode)
		} else {
			opts.DriveLetter, err = config.ParseDrive(drive)
			if err != nil {
				return nil, err
			}
		}
	}

	opts.OutFile, err = config.ResolveOutFile(flagValue(flags, "out_file"), targetOS, runID)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// execute wires the IO boundary and runs the selected mode module.
func execute(opts *config.Options) error {
	deps := engine.Deps{Opts: opts}

	var module engine.Module
	switch opts.Mode {
	case config.ModeGenerate:
		module = genmod.Module{}
	case config.ModeSanitize:
		module = sanitizemod.Module{}
	case config.ModeHarvest:
		module = harvestmod.Module{}
	}

	// Harvest tokenizes the document itself; the line source only applies to
	// the wordlist modes.
	if opts.Mode != config.ModeHarvest {
		src, err := wordlist.Open(opts.InFile)
		if err != nil {
			return err
		}
		defer src.Close()
		deps.Source = src
	}

	sink, err := wordlist.Create(opts.OutFile)
	if err != nil {
		return err
	}
	deps.Sink = sink

	eng := &engine.Engine{Deps: deps, Modules: []engine.Module{module}}
	runErr := eng.Run(context.Background())
	if closeErr := sink.Close(); runErr == nil {
		runErr = closeErr
	}
	return runErr
}

// flagValue returns a string flag's value, treating commando's "-"
// placeholder default as absent.
func flagValue(flags map[string]commando.FlagValue, name string) string {
	v, _ := flags[name].GetString()
	if v == "-" {
		return ""
	}
	return v
}

// exitCode maps an error to the process exit code taxonomy.
func exitCode(err error) int {
	var verr *config.ValidationError
	if errors.As(err, &verr) || errors.Is(err, mutate.ErrExpansionCap) {
		return exitValidation
	}
	var perr *os.PathError
	if errors.As(err, &perr) || errors.Is(err, bufio.ErrTooLong) {
		return exitIO
	}
	return exitInternal
}

func printErr(msg string) {
	fmt.Fprintf(os.Stderr, "\n* [ERROR] %s *\n\n", msg)
}
