package cmd

import (
	"fmt"
	"io"

	"llmpack/pkg/clipboard"
	"llmpack/pkg/combine"
	"llmpack/pkg/settings"
	"llmpack/pkg/tokens"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type combineFlags struct {
	prefix      string
	output      string
	noClipboard bool
	exclude     []string
	maxLines    int
	workers     int
}

var combineOpts combineFlags

func defaultCopier() clipboard.Copier { return clipboard.NewService() }

// newCopier is replaced in tests.
var newCopier = defaultCopier

var combineCmd = &cobra.Command{
	Use:   "combine [dir]",
	Short: "Pack a project into a single Markdown document",
	Long: `Walk dir (default: the current directory), skip everything matched by the
built-in exclusions, --exclude patterns and the .gitignore/.llmpackignore files
found on the way, and write the tree followed by every eligible file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCombine,
}

// addCombineFlags registers the combine flags on cmd; root and combine share them.
func addCombineFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&combineOpts.prefix, "prefix", "p", "", "Text placed at the top of every file section")
	flags.StringVarP(&combineOpts.output, "output", "o", "", "Output file (default <dir>/"+combine.DefaultOutputName+")")
	flags.BoolVar(&combineOpts.noClipboard, "no-clipboard", false, "Do not copy the document to the clipboard")
	flags.StringSliceVarP(&combineOpts.exclude, "exclude", "e", nil, "Extra ignore pattern (repeatable)")
	flags.IntVar(&combineOpts.maxLines, "max-lines", settings.DefaultMaxLines, "Replace files longer than this with a placeholder (0 = no limit)")
	flags.IntVar(&combineOpts.workers, "workers", settings.DefaultWorkers, "Number of concurrent file reads")
}

// combineOptions merges stored settings with the flags that were set explicitly.
func combineOptions(cmd *cobra.Command, cfg settings.Settings, args []string) (combine.Options, bool) {
	opts := combine.Options{
		Root:     ".",
		Output:   cfg.Combine.Output,
		Prefix:   cfg.Combine.Prefix,
		MaxLines: cfg.Combine.MaxLines,
		Workers:  cfg.Combine.Workers,
	}
	if len(args) > 0 {
		opts.Root = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.Output = combineOpts.output
	}
	if flags.Changed("prefix") {
		opts.Prefix = combineOpts.prefix
	}
	if flags.Changed("max-lines") {
		opts.MaxLines = combineOpts.maxLines
	}
	if flags.Changed("workers") {
		opts.Workers = combineOpts.workers
	}
	opts.Exclude = append(append([]string{}, cfg.Combine.Exclude...), combineOpts.exclude...)

	copyToClipboard := cfg.Combine.Clipboard && !combineOpts.noClipboard
	return opts, copyToClipboard
}

func runCombine(cmd *cobra.Command, args []string) error {
	log := logger()

	_, cfg, err := openStore()
	if err != nil {
		return err
	}
	opts, copyToClipboard := combineOptions(cmd, cfg, args)

	result, err := combine.Run(cmd.Context(), opts, log)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}

	reportDiagnostics(result.Diagnostics, log)
	printSummary(cmd.OutOrStdout(), result, log)

	if copyToClipboard {
		if err := newCopier().Copy(result.Document.String()); err != nil {
			log.Warn("Failed to copy document to clipboard", zap.Error(err))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard.")
		}
	}
	return nil
}

// reportDiagnostics logs skipped paths; binary skips are expected and stay at debug level.
func reportDiagnostics(diagnostics []combine.Diagnostic, log *zap.Logger) {
	for _, d := range diagnostics {
		if combine.IsBinarySkip(d) {
			log.Debug("Skipped binary file", zap.String("path", d.Path))
			continue
		}
		log.Warn("Skipped path",
			zap.String("kind", string(d.Kind)),
			zap.String("path", d.Path),
			zap.Error(d.Err))
	}
}

func printSummary(w io.Writer, result combine.Result, log *zap.Logger) {
	fmt.Fprintf(w, "Combined %d files into %s\n", result.Files, result.OutputPath)
	fmt.Fprintf(w, "Characters: %d\n", result.Characters)

	counter, err := tokens.NewCounter(tokens.DefaultEncoding)
	if err != nil {
		log.Debug("Token estimate unavailable", zap.Error(err))
	} else if n, err := counter.CountString(result.Document.String()); err == nil {
		fmt.Fprintf(w, "Estimated tokens: %d (%s)\n", n, counter.Name())
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(w, "Skipped: %d (run with --verbose for details)\n", len(result.Diagnostics))
	}
}

func init() {
	addCombineFlags(combineCmd)
	RootCmd.AddCommand(combineCmd)
}
