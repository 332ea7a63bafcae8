package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"llmpack/pkg/combine"
	"llmpack/pkg/llm"
	"llmpack/pkg/settings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultResultName is where query writes the model's answer.
const DefaultResultName = ".llmpack_result"

type queryFlags struct {
	dir         string
	output      string
	provider    string
	model       string
	language    string
	noClipboard bool
}

var queryOpts queryFlags

// newLLMClient is replaced in tests.
var newLLMClient = llm.NewClient

var queryCmd = &cobra.Command{
	Use:   "query [task]",
	Short: "Pack the project and ask the configured model to plan a task",
	Long: `Pack the project in memory and send it to the configured model together with
the instruction prompt and the task. Without arguments the task is read from
standard input.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	log := logger()

	_, cfg, err := openStore()
	if err != nil {
		return err
	}

	task := strings.TrimSpace(strings.Join(args, " "))
	if task == "" {
		task, err = readTask(cmd)
		if err != nil {
			return err
		}
	}
	if task == "" {
		return llm.ErrEmptyTask
	}

	provider := cfg.Provider
	if queryOpts.provider != "" {
		provider = queryOpts.provider
	}
	model := queryOpts.model
	if model == "" {
		if provider == cfg.Provider && cfg.Model != "" {
			model = cfg.Model
		} else {
			model, _ = settings.DefaultModel(provider)
		}
	}
	apiKey := cfg.APIKey(provider)
	if settings.RequiresAPIKey(provider) && apiKey == "" {
		return fmt.Errorf("%w for %s: run 'llmpack set-api-key %s' or set %s",
			llm.ErrMissingAPIKey, provider, provider, settings.EnvKeyName(provider))
	}

	language := cfg.Language
	if queryOpts.language != "" {
		language = queryOpts.language
	}

	doc, err := combine.Build(cmd.Context(), combine.Options{
		Root:     queryOpts.dir,
		MaxLines: cfg.Combine.MaxLines,
		Workers:  cfg.Combine.Workers,
		Exclude:  cfg.Combine.Exclude,
	}, log)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}
	reportDiagnostics(doc.Diagnostics, log)

	client, err := newLLMClient(cmd.Context(), provider, model, apiKey, log)
	if err != nil {
		return err
	}

	answer, err := llm.Query(cmd.Context(), client, llm.Request{
		Task:              task,
		Document:          doc.String(),
		Language:          language,
		InstructionPrompt: cfg.InstructionPrompt,
	}, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, answer)

	if err := os.WriteFile(queryOpts.output, []byte(answer), 0o644); err != nil {
		return fmt.Errorf("write result to %s: %w", queryOpts.output, err)
	}
	fmt.Fprintf(out, "\nResult saved to %s\n", queryOpts.output)

	if cfg.Combine.Clipboard && !queryOpts.noClipboard {
		if err := newCopier().Copy(answer); err != nil {
			log.Warn("Failed to copy result to clipboard", zap.Error(err))
		}
	}
	return nil
}

// readTask prompts on a terminal and otherwise reads all of standard input.
func readTask(cmd *cobra.Command) (string, error) {
	p := newPrompter(cmd)
	if p.tty {
		return p.ask("Task", "")
	}
	data, err := io.ReadAll(p.in)
	if err != nil {
		return "", fmt.Errorf("read task: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func init() {
	flags := queryCmd.Flags()
	flags.StringVarP(&queryOpts.dir, "dir", "d", ".", "Project directory to pack")
	flags.StringVarP(&queryOpts.output, "output", "o", DefaultResultName, "File the answer is written to")
	flags.StringVar(&queryOpts.provider, "provider", "", "Override the configured provider")
	flags.StringVar(&queryOpts.model, "model", "", "Override the configured model")
	flags.StringVar(&queryOpts.language, "lang", "", "Override the configured answer language")
	flags.BoolVar(&queryOpts.noClipboard, "no-clipboard", false, "Do not copy the answer to the clipboard")
	RootCmd.AddCommand(queryCmd)
}
