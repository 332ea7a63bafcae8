package cmd

import (
	"fmt"
	"os"

	"llmpack/pkg/settings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively choose provider, model, API key and language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		p := newPrompter(cmd)

		if _, statErr := os.Stat(store.Path()); statErr == nil {
			ok, err := p.confirm(fmt.Sprintf("%s already exists. Update it? [y/N]: ", store.Path()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		provider, err := p.choose("Provider", settings.Providers, cfg.Provider)
		if err != nil {
			return err
		}

		defaultModel, _ := settings.DefaultModel(provider)
		if provider == cfg.Provider && cfg.Model != "" {
			defaultModel = cfg.Model
		}
		var modelIDs []string
		for _, m := range settings.ModelsFor(provider) {
			modelIDs = append(modelIDs, m.ID)
		}
		model, err := p.choose("Model", modelIDs, defaultModel)
		if err != nil {
			return err
		}
		if err := store.SetModel(provider, model); err != nil {
			return err
		}

		if settings.RequiresAPIKey(provider) {
			key, err := p.askSecret(fmt.Sprintf("API key for %s (empty keeps the current one, %s also works)", provider, settings.EnvKeyName(provider)))
			if err != nil {
				return err
			}
			if key != "" {
				if err := store.SetAPIKey(provider, key); err != nil {
					return err
				}
			}
		}

		language, err := p.ask("Response language", cfg.Language)
		if err != nil {
			return err
		}
		store.Set(settings.KeyLanguage, language)

		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved settings to %s\n", store.Path())
		return nil
	},
}

var setAPIKeyCmd = &cobra.Command{
	Use:   "set-api-key <provider> [key]",
	Short: "Store the API key for a provider",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		provider := args[0]
		if !settings.IsKnownProvider(provider) {
			return fmt.Errorf("%w: %s", settings.ErrUnknownProvider, provider)
		}

		key := ""
		if len(args) == 2 {
			key = args[1]
		} else {
			key, err = newPrompter(cmd).askSecret(fmt.Sprintf("API key for %s", provider))
			if err != nil {
				return err
			}
		}
		if key == "" {
			return fmt.Errorf("no API key given for %s", provider)
		}

		if err := store.SetAPIKey(provider, key); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key for %s updated.\n", provider)
		return nil
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model <provider> [model]",
	Short: "Select the provider and model used by query",
	Long:  "Select the provider and model used by query. Without a model the provider's default is used.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		model := ""
		if len(args) == 2 {
			model = args[1]
		}
		if err := store.SetModel(args[0], model); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		cfg, err := store.Settings()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Using %s with model %s.\n", cfg.Provider, cfg.Model)
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List the known models",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := openStore()
		if err != nil {
			return err
		}
		providers := settings.Providers
		if len(args) == 1 {
			if !settings.IsKnownProvider(args[0]) {
				return fmt.Errorf("%w: %s", settings.ErrUnknownProvider, args[0])
			}
			providers = args[:1]
		}

		out := cmd.OutOrStdout()
		for _, provider := range providers {
			fmt.Fprintf(out, "%s:\n", provider)
			for _, m := range settings.ModelsFor(provider) {
				marker := " "
				if provider == cfg.Provider && m.ID == cfg.Model {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s %-30s %s\n", marker, m.ID, m.Description)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd, setAPIKeyCmd, setModelCmd, modelsCmd)
}
