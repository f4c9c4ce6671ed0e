package cmd

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"bullion/internal/interaction/gemini"
	"bullion/internal/locale"
)

var fetchCmd = &cobra.Command{
	Use:          "fetch",
	Short:        "Fetch prices once and print them as JSON",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		userLocale := locale.FromEnv(cnf.Poller.DefaultLocale)

		geminiClient := &http.Client{Timeout: cnf.Gemini.Timeout}
		geminiInteractor := gemini.NewInteraction(logger, geminiClient, cnf.Gemini.BaseURL, cnf.Gemini.APIKey, cnf.Gemini.Model)

		records, err := geminiInteractor.GetPrices(cmd.Context(), userLocale)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	},
}
