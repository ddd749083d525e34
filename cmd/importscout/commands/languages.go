package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/importscout/importscout/pkg/extract"
)

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if grammarFile != "" {
				if _, err := extract.LoadGrammarFile(grammarFile); err != nil {
					return err
				}
			}

			for _, lang := range extract.Languages() {
				fmt.Fprintln(cmd.OutOrStdout(), lang)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar-file", "", "YAML file with extra language grammars")

	return cmd
}
