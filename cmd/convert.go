package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-journey-composer/internal/config"
	"github.com/deploymenttheory/go-journey-composer/internal/logger"
	"github.com/deploymenttheory/go-journey-composer/pkg/tooling"
)

var (
	journeyFile      string
	attributesFile   string
	environmentsFile string
)

// convertCmd converts one journey document into its output artifacts
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a journey document into text and a variable catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("out") {
			outDir, _ := cmd.Flags().GetString("out")
			config.Instance.Output.Dir = outDir
		}
		if cmd.Flags().Changed("include-unresolved") {
			include, _ := cmd.Flags().GetBool("include-unresolved")
			config.Instance.Conversion.IncludeUnresolved = include
		}

		result, err := tooling.ConvertFile(journeyFile, attributesFile, environmentsFile)
		if err != nil {
			logger.LogError("Conversion failed", err, map[string]interface{}{
				"journey": journeyFile,
			})
			return err
		}

		fmt.Printf("Converted %q: %d checkpoints, %d steps, %d variables\n",
			result.Journey.Title, result.Summary.Checkpoints, result.Summary.Steps, result.Summary.Variables)
		fmt.Printf("Script written to %s\n", result.Artifacts.ScriptPath)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&journeyFile, "journey", "j", "", "journey JSON document to convert (required)")
	convertCmd.Flags().StringVarP(&attributesFile, "testdata", "t", "", "data attribute JSON document")
	convertCmd.Flags().StringVarP(&environmentsFile, "environments", "e", "", "environments JSON document")
	convertCmd.Flags().String("out", "", "output directory for artifacts")
	convertCmd.Flags().Bool("include-unresolved", false, "keep unresolved variables in the catalog")
	convertCmd.MarkFlagRequired("journey")

	viper.BindPFlag("output.dir", convertCmd.Flags().Lookup("out"))
	viper.BindPFlag("conversion.include_unresolved", convertCmd.Flags().Lookup("include-unresolved"))

	rootCmd.AddCommand(convertCmd)
}
