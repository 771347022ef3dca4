package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/register-graph/internal/application/handlers"
)

func newResolveCmd() *cobra.Command {
	var (
		entitiesFile      string
		relationshipsFile string
		outputDir         string
		runID             string
		overridesFile     string
		interactive       bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve disclosure records against the entity registries",
		Long: "Reads extracted entity and relationship CSV files, resolves every " +
			"relationship target against the alias index and the public registries, " +
			"and writes the resolved files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withResolveDeps(ctx, interactive, overridesFile, func(d *resolveDeps) error {
				result, err := d.Handler.Handle(ctx, handlers.ResolveOptions{
					EntitiesFile:      entitiesFile,
					RelationshipsFile: relationshipsFile,
					OutputDir:         outputDir,
					RunID:             runID,
				})
				if err != nil {
					return err
				}

				fmt.Printf("Resolved %d of %d records (%.1f%%)\n", result.Resolved, result.Total, result.PercentResolved)
				fmt.Printf("Entities: %d (+%d custom)\n", result.Entities, result.CustomEntities)
				fmt.Printf("Wrote %s\n", result.EntitiesFile)
				fmt.Printf("Wrote %s\n", result.RelationshipsFile)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&entitiesFile, "entities", "e", "", "Extracted entities CSV file (required)")
	cmd.Flags().StringVarP(&relationshipsFile, "relationships", "r", "", "Extracted relationships CSV file (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory for resolved files")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run identifier for checkpointing (defaults to the relationships file name)")
	cmd.Flags().StringVar(&overridesFile, "overrides", "", "Operator override table (from/to CSV)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for unresolved entities")
	_ = cmd.MarkFlagRequired("entities")
	_ = cmd.MarkFlagRequired("relationships")

	return cmd
}
