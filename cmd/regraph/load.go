package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/register-graph/internal/application/handlers"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
	neo4jdb "github.com/ersonp/register-graph/internal/infrastructure/graphdb/neo4j"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

func newLoadCmd() *cobra.Command {
	var (
		entitiesFile      string
		relationshipsFile string
		clean             bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load resolved files into the Neo4j graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			cfg, err := config.Load(cwd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			log, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer log.Sync()

			loader, err := neo4jdb.NewLoader(ctx, cfg.Neo4j, log)
			if err != nil {
				return fmt.Errorf("connecting to neo4j: %w", err)
			}
			defer loader.Close(ctx)

			handler := handlers.NewLoadHandler(loader)
			result, err := handler.Handle(ctx, handlers.LoadOptions{
				EntitiesFile:      entitiesFile,
				RelationshipsFile: relationshipsFile,
				Clean:             clean,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d entities and %d relationships\n", result.Entities, result.Relationships)
			return nil
		},
	}

	cmd.Flags().StringVarP(&entitiesFile, "entities", "e", "", "Resolved entities CSV file (required)")
	cmd.Flags().StringVarP(&relationshipsFile, "relationships", "r", "", "Resolved relationships CSV file (required)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Delete all existing nodes and relationships first")
	_ = cmd.MarkFlagRequired("entities")
	_ = cmd.MarkFlagRequired("relationships")

	return cmd
}
