package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"nenmatch/internal/adapter/client"
	"nenmatch/internal/adapter/store"
	"nenmatch/internal/config"
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/logging"
	"nenmatch/internal/usecase"

	"github.com/qdrant/go-client/qdrant"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nenctl",
		Short:         "Tools for the nenmatch affinity service",
		SilenceUsage:  true,
	}
	root.AddCommand(newScoreCmd(), newThemesCmd(), newIndexPlayersCmd())
	return root
}

// newScoreCmd re-scores a primary/specialist pair without calling the model.
func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [primary] [specialist-score]",
		Short: "Expand a primary category and specialist score into an affinity vector",
		Example: `  nenctl score 強化系 70
  [100,80,60,70,60,80]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			primary, err := entity.ParseCategory(args[0])
			if err != nil {
				return err
			}
			intensity, err := strconv.Atoi(args[1])
			if err != nil || intensity < 0 || intensity > 100 {
				return fmt.Errorf("specialist score must be an integer within 0-100, got %q", args[1])
			}
			scores, err := usecase.Score(primary, intensity)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(scores)
		},
	}
}

func newThemesCmd() *cobra.Command {
	var (
		seed  int64
		count int
	)
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Show the theme selection a seed produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			var seedPtr *int64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			selection := usecase.SelectThemes(seedPtr, usecase.DefaultThemeCatalog, count)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(selection)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed to sample with (random when omitted)")
	cmd.Flags().IntVar(&count, "count", usecase.DefaultThemeCount, "number of themes to draw")
	return cmd
}

// newIndexPlayersCmd diagnoses player profiles and loads them into qdrant,
// skipping players that are already indexed.
func newIndexPlayersCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "index-players",
		Short: "Diagnose player profiles and index them for matching",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := readProfiles(input)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.QdrantHost == "" {
				return fmt.Errorf("QDRANT_HOST must be set to index players")
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			genaiClient, err := client.NewGenAIClient(ctx, cfg.GoogleAPIKey, cfg.GoogleCloudProject, cfg.GoogleCloudLocation)
			if err != nil {
				return fmt.Errorf("failed to init genai client: %w", err)
			}
			qClient, err := qdrant.NewClient(&qdrant.Config{Host: cfg.QdrantHost, Port: cfg.QdrantPort})
			if err != nil {
				return fmt.Errorf("failed to connect to qdrant: %w", err)
			}
			index := store.NewQdrantPlayerIndex(qClient, cfg.QdrantCollection, logger)
			if err := index.InitCollection(ctx); err != nil {
				return err
			}

			invoker := usecase.NewResilientInvoker(
				usecase.WithMaxRetries(cfg.MaxRetries),
				usecase.WithBaseDelay(cfg.RetryBaseDelay),
				usecase.WithLogger(logger),
			)
			pipeline := usecase.NewDiagnosisPipeline(
				client.NewGeminiDiagnoser(genaiClient, cfg.DiagnosisModel, cfg.DiagnosisTemperature),
				invoker, logger)

			report, err := usecase.NewPlayerIndexer(pipeline, index, logger).Index(ctx, profiles)
			if report != nil {
				printReport(cmd, report, logger)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "players.json", "JSON file with an array of player profiles")
	return cmd
}

func readProfiles(path string) ([]entity.PlayerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var profiles []entity.PlayerProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return profiles, nil
}

func printReport(cmd *cobra.Command, report *usecase.IndexReport, logger *zap.Logger) {
	out := cmd.OutOrStdout()
	for _, p := range report.Indexed {
		fmt.Fprintf(out, "%d %s -> %s (特質系: %d)\n", p.PlayerID, p.Name, p.Diagnosis.Primary, p.Diagnosis.SpecialistScore)
	}
	for id, err := range report.Failed {
		logger.Warn("player skipped", zap.Int("player_id", id), zap.Error(err))
	}
	fmt.Fprintf(out, "indexed: %d, already indexed: %d, failed: %d\n",
		len(report.Indexed), len(report.Skipped), len(report.Failed))
}
