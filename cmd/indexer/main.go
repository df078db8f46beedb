package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credora/indexer/internal/aggregator"
	"github.com/credora/indexer/internal/common"
	"github.com/credora/indexer/internal/config"
	"github.com/credora/indexer/internal/db"
	"github.com/credora/indexer/internal/decoder"
	"github.com/credora/indexer/internal/engine"
	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/internal/metrics"
	"github.com/credora/indexer/internal/rpc"
	isource "github.com/credora/indexer/internal/source"
	istore "github.com/credora/indexer/internal/store"
	"github.com/credora/indexer/pkg/api"
	pkgconfig "github.com/credora/indexer/pkg/config"
	"github.com/credora/indexer/pkg/source"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║         Credora Indexer v%s            ║
║   Credit score and permission indexing    ║
╚═══════════════════════════════════════════╝
`
	stopTimeout = 10 * time.Second
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "Credora indexer - credit score and permission event indexer",
	Long: `The Credora indexer consumes ScoreSBT, PermissionManager and ScoreOracle events,
maintains the derived credit score, permission and oracle entities in SQLite, and serves
them over a read-only HTTP API.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runIndexer,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := &jsonschema.Reflector{DoNotReference: true}
		schema := reflector.Reflect(&pkgconfig.Config{})
		schema.Title = "Credora indexer configuration"

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the indexer version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.AddCommand(schemaCmd, versionCmd)
}

func runIndexer(cmd *cobra.Command, args []string) (err error) {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentEngine, cfg.Logging)
	defer func() { _ = log.Close() }()

	log.Info("Connecting to Ethereum node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Source, logger.NewComponentLoggerFromConfig(common.ComponentRPC, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer ethClient.Close()

	chainID, err := ethClient.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain id: %w", err)
	}
	log.Infow("connected to Ethereum node", "chain_id", chainID.Uint64())

	dec, err := decoder.New(decoder.Contracts{
		ScoreSBT:          ethcommon.HexToAddress(cfg.Contracts.ScoreSBT),
		PermissionManager: ethcommon.HexToAddress(cfg.Contracts.PermissionManager),
		ScoreOracle:       ethcommon.HexToAddress(cfg.Contracts.ScoreOracle),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	finality, err := source.ParseFinality(cfg.Source.Finality)
	if err != nil {
		return fmt.Errorf("invalid source finality: %w", err)
	}

	src := isource.NewLogSource(isource.Config{
		ChunkSize:    cfg.Source.ChunkSize,
		Finality:     finality,
		FinalizedLag: cfg.Source.FinalizedLag,
		PollInterval: cfg.Source.PollInterval.Duration,
	}, logger.NewComponentLoggerFromConfig(common.ComponentEventSource, cfg.Logging), ethClient, dec)

	log.Info("Opening entity store...")
	storeLog := logger.NewComponentLoggerFromConfig(common.ComponentEntityStore, cfg.Logging)
	st, err := istore.Open(cfg.DB, storeLog)
	if err != nil {
		return fmt.Errorf("failed to open entity store: %w", err)
	}

	maintainer := db.NewMaintainer(cfg.DB.Path, st.DB(), cfg.DB.Maintenance, storeLog.WithComponent("db-maintenance"))
	st.SetOperationLocker(maintainer)

	metricsServer := metrics.NewServer(cfg.Metrics, logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging))
	if err := metricsServer.Start(ctx); err != nil {
		return multierr.Append(fmt.Errorf("failed to start metrics server: %w", err), st.Close())
	}

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()

		err = multierr.Combine(err, metricsServer.Stop(stopCtx), st.Close())
	}()

	eng, err := engine.New(engine.Config{
		StartBlock: cfg.Source.StartBlock,
		ChainID:    chainID.Uint64(),
		Retry:      cfg.Engine.Retry,
		DBPath:     cfg.DB.Path,
	}, src, st, aggregator.New(logger.NewComponentLoggerFromConfig(common.ComponentAggregator, cfg.Logging)), log)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return maintainer.Run(gctx)
	})

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, st, logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging))
		g.Go(func() error {
			return apiServer.Start(gctx)
		})
	}

	g.Go(func() error {
		log.Info("Starting Credora indexer...")
		if err := eng.Run(gctx); err != nil {
			return fmt.Errorf("engine failed: %w", err)
		}
		// A finished engine takes the API down with it
		stop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("Credora indexer stopped")
	return nil
}
