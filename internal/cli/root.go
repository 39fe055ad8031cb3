package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"habitat_service/internal/config"
	"habitat_service/internal/core"
	"habitat_service/internal/domain/model"
	"habitat_service/internal/domain/repository"
	"habitat_service/internal/infrastructure/zoneclient"
	"habitat_service/internal/logging"
	"habitat_service/internal/report"
)

var (
	configPath  string
	datasetPath string
	bboxFlag    string
	formatFlag  string
	verbose     bool
	cfg         *config.Config
	logger      *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "habitat",
	Short:         "Pollinator habitat network and biodiversity analytics",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg.ApplyEnv(os.Getenv)

		level := logging.LevelFromString(cfg.Log.Level)
		if verbose {
			level = slog.LevelDebug
		}
		logger = logging.New(cmd.ErrOrStderr(), level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "habitat.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "JSON dataset file to analyze instead of PostGIS")
	rootCmd.PersistentFlags().StringVar(&bboxFlag, "bbox", "", "Bounding box minLat,minLon,maxLat,maxLon")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text, json, yaml or csv")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}

// session holds what a command needs for one run.
type session struct {
	service *core.AnalyticsService
	bounds  model.Bounds
	format  report.Format
	out     io.Writer
	closers []io.Closer
}

func (s *session) Close() {
	for _, c := range s.closers {
		c.Close()
	}
}

var errNoDataSource = errors.New("no data source: pass --dataset or set postgres.url / POSTGRES_URL")

func newSession(cmd *cobra.Command) (*session, error) {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}
	s := &session{format: format, out: cmd.OutOrStdout()}

	if bboxFlag != "" {
		if s.bounds, err = repository.ParseBounds(bboxFlag); err != nil {
			return nil, fmt.Errorf("invalid --bbox: %w", err)
		}
	}

	var (
		data     repository.DataSource
		zones    []repository.ZoneSource
		recorder repository.AnalysisRecorder
	)
	switch {
	case datasetPath != "":
		ds, err := repository.LoadDataset(datasetPath)
		if err != nil {
			return nil, err
		}
		data = ds
		zones = append(zones, ds)
		logger.Debug("using dataset file", "path", datasetPath)
	case cfg.Postgres.URL != "":
		pg, err := repository.NewPostgresRepository(cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg)
		data = pg
		recorder = repository.NewPostgresAnalysisRecorder(pg.DB)
	default:
		return nil, errNoDataSource
	}

	if cfg.ZoneModel.URL != "" {
		zones = append(zones, zoneclient.NewHTTPZoneClient(cfg.ZoneModel.URL, seconds(cfg.ZoneModel.TimeoutSeconds)))
	}
	if cfg.Overpass.URL != "" && !s.bounds.IsZero() {
		zones = append(zones, repository.NewOverpassRepository(cfg.Overpass.URL, seconds(cfg.Overpass.TimeoutSeconds)))
	}

	s.service = core.NewAnalyticsService(data, zones, recorder, cfg.Analysis.SaveRuns, cfg.Engine, logger)
	return s, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
