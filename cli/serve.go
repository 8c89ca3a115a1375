package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cppla/askboard/routes"
	"github.com/cppla/askboard/utils"
)

func newServeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve the board over HTTP until SIGTERM or SIGINT.

SIGUSR2 restarts the server in place, handing the listening socket to a
fresh process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, s)
		},
	}
}

func runServe(cmd *cobra.Command, s *session) error {
	cfg := s.cfg
	if err := utils.InitLogger(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	board, closeFn, err := openStore(cmd.Context(), cfg, utils.Logger.Named("store"))
	if err != nil {
		return err
	}
	defer closeFn()

	accessLog, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err != nil {
		utils.Logger.Warn("access log unavailable, using application log", zap.String("path", cfg.GinPath), zap.Error(err))
		accessLog = utils.Logger.Named("http")
	}
	defer func() { _ = accessLog.Sync() }()

	r := routes.SetupRouter(board, cfg, accessLog)
	utils.Logger.Info("starting server",
		zap.String("port", cfg.AppPort),
		zap.String("storage", cfg.StorageBackend))
	return utils.NewServer(":"+cfg.AppPort, r, utils.Logger).ListenAndServe()
}
