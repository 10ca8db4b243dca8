package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/martijn/typesprint/internal/core/repository"
	"github.com/martijn/typesprint/internal/core/service"
	"github.com/martijn/typesprint/internal/infrastructure/sqlite"
	"github.com/martijn/typesprint/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "typesprint",
	Short: "Typesprint - typing practice backend",
	Long: `Typesprint serves the typing practice application.

It provides:
- User registration and login with bearer tokens
- Randomly generated practice paragraphs
- Score recording and a top-10 leaderboard
- User administration from the command line`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/typesprint/config.yml)")
}

// Services is the application context shared by the commands: the database
// handle, the logger and everything built on top of them.
type Services struct {
	DB             *sqlite.DB
	Logger         *logrus.Logger
	UserRepo       repository.UserRepository
	ScoreRepo      repository.ScoreRepository
	AuthService    *service.AuthService
	UserService    *service.UserService
	ScoreService   *service.ScoreService
	ContentService *service.ContentService

	logCloser io.Closer
}

// initServices initializes all services
func initServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		if logCloser != nil {
			logCloser.Close()
		}
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if logCloser != nil {
			logCloser.Close()
		}
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	logger.WithField("path", cfg.DBPath).Debug("database ready")

	userRepo := sqlite.NewUserRepository(db)
	scoreRepo := sqlite.NewScoreRepository(db)

	hasher := service.NewPasswordHasher(service.DefaultArgon2Params)
	authService := service.NewAuthService(userRepo, hasher, cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, scoreRepo, authService, logger)
	scoreService := service.NewScoreService(scoreRepo)
	contentService := service.NewContentService(0, cfg.ParagraphMaxChars)

	return &Services{
		DB:             db,
		Logger:         logger,
		UserRepo:       userRepo,
		ScoreRepo:      scoreRepo,
		AuthService:    authService,
		UserService:    userService,
		ScoreService:   scoreService,
		ContentService: contentService,
		logCloser:      logCloser,
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.Logger.WithError(err).Warn("failed to close database")
		}
	}
	if s.logCloser != nil {
		s.logCloser.Close()
	}
}
