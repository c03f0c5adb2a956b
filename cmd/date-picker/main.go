package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/date-picker/internal/calendar"
	"github.com/username/date-picker/internal/config"
	"github.com/username/date-picker/internal/locale"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	localeTag  string
	cfg        *config.Config
	logger     *zap.Logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "date-picker",
		Short:        "Calendar pages and localized date labels",
		Long:         "Lay out month pages, list localized month and weekday names, format dates and pick a date interactively",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if localeTag != "" {
				cfg.Locale = localeTag
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
			} else {
				logger, err = initLogger(cfg.Log.Level)
			}
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			locale.SetLocale(cfg.Locale)
			logger.Debug("Configuration loaded",
				zap.String("locale", cfg.Locale),
				zap.String("availability", cfg.Availability.Type))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&localeTag, "locale", "l", "", "Locale tag, e.g. de-DE or en-US (overrides config)")

	rootCmd.AddCommand(pageCmd())
	rootCmd.AddCommand(namesCmd())
	rootCmd.AddCommand(formatCmd())
	rootCmd.AddCommand(pickCmd())

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initializeAvailability builds the selectable-date predicate from config
func initializeAvailability(cfg *config.Config) (calendar.AllowFunc, error) {
	av := cfg.Availability

	switch av.Type {
	case "", config.AvailabilityNone:
		return calendar.AllowAll, nil

	case config.AvailabilityFile:
		logger.Info("Using file calendar", zap.String("file", av.File))
		fc := calendar.NewFileCalendar(av.File, logger)
		if err := fc.Load(); err != nil {
			return nil, err
		}
		return calendar.Predicate(fc, logger), nil

	case config.AvailabilityIsDayOff:
		logger.Info("Using isdayoff calendar API", zap.String("url", av.APIURL))
		cal := calendar.NewIsDayOffCalendar(av.APIURL, av.Country, av.FallbackURL, av.GetCacheTTL(), logger)
		return calendar.Predicate(cal, logger), nil

	case config.AvailabilityComposite:
		logger.Info("Using isdayoff calendar API with file fallback",
			zap.String("url", av.APIURL),
			zap.String("file", av.File))
		primary := calendar.NewIsDayOffCalendar(av.APIURL, av.Country, av.FallbackURL, av.GetCacheTTL(), logger)
		fallback := calendar.NewFileCalendar(av.File, logger)
		composite := calendar.NewCompositeCalendar(primary, fallback, logger)

		if err := composite.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback calendar, continuing with API only",
				zap.Error(err))
		}
		return calendar.Predicate(composite, logger), nil

	default:
		return nil, fmt.Errorf("unknown availability type: %s", av.Type)
	}
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	return zapLevel
}

func initLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}
