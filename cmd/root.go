package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/Vaflel/schedule-parser/infrastructure"
	"github.com/Vaflel/schedule-parser/usecases"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	charset    string
	timeColumn int
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "schedule-parser",
	Short: "Разбор недельного расписания колледжа из XLS",
	Long: `schedule-parser читает недельное расписание колледжа (.xls или .xlsx)
и строит по нему расписания групп и преподавателей: JSON, проверка, iCalendar и HTML.`,
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", infrastructure.DefaultConfigFile, "YAML-файл настроек")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", infrastructure.DefaultCharset, "кодировка строк .xls")
	rootCmd.PersistentFlags().IntVar(&timeColumn, "time-column", infrastructure.DefaultTimeColumn, "колонка с временем пар")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "уровень логирования (debug, info, warn, error)")
}

// loadConfig читает файл настроек и накладывает явно заданные флаги
func loadConfig(cmd *cobra.Command) (infrastructure.Config, error) {
	cfg, err := infrastructure.NewYAMLConfigRepository(configFile).Load()
	if err != nil {
		return infrastructure.Config{}, fmt.Errorf("настройки %s: %w", configFile, err)
	}

	flags := cmd.Flags()
	if flags.Changed("charset") {
		cfg.Charset = charset
	}
	if flags.Changed("time-column") {
		cfg.TimeColumn = timeColumn
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger собирает zap-логгер в stderr с уровнем из настроек
func newLogger(level string) (*zap.Logger, error) {
	zcfg, err := loggerConfig(level)
	if err != nil {
		return nil, err
	}
	return zcfg.Build()
}

// loggerConfig на уровне debug даёт консольный development-логгер, на остальных production в JSON
func loggerConfig(level string) (zap.Config, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("уровень логирования %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	if atomic.Level() == zap.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = atomic
	zcfg.DisableStacktrace = true
	return zcfg, nil
}

// app общее окружение команд
type app struct {
	cfg     infrastructure.Config
	logger  *zap.Logger
	service *usecases.ScheduleService
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	parser := infrastructure.NewScheduleParser(
		infrastructure.WithCharset(cfg.Charset),
		infrastructure.WithTimeColumn(cfg.TimeColumn),
		infrastructure.WithLogger(logger),
	)
	cache := infrastructure.NewScheduleCache(cfg.CacheTTL)

	return &app{
		cfg:     cfg,
		logger:  logger,
		service: usecases.NewScheduleService(parser, cache, logger),
	}, nil
}

// parseFiles разбирает файлы с общим таймаутом из настроек
func (a *app) parseFiles(ctx context.Context, paths []string) ([]*domain.ParsedSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ParseTimeout)
	defer cancel()
	return a.service.ParseFiles(ctx, paths)
}

// findEntry ищет группу или преподавателя в первом файле, где они есть
func findEntry(schedules []*domain.ParsedSchedule, group, teacher string) (*domain.ScheduleEntry, error) {
	if group != "" && teacher != "" {
		return nil, fmt.Errorf("укажите только --group или только --teacher")
	}
	for _, schedule := range schedules {
		if group != "" {
			if entry, ok := schedule.Group(group); ok {
				return entry, nil
			}
			continue
		}
		if entry, ok := schedule.Teacher(teacher); ok {
			return entry, nil
		}
	}
	if group != "" {
		return nil, fmt.Errorf("группа %q: %w", group, usecases.ErrNotFound)
	}
	return nil, fmt.Errorf("преподаватель %q: %w", teacher, usecases.ErrNotFound)
}

// selectEntry выбирает неделю группы или преподавателя из текущего расписания
func (a *app) selectEntry(group, teacher string) (*domain.ScheduleEntry, error) {
	switch {
	case group != "" && teacher != "":
		return nil, fmt.Errorf("укажите только --group или только --teacher")
	case group != "":
		return a.service.Group(group)
	case teacher != "":
		return a.service.Teacher(teacher)
	default:
		return nil, fmt.Errorf("укажите --group или --teacher")
	}
}
