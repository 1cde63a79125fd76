package usecases

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Vaflel/schedule-parser/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoSchedule ни один файл ещё не был успешно разобран
var ErrNoSchedule = errors.New("расписание ещё не загружено")

// ErrNotFound группа или преподаватель отсутствуют в расписании
var ErrNotFound = errors.New("не найдено в расписании")

// ScheduleService управляет разбором файлов и хранит последнее удачно разобранное расписание
type ScheduleService struct {
	parser ScheduleParser
	cache  ScheduleCache
	logger *zap.Logger

	mu      sync.RWMutex
	current *domain.ParsedSchedule
}

// ValidatingResult содержит результаты проверки расписания
type ValidatingResult struct {
	Violations []domain.Violation
	Schedule   *domain.ParsedSchedule
}

// NewScheduleService создает новый экземпляр сервиса; cache и logger могут быть nil
func NewScheduleService(parser ScheduleParser, cache ScheduleCache, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		parser: parser,
		cache:  cache,
		logger: logger,
	}
}

type parseResult struct {
	schedule *domain.ParsedSchedule
	err      error
}

// Parse разбирает файл с учётом дедлайна ctx. Удачный результат становится текущим расписанием,
// при ошибке текущее расписание не меняется.
func (s *ScheduleService) Parse(ctx context.Context, data []byte) (*domain.ParsedSchedule, error) {
	schedule, err := s.parse(ctx, data)
	if err != nil {
		return nil, err
	}
	s.setCurrent(schedule)
	return schedule, nil
}

// parse разбирает файл, не трогая текущее расписание
func (s *ScheduleService) parse(ctx context.Context, data []byte) (*domain.ParsedSchedule, error) {
	if s.cache != nil {
		if schedule, ok := s.cache.Get(data); ok {
			s.logger.Debug("расписание взято из кэша")
			return schedule, nil
		}
	}

	// сам разбор синхронный, поэтому ждём его в отдельной горутине
	done := make(chan parseResult, 1)
	go func() {
		schedule, err := s.parser.Parse(data)
		done <- parseResult{schedule: schedule, err: err}
	}()

	var result parseResult
	select {
	case <-ctx.Done():
		s.logger.Warn("разбор прерван", zap.Error(ctx.Err()))
		return nil, fmt.Errorf("разбор расписания: %w", ctx.Err())
	case result = <-done:
	}

	if result.err != nil {
		s.logger.Error("ошибка разбора расписания", zap.Error(result.err))
		return nil, result.err
	}

	if s.cache != nil {
		s.cache.Set(data, result.schedule)
	}

	s.logger.Info("расписание загружено",
		zap.Int("groups", len(result.schedule.Groups)),
		zap.Int("teachers", len(result.schedule.Teachers)))

	return result.schedule, nil
}

// ParseFile читает и разбирает один файл, результат становится текущим расписанием
func (s *ScheduleService) ParseFile(ctx context.Context, path string) (*domain.ParsedSchedule, error) {
	schedule, err := s.parseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	s.setCurrent(schedule)
	return schedule, nil
}

func (s *ScheduleService) parseFile(ctx context.Context, path string) (*domain.ParsedSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл %s: %w", path, err)
	}
	schedule, err := s.parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schedule, nil
}

// ParseFiles разбирает несколько файлов параллельно; результаты в порядке путей.
// Первая ошибка отменяет остальные разборы. Текущим становится расписание последнего пути,
// при ошибке текущее расписание не меняется.
func (s *ScheduleService) ParseFiles(ctx context.Context, paths []string) ([]*domain.ParsedSchedule, error) {
	results := make([]*domain.ParsedSchedule, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			schedule, err := s.parseFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = schedule
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(results) > 0 {
		s.setCurrent(results[len(results)-1])
	}
	return results, nil
}

// Current возвращает последнее удачно разобранное расписание
func (s *ScheduleService) Current() (*domain.ParsedSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoSchedule
	}
	return s.current, nil
}

// Group возвращает неделю группы из текущего расписания
func (s *ScheduleService) Group(name string) (*domain.ScheduleEntry, error) {
	schedule, err := s.Current()
	if err != nil {
		return nil, err
	}
	entry, ok := schedule.Group(name)
	if !ok {
		return nil, fmt.Errorf("группа %q: %w", name, ErrNotFound)
	}
	return entry, nil
}

// Teacher возвращает неделю преподавателя из текущего расписания
func (s *ScheduleService) Teacher(name string) (*domain.ScheduleEntry, error) {
	schedule, err := s.Current()
	if err != nil {
		return nil, err
	}
	entry, ok := schedule.Teacher(name)
	if !ok {
		return nil, fmt.Errorf("преподаватель %q: %w", name, ErrNotFound)
	}
	return entry, nil
}

// Validate проверяет текущее расписание на мягкие несоответствия
func (s *ScheduleService) Validate() (ValidatingResult, error) {
	schedule, err := s.Current()
	if err != nil {
		return ValidatingResult{}, err
	}

	validator := domain.NewValidator(schedule)
	violations := validator.ValidateSchedule()

	return ValidatingResult{
		Violations: violations,
		Schedule:   schedule,
	}, nil
}

func (s *ScheduleService) setCurrent(schedule *domain.ParsedSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = schedule
}
