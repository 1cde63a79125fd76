package infrastructure

import (
	"github.com/Vaflel/schedule-parser/domain"
	"go.uber.org/zap"
)

// DefaultCharset кодировка строк BIFF5, в которой приходят файлы колледжа
const DefaultCharset = "windows-1251"

// DefaultTimeColumn колонка с временем пар
const DefaultTimeColumn = 1

// ScheduleParser разбирает файл расписания в расписания групп и преподавателей.
// Не хранит состояния между вызовами, безопасен для параллельного использования.
type ScheduleParser struct {
	charset    string
	timeColumn int
	logger     *zap.Logger
}

// ParserOption настройка парсера
type ParserOption func(*ScheduleParser)

// WithCharset задаёт кодировку для extrame/xls
func WithCharset(charset string) ParserOption {
	return func(p *ScheduleParser) {
		if charset != "" {
			p.charset = charset
		}
	}
}

// WithTimeColumn задаёт колонку времени пар
func WithTimeColumn(col int) ParserOption {
	return func(p *ScheduleParser) {
		p.timeColumn = col
	}
}

// WithLogger задаёт логгер для мягких диагностик
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *ScheduleParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewScheduleParser создаёт парсер с настройками по умолчанию
func NewScheduleParser(opts ...ParserOption) *ScheduleParser {
	p := &ScheduleParser{
		charset:    DefaultCharset,
		timeColumn: DefaultTimeColumn,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse разбирает содержимое файла. При ошибке частичный результат не возвращается.
func (p *ScheduleParser) Parse(data []byte) (*domain.ParsedSchedule, error) {
	sheet, err := OpenWorkSheet(data, p.charset)
	if err != nil {
		return nil, err
	}
	return p.ParseSheet(sheet)
}

// ParseSheet разбирает уже открытый лист
func (p *ScheduleParser) ParseSheet(sheet WorkSheet) (*domain.ParsedSchedule, error) {
	sp := &sheetParser{
		sheet:      sheet,
		timeColumn: p.timeColumn,
		logger:     p.logger,
	}

	days, groupMarkers, err := sp.scanSkeleton()
	if err != nil {
		return nil, err
	}

	// границы пар не зависят от группы, читаем один раз на день
	rows, _ := sheet.Bounds()
	daySlots := make([][]lessonSlot, len(days))
	for i, day := range days {
		endRow := rows
		if i+1 < len(days) {
			endRow = days[i+1].Row
		}
		slots, err := sp.lessonSlots(day, endRow)
		if err != nil {
			return nil, err
		}
		daySlots[i] = slots
	}

	groups := make(map[string]*domain.ScheduleEntry, len(groupMarkers))
	for _, marker := range groupMarkers {
		entry := &domain.ScheduleEntry{
			Name: marker.Name,
			Days: make([]domain.Day, 0, len(days)),
		}
		for i, day := range days {
			built, err := sp.buildDay(day, daySlots[i], marker.Col)
			if err != nil {
				return nil, err
			}
			entry.Days = append(entry.Days, built)
		}

		if _, exists := groups[marker.Name]; exists {
			p.logger.Warn("группа встречается в заголовке дважды, берём последнюю колонку",
				zap.String("group", marker.Name),
				zap.Int("col", marker.Col))
		}
		groups[marker.Name] = entry
	}

	p.logger.Debug("расписание разобрано",
		zap.Int("days", len(days)),
		zap.Int("groups", len(groups)))

	return &domain.ParsedSchedule{
		Groups:   groups,
		Teachers: domain.BuildTeachers(groups),
	}, nil
}

// sheetParser состояние одного разбора листа
type sheetParser struct {
	sheet      WorkSheet
	timeColumn int
	logger     *zap.Logger
}

// buildDay собирает день группы по слотам, вставляя перерыв перед каждым занятием, кроме первого
func (p *sheetParser) buildDay(day dayMarker, slots []lessonSlot, col int) (domain.Day, error) {
	result := domain.Day{
		Name:    day.Name,
		Date:    day.Date,
		Lessons: []domain.Lesson{},
	}

	var previous *domain.Lesson
	for i := range slots {
		cell, err := p.parseLessonCell(slots, i, col)
		if err != nil {
			return domain.Day{}, err
		}

		if cell.Street != "" {
			result.Street = cell.Street
			continue
		}
		if cell.Lesson == nil {
			continue
		}

		if previous != nil {
			result.Lessons = append(result.Lessons, domain.NewBreak(previous.Time.End, cell.Lesson.Time.Start))
		}
		result.Lessons = append(result.Lessons, *cell.Lesson)
		previous = cell.Lesson
	}

	return result, nil
}
