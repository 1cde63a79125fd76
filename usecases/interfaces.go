package usecases

import "github.com/Vaflel/schedule-parser/domain"

// ScheduleParser разбирает содержимое файла расписания
type ScheduleParser interface {
	Parse(data []byte) (*domain.ParsedSchedule, error)
}

// ScheduleCache определяет интерфейс для кэша разобранных расписаний
type ScheduleCache interface {
	Get(data []byte) (*domain.ParsedSchedule, bool)
	Set(data []byte, schedule *domain.ParsedSchedule)
}
