package domain

import (
	"sort"
	"time"
)

// ViolationType вид найденной проблемы в расписании
type ViolationType string

const (
	ViolationInconsistentSubGroup ViolationType = "Несогласованность подгрупп"
	ViolationUnknownRoom          ViolationType = "Не указана аудитория"
	ViolationTeacherOverlap       ViolationType = "Пересечение занятий преподавателя"
)

// Violation описывает одну проблему в расписании
type Violation struct {
	Entity string        // группа или преподаватель
	Date   time.Time     // дата
	Type   ViolationType // вид проблемы
	Lesson string        // название занятия
	Time   LessonBoundaries
	Detail string // для пересечений: с какой группой
}

// NewViolation создает новое нарушение
func NewViolation(entity string, date time.Time, violationType ViolationType, lesson Lesson, detail string) Violation {
	return Violation{
		Entity: entity,
		Date:   date,
		Type:   violationType,
		Lesson: lesson.Name,
		Time:   lesson.Time,
		Detail: detail,
	}
}

// Validator содержит разобранное расписание и методы для его проверки
type Validator struct {
	schedule *ParsedSchedule
}

// NewValidator создаёт новый Validator
func NewValidator(schedule *ParsedSchedule) *Validator {
	return &Validator{
		schedule: schedule,
	}
}

// ValidateSchedule собирает мягкие аномалии разбора и пересечения у преподавателей
func (v *Validator) ValidateSchedule() []Violation {
	violations := []Violation{}

	for _, name := range sortedNames(v.schedule.Groups) {
		group := v.schedule.Groups[name]
		for _, day := range group.Days {
			violations = append(violations, v.validateGroupDay(group.Name, day)...)
		}
	}

	for _, name := range sortedNames(v.schedule.Teachers) {
		teacher := v.schedule.Teachers[name]
		for _, day := range teacher.Days {
			violations = append(violations, v.validateTeacherDay(teacher.Name, day)...)
		}
	}

	return violations
}

// validateGroupDay проверяет подгруппы и аудитории одного дня группы
func (v *Validator) validateGroupDay(group string, day Day) []Violation {
	violations := []Violation{}

	for _, lesson := range day.Lessons {
		if lesson.IsBreak() {
			continue
		}

		inconsistent, unknownRoom := false, false
		for _, subGroup := range lesson.SubGroups {
			if subGroup.IsInconsistent() {
				inconsistent = true
			}
			if subGroup.Room == UnknownRoom {
				unknownRoom = true
			}
		}

		if inconsistent {
			violations = append(violations, NewViolation(group, day.Date, ViolationInconsistentSubGroup, lesson, ""))
		}
		if unknownRoom {
			violations = append(violations, NewViolation(group, day.Date, ViolationUnknownRoom, lesson, ""))
		}
	}

	return violations
}

// validateTeacherDay ищет занятия преподавателя, пересекающиеся по времени
func (v *Validator) validateTeacherDay(teacher string, day Day) []Violation {
	violations := []Violation{}

	for i := 0; i < len(day.Lessons); i++ {
		for j := i + 1; j < len(day.Lessons); j++ {
			a, b := day.Lessons[i], day.Lessons[j]
			// один и тот же поток у нескольких групп не пересечение
			if a.Name == b.Name && a.Time == b.Time {
				continue
			}
			if a.Time.Overlaps(b.Time) {
				violations = append(violations, NewViolation(teacher, day.Date, ViolationTeacherOverlap, a, b.Group))
			}
		}
	}

	return violations
}

func sortedNames(entries map[string]*ScheduleEntry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
