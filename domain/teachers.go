package domain

import (
	"sort"
)

// BuildTeachers строит расписания преподавателей из расписаний групп.
// Каждый урок с подгруппами копируется каждому преподавателю своей подгруппы
// с проставленным именем группы. Несогласованные подгруппы пропускаются.
func BuildTeachers(groups map[string]*ScheduleEntry) map[string]*ScheduleEntry {
	teachers := make(map[string]*ScheduleEntry)

	// Обходим группы в детерминированном порядке, чтобы порядок одинаковых уроков не зависел от map
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, groupName := range names {
		group := groups[groupName]
		for dayIndex, day := range group.Days {
			for _, lesson := range day.Lessons {
				if lesson.IsBreak() || len(lesson.SubGroups) == 0 {
					continue
				}

				// один преподаватель у обеих подгрупп получает урок один раз
				seen := make(map[string]bool, len(lesson.SubGroups))
				for _, subGroup := range lesson.SubGroups {
					if subGroup.IsInconsistent() || subGroup.Teacher == "" || seen[subGroup.Teacher] {
						continue
					}
					seen[subGroup.Teacher] = true

					teacher, ok := teachers[subGroup.Teacher]
					if !ok {
						teacher = emptyEntry(subGroup.Teacher, group.Days)
						teachers[subGroup.Teacher] = teacher
					}

					clone := lesson.Clone()
					clone.Group = group.Name
					teacher.Days[dayIndex].Lessons = append(teacher.Days[dayIndex].Lessons, clone)
				}
			}
		}
	}

	for _, teacher := range teachers {
		for i := range teacher.Days {
			sortByRangeEnd(teacher.Days[i].Lessons)
		}
	}

	return teachers
}

// emptyEntry копирует скелет недели без занятий
func emptyEntry(name string, days []Day) *ScheduleEntry {
	entry := &ScheduleEntry{
		Name: name,
		Days: make([]Day, len(days)),
	}
	for i, day := range days {
		entry.Days[i] = day.CloneEmpty()
	}
	return entry
}

// sortByRangeEnd упорядочивает уроки по номеру последней пары.
// Урок без номеров в расписании преподавателя не ожидается, для него берём время начала.
func sortByRangeEnd(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		if a.Range != nil && b.Range != nil {
			return a.Range[1] < b.Range[1]
		}
		return a.Time.Start.Before(b.Time.Start)
	})
}
