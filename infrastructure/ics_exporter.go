package infrastructure

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Vaflel/schedule-parser/domain"
	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// icsNamespace пространство имён для детерминированных UID событий
var icsNamespace = uuid.MustParse("5f0c1c4e-3a57-4d0b-9a36-8f2c1e6d7b10")

// GenerateICS записывает занятия недели группы или преподавателя в формате iCalendar.
// Перерывы пропускаются, UID события зависит только от владельца, времени и названия.
func GenerateICS(entry *domain.ScheduleEntry, stamp time.Time, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Vaflel//schedule-parser//RU")

	for _, day := range entry.Days {
		for _, lesson := range day.Lessons {
			if lesson.IsBreak() {
				continue
			}

			uid := uuid.NewSHA1(icsNamespace, []byte(fmt.Sprintf("%s|%s|%s|%s",
				entry.Name, lesson.Group, lesson.Time.Start.Format(time.RFC3339), lesson.Name)))

			event := cal.AddEvent(uid.String())
			event.SetDtStampTime(stamp)
			event.SetStartAt(lesson.Time.Start)
			event.SetEndAt(lesson.Time.End)
			event.SetSummary(lesson.Name)
			if rooms := lessonRooms(lesson); rooms != "" {
				event.SetLocation(rooms)
			}
			event.SetDescription(lessonDescription(lesson))
		}
	}

	return cal.SerializeTo(w)
}

// lessonRooms перечисляет различные кабинеты подгрупп
func lessonRooms(lesson domain.Lesson) string {
	var rooms []string
	seen := make(map[string]bool)
	for _, subGroup := range lesson.SubGroups {
		if subGroup.Room == "" || subGroup.Room == domain.UnknownRoom || seen[subGroup.Room] {
			continue
		}
		seen[subGroup.Room] = true
		rooms = append(rooms, subGroup.Room)
	}
	return strings.Join(rooms, ", ")
}

// lessonDescription тип занятия, группа и преподаватели подгрупп
func lessonDescription(lesson domain.Lesson) string {
	lines := []string{fmt.Sprintf("Тип: %s", lesson.Type)}
	if lesson.Group != "" {
		lines = append(lines, fmt.Sprintf("Группа: %s", lesson.Group))
	}
	for _, subGroup := range lesson.SubGroups {
		if subGroup.IsInconsistent() {
			continue
		}
		lines = append(lines, fmt.Sprintf("Подгруппа %d: %s", subGroup.Number, subGroup.Teacher))
	}
	return strings.Join(lines, "\n")
}
