package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.September, 1, hour, minute, 0, 0, time.UTC)
}

func lessonAt(name string, first, last int, start, end time.Time, subGroups ...SubGroup) Lesson {
	return Lesson{
		Type:      LessonDefault,
		Range:     &[2]int{first, last},
		Name:      name,
		Time:      LessonBoundaries{Start: start, End: end},
		SubGroups: subGroups,
	}
}

func weekWith(lessons ...Lesson) []Day {
	days := []Day{
		{Name: "Понедельник", Date: at(0, 0), Lessons: lessons},
		{Name: "Вторник", Date: at(0, 0).AddDate(0, 0, 1), Lessons: []Lesson{}},
	}
	return days
}

func TestBuildTeachers_CopiesLessonWithGroup(t *testing.T) {
	math := lessonAt("Математика", 1, 1, at(4, 30), at(6, 0), NewSubGroup(1, "Иванов А.Б."))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(math)},
	}

	teachers := BuildTeachers(groups)

	require.Len(t, teachers, 1)
	teacher := teachers["Иванов А.Б."]
	require.NotNil(t, teacher)
	assert.Equal(t, "Иванов А.Б.", teacher.Name)
	require.Len(t, teacher.Days, 2)
	assert.Equal(t, "Вторник", teacher.Days[1].Name)
	assert.Empty(t, teacher.Days[1].Lessons)

	require.Len(t, teacher.Days[0].Lessons, 1)
	copied := teacher.Days[0].Lessons[0]
	assert.Equal(t, "ИС-21", copied.Group)
	assert.Equal(t, "Математика", copied.Name)

	// исходный урок группы не меняется
	assert.Empty(t, groups["ИС-21"].Days[0].Lessons[0].Group)
}

func TestBuildTeachers_SkipsBreaksAndInconsistentSubGroups(t *testing.T) {
	first := lessonAt("Физика", 1, 1, at(4, 30), at(6, 0),
		NewSubGroup(1, "Петров В.Г."), NewInconsistentSubGroup(2))
	second := lessonAt("Химия", 2, 2, at(6, 10), at(7, 40))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(first, NewBreak(first.Time.End, second.Time.Start), second)},
	}

	teachers := BuildTeachers(groups)

	require.Len(t, teachers, 1)
	lessons := teachers["Петров В.Г."].Days[0].Lessons
	require.Len(t, lessons, 1)
	assert.Equal(t, "Физика", lessons[0].Name)
}

func TestBuildTeachers_SameTeacherOnBothSubGroupsOnce(t *testing.T) {
	lab := lessonAt("Информатика", 1, 1, at(4, 30), at(6, 0),
		NewSubGroup(1, "Иванов А.Б."), NewSubGroup(2, "Иванов А.Б."))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(lab)},
	}

	teachers := BuildTeachers(groups)

	require.Len(t, teachers, 1)
	lessons := teachers["Иванов А.Б."].Days[0].Lessons
	require.Len(t, lessons, 1, "одна копия на урок, а не на подгруппу")
	assert.Equal(t, "ИС-21", lessons[0].Group)
	assert.Len(t, lessons[0].SubGroups, 2, "подгруппы урока сохраняются")
}

func TestBuildTeachers_SortsByRangeEnd(t *testing.T) {
	late := lessonAt("Физика", 3, 4, at(8, 0), at(11, 10), NewSubGroup(1, "Иванов А.Б."))
	early := lessonAt("Математика", 1, 1, at(4, 30), at(6, 0), NewSubGroup(1, "Иванов А.Б."))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(late)},
		"ПР-22": {Name: "ПР-22", Days: weekWith(early)},
	}

	teachers := BuildTeachers(groups)

	lessons := teachers["Иванов А.Б."].Days[0].Lessons
	require.Len(t, lessons, 2)
	assert.Equal(t, "Математика", lessons[0].Name)
	assert.Equal(t, "ПР-22", lessons[0].Group)
	assert.Equal(t, "Физика", lessons[1].Name)
	assert.Equal(t, "ИС-21", lessons[1].Group)
}

func TestBuildTeachers_Empty(t *testing.T) {
	assert.Empty(t, BuildTeachers(map[string]*ScheduleEntry{}))
}
