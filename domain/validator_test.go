package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRoom(subGroup SubGroup, room string) SubGroup {
	subGroup.Room = room
	return subGroup
}

func TestValidator_CleanSchedule(t *testing.T) {
	math := lessonAt("Математика", 1, 1, at(4, 30), at(6, 0), withRoom(NewSubGroup(1, "Иванов А.Б."), "101"))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(math)},
	}
	schedule := &ParsedSchedule{Groups: groups, Teachers: BuildTeachers(groups)}

	violations := NewValidator(schedule).ValidateSchedule()

	assert.Empty(t, violations)
}

func TestValidator_GroupAnomalies(t *testing.T) {
	lab := lessonAt("Информатика", 1, 1, at(4, 30), at(6, 0),
		withRoom(NewSubGroup(1, "Иванов А.Б."), UnknownRoom),
		withRoom(NewInconsistentSubGroup(2), UnknownRoom))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(lab)},
	}
	schedule := &ParsedSchedule{Groups: groups, Teachers: map[string]*ScheduleEntry{}}

	violations := NewValidator(schedule).ValidateSchedule()

	require.Len(t, violations, 2)
	assert.Equal(t, ViolationInconsistentSubGroup, violations[0].Type)
	assert.Equal(t, ViolationUnknownRoom, violations[1].Type)
	assert.Equal(t, "ИС-21", violations[0].Entity)
	assert.Equal(t, "Информатика", violations[0].Lesson)
}

func TestValidator_TeacherOverlap(t *testing.T) {
	math := lessonAt("Математика", 1, 1, at(4, 30), at(6, 0), withRoom(NewSubGroup(1, "Иванов А.Б."), "101"))
	physics := lessonAt("Физика", 1, 1, at(4, 30), at(6, 0), withRoom(NewSubGroup(1, "Иванов А.Б."), "202"))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(math)},
		"ПР-22": {Name: "ПР-22", Days: weekWith(physics)},
	}
	schedule := &ParsedSchedule{Groups: groups, Teachers: BuildTeachers(groups)}

	violations := NewValidator(schedule).ValidateSchedule()

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationTeacherOverlap, violations[0].Type)
	assert.Equal(t, "Иванов А.Б.", violations[0].Entity)
	assert.Equal(t, "Математика", violations[0].Lesson)
	assert.Equal(t, "ПР-22", violations[0].Detail)
}

func TestValidator_SharedStreamIsNotOverlap(t *testing.T) {
	stream := lessonAt("История", 1, 1, at(4, 30), at(6, 0), withRoom(NewSubGroup(1, "Козлов И.И."), "301"))
	groups := map[string]*ScheduleEntry{
		"ИС-21": {Name: "ИС-21", Days: weekWith(stream)},
		"ПР-22": {Name: "ПР-22", Days: weekWith(stream.Clone())},
	}
	schedule := &ParsedSchedule{Groups: groups, Teachers: BuildTeachers(groups)}

	assert.Empty(t, NewValidator(schedule).ValidateSchedule())
}
