package infrastructure

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/agext/levenshtein"
)

// teacherPattern фамилия, два инициала и номер подгруппы в скобках.
// Инициалы пишутся слитно с фамилией ("ИвановАБ") или через пробел с точкой ("Иванов А.Б.", "Иванов А Б.").
// Через пробел и без точек ("Иванов АБ") только перед номером подгруппы, иначе это аббревиатура из названия: "Разработка ПО".
const teacherPattern = `([А-ЯЁ][а-яё]+(?:-[А-ЯЁ][а-яё]+)?)(?:` +
	`([А-ЯЁ])\.?([А-ЯЁ])\.?(?:\s?\((\d)\))?` +
	`|\s([А-ЯЁ])\.\s?([А-ЯЁ])\.?(?:\s?\((\d)\))?` +
	`|\s([А-ЯЁ])\s?([А-ЯЁ])(?:\.(?:\s?\((\d)\))?|\s?\((\d)\))` +
	`)`

var (
	reTeacher = regexp.MustCompile(teacherPattern)
	// одна или две записи подряд, каждая заканчивается разделителем, знаком препинания или концом строки
	reTeachers = regexp.MustCompile(`(?:` + teacherPattern + `(?:[,\s]+|[^а-яёА-ЯЁ0-9\s,]|$)){1,2}`)
)

// guessMinLength текст короче не сравнивается со словарём типов
const guessMinLength = 4

// guessMaxDistance наибольшее расстояние Левенштейна для угадывания типа
const guessMaxDistance = 4

// lessonTypeWords словарь особых видов занятий
var lessonTypeWords = []struct {
	word       string
	lessonType domain.LessonType
}{
	{"консультация", domain.LessonConsultation},
	{"самостоятельная работа", domain.LessonIndependentWork},
	{"зачет", domain.LessonExam},
	{"зачет с оценкой", domain.LessonExamWithGrade},
	{"дифференцированный зачет", domain.LessonExamWithGrade},
	{"экзамен", domain.LessonExamDefault},
	{"курсовой проект", domain.LessonCourseProject},
	{"защита курсового проекта", domain.LessonCourseProjectDefense},
	{"практика", domain.LessonPractice},
}

// teacherRecord преподаватель и номер подгруппы из текста (0, если не указан)
type teacherRecord struct {
	number  int
	teacher string
}

// lessonName результат разбора текста ячейки занятия
type lessonName struct {
	Title     string
	SubGroups []domain.SubGroup
	Type      domain.LessonType // пусто, если тип не угадан
	Extra     string            // текст после преподавателей, по нему угадывается тип
}

// decomposeLessonName отделяет название занятия от преподавателей и подгрупп и угадывает особый тип
func decomposeLessonName(text string) lessonName {
	text = NormalizeCellText(text)

	loc := reTeachers.FindStringIndex(text)
	if loc == nil {
		return lessonName{Title: text, SubGroups: []domain.SubGroup{}}
	}

	before := strings.TrimSpace(text[:loc[0]])
	after := strings.TrimSpace(text[loc[1]:])

	result := lessonName{
		Title:     before,
		Extra:     after,
		SubGroups: repairSubGroups(parseTeacherRecords(text[loc[0]:loc[1]])),
	}
	// преподаватели записаны перед названием: "ИвановАБ(1), ПетровВГ(2) Информатика".
	// Тогда хвост и есть название, тип по нему не угадываем.
	if result.Title == "" && !reTeacher.MatchString(after) {
		result.Title = trimPunctuation(after)
		result.Extra = ""
	}
	result.Type = guessLessonType(result.Extra)

	return result
}

// parseTeacherRecords разбирает найденный фрагмент на записи "Фамилия И.О." с номерами подгрупп
func parseTeacherRecords(span string) []teacherRecord {
	var records []teacherRecord
	for _, m := range reTeacher.FindAllStringSubmatch(span, 2) {
		// у каждого варианта записи свои группы, берём заполненные
		var initials []string
		number := 0
		for _, group := range m[2:] {
			switch {
			case group == "":
			case group[0] >= '0' && group[0] <= '9':
				number, _ = strconv.Atoi(group)
			default:
				initials = append(initials, group)
			}
		}
		if len(initials) < 2 {
			continue
		}
		records = append(records, teacherRecord{
			number:  number,
			teacher: fmt.Sprintf("%s %s.%s.", m[1], initials[0], initials[1]),
		})
	}
	return records
}

// repairSubGroups нормализует номера подгрупп:
// одна запись без номера становится подгруппой 1, у одной записи с номером парная подгруппа помечается несогласованной;
// у двух записей недостающий номер дополняется до пары, порядок по возрастанию.
func repairSubGroups(records []teacherRecord) []domain.SubGroup {
	switch len(records) {
	case 0:
		return []domain.SubGroup{}
	case 1:
		record := records[0]
		if record.number == 0 {
			return []domain.SubGroup{domain.NewSubGroup(1, record.teacher)}
		}
		subGroups := []domain.SubGroup{
			domain.NewSubGroup(record.number, record.teacher),
			domain.NewInconsistentSubGroup(otherSubGroup(record.number)),
		}
		sortSubGroups(subGroups)
		return subGroups
	}

	first, second := records[0], records[1]
	switch {
	case first.number == 0 && second.number == 0:
		first.number, second.number = 1, 2
	case first.number == 0:
		first.number = otherSubGroup(second.number)
	case second.number == 0 || second.number == first.number:
		second.number = otherSubGroup(first.number)
	}

	subGroups := []domain.SubGroup{
		domain.NewSubGroup(first.number, first.teacher),
		domain.NewSubGroup(second.number, second.teacher),
	}
	sortSubGroups(subGroups)
	return subGroups
}

// otherSubGroup номер парной подгруппы
func otherSubGroup(number int) int {
	if number == 1 {
		return 2
	}
	return 1
}

func sortSubGroups(subGroups []domain.SubGroup) {
	sort.SliceStable(subGroups, func(i, j int) bool {
		return subGroups[i].Number < subGroups[j].Number
	})
}

// guessLessonType сравнивает текст с словарём особых видов занятий
func guessLessonType(extra string) domain.LessonType {
	extra = strings.ReplaceAll(strings.ToLower(trimPunctuation(extra)), "ё", "е")
	if utf8.RuneCountInString(extra) <= guessMinLength {
		return ""
	}

	best, bestDistance := domain.LessonType(""), guessMaxDistance+1
	for _, entry := range lessonTypeWords {
		distance := levenshtein.Distance(extra, entry.word, nil)
		if distance < bestDistance {
			best, bestDistance = entry.lessonType, distance
		}
	}
	return best
}

func trimPunctuation(text string) string {
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}
