package domain

import "time"

// LessonType тип занятия в транспортном виде (SCREAMING_SNAKE_CASE)
type LessonType string

const (
	LessonDefault              LessonType = "DEFAULT"
	LessonAdditional           LessonType = "ADDITIONAL"
	LessonBreak                LessonType = "BREAK"
	LessonConsultation         LessonType = "CONSULTATION"
	LessonIndependentWork      LessonType = "INDEPENDENT_WORK"
	LessonExam                 LessonType = "EXAM"
	LessonExamWithGrade        LessonType = "EXAM_WITH_GRADE"
	LessonExamDefault          LessonType = "EXAM_DEFAULT"
	LessonCourseProject        LessonType = "COURSE_PROJECT"
	LessonCourseProjectDefense LessonType = "COURSE_PROJECT_DEFENSE"
	LessonPractice             LessonType = "PRACTICE"
)

// UnknownRoom ставится подгруппе, если в колонке кабинетов ничего не нашлось
const UnknownRoom = "??"

// SubGroupStatus различает распознанную подгруппу и метку несогласованности расписания
type SubGroupStatus string

const (
	SubGroupResolved     SubGroupStatus = "RESOLVED"
	SubGroupInconsistent SubGroupStatus = "INCONSISTENT"
)

// SubGroup описывает одну подгруппу занятия.
// Number 1 или 2 (больше только для синтетических подгрупп с лишними кабинетами).
// У несогласованной подгруппы преподавателя нет никогда.
type SubGroup struct {
	Number  int            `json:"number"`
	Status  SubGroupStatus `json:"status"`
	Teacher string         `json:"teacher,omitempty"`
	Room    string         `json:"room,omitempty"`
}

// NewSubGroup создаёт распознанную подгруппу с преподавателем
func NewSubGroup(number int, teacher string) SubGroup {
	return SubGroup{
		Number:  number,
		Status:  SubGroupResolved,
		Teacher: teacher,
	}
}

// NewInconsistentSubGroup создаёт подгруппу-заглушку на месте, которое не удалось заполнить
func NewInconsistentSubGroup(number int) SubGroup {
	return SubGroup{
		Number: number,
		Status: SubGroupInconsistent,
	}
}

// IsInconsistent сообщает, что подгруппа является меткой несогласованности
func (s SubGroup) IsInconsistent() bool {
	return s.Status == SubGroupInconsistent
}

// LessonBoundaries промежуток времени занятия
type LessonBoundaries struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration длительность промежутка
func (b LessonBoundaries) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Overlaps сообщает, пересекаются ли два промежутка
func (b LessonBoundaries) Overlaps(other LessonBoundaries) bool {
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

// Lesson одно занятие или синтетический перерыв.
// Range заполнен только когда у слотов есть номера пар, Group только в расписании преподавателя.
type Lesson struct {
	Type      LessonType       `json:"type"`
	Range     *[2]int          `json:"range,omitempty"`
	Name      string           `json:"name,omitempty"`
	Time      LessonBoundaries `json:"time"`
	SubGroups []SubGroup       `json:"subGroups"`
	Group     string           `json:"group,omitempty"`
}

// NewBreak создаёт перерыв между двумя занятиями
func NewBreak(start, end time.Time) Lesson {
	return Lesson{
		Type:      LessonBreak,
		Time:      LessonBoundaries{Start: start, End: end},
		SubGroups: []SubGroup{},
	}
}

// IsBreak сообщает, что занятие синтетический перерыв
func (l Lesson) IsBreak() bool {
	return l.Type == LessonBreak
}

// Clone возвращает копию без общих срезов и указателей
func (l Lesson) Clone() Lesson {
	c := l
	if l.Range != nil {
		r := *l.Range
		c.Range = &r
	}
	c.SubGroups = make([]SubGroup, len(l.SubGroups))
	copy(c.SubGroups, l.SubGroups)
	return c
}

// Day один учебный день сущности (группы или преподавателя)
type Day struct {
	Name    string    `json:"name"`
	Street  string    `json:"street,omitempty"`
	Date    time.Time `json:"date"`
	Lessons []Lesson  `json:"lessons"`
}

// CloneEmpty возвращает день с теми же названием, адресом и датой, но без занятий
func (d Day) CloneEmpty() Day {
	return Day{
		Name:    d.Name,
		Street:  d.Street,
		Date:    d.Date,
		Lessons: []Lesson{},
	}
}

// DateString возвращает дату в формате "2006-01-02"
func (d Day) DateString() string {
	return d.Date.Format("2006-01-02")
}

// ScheduleEntry расписание одной группы или одного преподавателя на неделю
type ScheduleEntry struct {
	Name string `json:"name"`
	Days []Day  `json:"days"`
}

// ParsedSchedule результат разбора одного файла расписания
type ParsedSchedule struct {
	Groups   map[string]*ScheduleEntry `json:"groups"`
	Teachers map[string]*ScheduleEntry `json:"teachers"`
}

// Group возвращает расписание группы по имени
func (s *ParsedSchedule) Group(name string) (*ScheduleEntry, bool) {
	entry, ok := s.Groups[name]
	return entry, ok
}

// Teacher возвращает расписание преподавателя по имени
func (s *ParsedSchedule) Teacher(name string) (*ScheduleEntry, bool) {
	entry, ok := s.Teachers[name]
	return entry, ok
}
