// Package web предоставляет функции для отображения расписания группы или преподавателя
package web

import (
	"bytes"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Vaflel/schedule-parser/domain"
)

// Slot строка таблицы: одна пара по всем дням недели
type Slot struct {
	Number string // Номер пары или "доп." для занятий без номера
	Days   []Cell // Занятия по дням недели для этой пары
}

// Cell занятие в клетке таблицы
type Cell struct {
	Name         string // Название занятия
	Type         string // Вид занятия, пусто для обычной пары
	Time         string // "08:30–10:00"
	Details      []string
	Inconsistent bool // Есть несогласованная подгруппа
}

// TemplateData содержит все данные, необходимые для отображения недели
type TemplateData struct {
	Title   string
	Days    []DayHeader
	Slots   []Slot
	Streets []string
}

// DayHeader заголовок колонки дня
type DayHeader struct {
	Name string
	Date string
}

// reportTemplate таблица недели, клетки с несогласованными подгруппами выделены цветом
const reportTemplate = `
<h2>{{.Title}}</h2>
{{range .Streets}}<p class="street">{{.}}</p>{{end}}
<table class="schedule-table">
	<tr>
		<th>№</th>
		{{range .Days}}<th>{{.Name}}<br>{{.Date}}</th>{{end}}
	</tr>
	{{range .Slots}}
	<tr>
		<td>{{.Number}}</td>
		{{range .Days}}
		<td {{if .Inconsistent}}class="inconsistent" style="background-color: #ffcccc;"{{end}}>
			{{if .Name}}<b>{{.Name}}</b>{{if .Type}} <i>{{.Type}}</i>{{end}}<br>{{.Time}}{{range .Details}}<br>{{.}}{{end}}{{else}}-{{end}}
		</td>
		{{end}}
	</tr>
	{{end}}
</table>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// RenderSchedule генерирует HTML-таблицу недели; время показывается в поясе loc
func RenderSchedule(entry *domain.ScheduleEntry, loc *time.Location) (string, error) {
	data := prepareTemplateData(entry, loc)

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// prepareTemplateData раскладывает занятия по номерам пар и дням
func prepareTemplateData(entry *domain.ScheduleEntry, loc *time.Location) TemplateData {
	if loc == nil {
		loc = time.UTC
	}

	data := TemplateData{Title: entry.Name}

	// ключ: номер первой пары, 0 для занятий без номера
	cells := make(map[int][]Cell)
	for dayIndex, day := range entry.Days {
		header := DayHeader{Name: day.Name, Date: "Не указано"}
		if !day.Date.IsZero() {
			header.Date = day.Date.Format("02.01.2006")
		}
		data.Days = append(data.Days, header)
		if day.Street != "" {
			data.Streets = append(data.Streets, day.Name+": "+day.Street)
		}

		for _, lesson := range day.Lessons {
			if lesson.IsBreak() {
				continue
			}
			key := 0
			if lesson.Range != nil {
				key = lesson.Range[0]
			}
			if _, ok := cells[key]; !ok {
				cells[key] = make([]Cell, len(entry.Days))
			}
			cells[key][dayIndex] = newCell(lesson, loc)
		}
	}

	keys := make([]int, 0, len(cells))
	for key := range cells {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	for _, key := range keys {
		number := "доп."
		if key > 0 {
			number = strconv.Itoa(key)
		}
		data.Slots = append(data.Slots, Slot{Number: number, Days: cells[key]})
	}

	return data
}

// newCell подписывает клетку: группа для преподавателя, преподаватели и кабинеты подгрупп
func newCell(lesson domain.Lesson, loc *time.Location) Cell {
	cell := Cell{
		Name: lesson.Name,
		Time: lesson.Time.Start.In(loc).Format("15:04") + "–" + lesson.Time.End.In(loc).Format("15:04"),
	}
	if lesson.Type != domain.LessonDefault {
		cell.Type = strings.ToLower(string(lesson.Type))
	}
	if lesson.Group != "" {
		cell.Details = append(cell.Details, "Группа: "+lesson.Group)
	}
	for _, subGroup := range lesson.SubGroups {
		if subGroup.IsInconsistent() {
			cell.Inconsistent = true
			cell.Details = append(cell.Details, "ауд. "+subGroup.Room+" (?)")
			continue
		}
		cell.Details = append(cell.Details, subGroup.Teacher+", ауд. "+subGroup.Room)
	}
	return cell
}
