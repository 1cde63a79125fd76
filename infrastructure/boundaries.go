package infrastructure

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Vaflel/schedule-parser/domain"
)

// SheetClockOffset вычитается из времени пар при переводе в момент времени.
// Так таблица согласует свои часы с хранимой датой; значение сохранено как есть.
const SheetClockOffset = 4 * time.Hour

var (
	reSlotTime  = regexp.MustCompile(`(\d{1,2})\.(\d{2})\s*-\s*(\d{1,2})\.(\d{2})`)
	reSlotIndex = regexp.MustCompile(`^(\d+)`)
)

// lessonSlot одна пара (или дополнительное занятие) из колонки времени
type lessonSlot struct {
	Row      int
	Time     domain.LessonBoundaries
	Type     domain.LessonType // LessonDefault для нумерованной пары, иначе LessonAdditional
	Index    int
	HasIndex bool
	Extent   CellRange
}

// lessonSlots читает колонку времени в строках дня [day.Row, endRow)
func (p *sheetParser) lessonSlots(day dayMarker, endRow int) ([]lessonSlot, error) {
	var slots []lessonSlot

	for row := day.Row; row < endRow; row++ {
		text, ok := p.sheet.CellText(row, p.timeColumn)
		if !ok {
			continue
		}

		matches := reSlotTime.FindStringSubmatch(text)
		if matches == nil {
			return nil, domain.NewLessonBoundariesError(row, p.timeColumn, text)
		}

		slot := lessonSlot{
			Row:  row,
			Type: domain.LessonAdditional,
			Time: domain.LessonBoundaries{
				Start: slotInstant(day.Date, matches[1], matches[2]),
				End:   slotInstant(day.Date, matches[3], matches[4]),
			},
			Extent: p.sheet.MergeExtent(row, p.timeColumn),
		}

		if strings.Contains(strings.ToLower(text), "пара") {
			slot.Type = domain.LessonDefault
			if index := reSlotIndex.FindString(text); index != "" {
				slot.Index, _ = strconv.Atoi(index)
				slot.HasIndex = true
			}
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// slotInstant переводит часы и минуты ячейки в момент времени дня
func slotInstant(date time.Time, hours, minutes string) time.Time {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	return date.
		Add(time.Duration(h) * time.Hour).
		Add(time.Duration(m) * time.Minute).
		Add(-SheetClockOffset)
}
