package infrastructure

import (
	"regexp"
	"unicode/utf8"

	"github.com/Vaflel/schedule-parser/domain"
	"go.uber.org/zap"
)

// reStreet адрес другого корпуса вместо занятия: "Луначарского, 2"
var reStreet = regexp.MustCompile(`^[А-ЯЁ][а-яё]+(?:[\s-][А-ЯЁа-яё]+)*,\s*\d+[а-яА-Я]?$`)

// lessonCell результат чтения одной ячейки занятия: адрес, занятие или ничего
type lessonCell struct {
	Street string
	Lesson *domain.Lesson
}

// parseLessonCell читает ячейку группы в строке слота slots[index]
func (p *sheetParser) parseLessonCell(slots []lessonSlot, index, col int) (lessonCell, error) {
	slot := slots[index]

	text, ok := p.sheet.CellText(slot.Row, col)
	if !ok {
		return lessonCell{}, nil
	}

	if reStreet.MatchString(text) {
		return lessonCell{Street: text}, nil
	}

	name := decomposeLessonName(text)
	if name.Type == "" && utf8.RuneCountInString(name.Extra) > guessMinLength {
		p.logger.Debug("не удалось угадать тип занятия",
			zap.Int("row", slot.Row),
			zap.Int("col", col),
			zap.String("text", name.Extra))
	}

	extent := p.sheet.MergeExtent(slot.Row, col)
	last, ok := findEndSlot(slots, index, extent)
	if !ok {
		return lessonCell{}, domain.NewLessonTimeNotFoundError(slot.Row, col)
	}
	end := slots[last]

	lesson := &domain.Lesson{
		Type: slot.Type,
		Name: name.Title,
		Time: domain.LessonBoundaries{
			Start: slot.Time.Start,
			End:   end.Time.End,
		},
		SubGroups: p.assignRooms(extent, col+1, name.SubGroups),
	}
	if name.Type != "" {
		lesson.Type = name.Type
	}
	if slot.HasIndex && end.HasIndex {
		lesson.Range = &[2]int{slot.Index, end.Index}
	}

	for _, subGroup := range lesson.SubGroups {
		if subGroup.IsInconsistent() {
			p.logger.Debug("несогласованная подгруппа",
				zap.Int("row", slot.Row),
				zap.Int("col", col),
				zap.String("lesson", lesson.Name))
			break
		}
	}

	return lessonCell{Lesson: lesson}, nil
}

// findEndSlot ищет слот, у которого нижняя граница объединения совпадает с границей ячейки занятия.
// Ячейка, которая кончается внутри слота, времени не получает.
func findEndSlot(slots []lessonSlot, index int, extent CellRange) (int, bool) {
	for i := index; i < len(slots); i++ {
		if slots[i].Extent.End.Row == extent.End.Row {
			return i, true
		}
	}
	return 0, false
}
