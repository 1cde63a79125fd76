package infrastructure

import (
	"regexp"
	"strings"
	"time"

	"github.com/Vaflel/schedule-parser/domain"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// daysInWeek учебная неделя с понедельника по субботу
const daysInWeek = 6

var weekdayNames = []string{"понедельник", "вторник", "среда", "четверг", "пятница", "суббота"}

var reDayDate = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`)

// dayMarker строка начала дня недели
type dayMarker struct {
	Row  int
	Name string
	Date time.Time
}

// groupMarker колонка группы в строке заголовка
type groupMarker struct {
	Col  int
	Name string
}

// scanSkeleton находит строки дней недели в колонке 0 и колонки групп в строке над первым днём
func (p *sheetParser) scanSkeleton() ([]dayMarker, []groupMarker, error) {
	rows, cols := p.sheet.Bounds()
	if rows == 0 || cols == 0 {
		return nil, nil, domain.NewUnknownWorkSheetRangeError()
	}

	var days []dayMarker
	var groups []groupMarker
	var known []bool

	for row := 0; row < rows && len(days) < daysInWeek; row++ {
		text, ok := p.sheet.CellText(row, 0)
		if !ok {
			continue
		}

		name, dateText, ok := splitDayLabel(text)
		if !ok {
			continue
		}

		if len(days) == 0 && row > 0 {
			groups = p.scanGroups(row-1, cols)
		}

		marker := dayMarker{Row: row, Name: name}
		date, err := parseDayDate(dateText)
		if err != nil {
			p.logger.Debug("дата дня не распознана",
				zap.Int("row", row),
				zap.String("text", text))
		} else {
			marker.Date = date
		}
		days = append(days, marker)
		known = append(known, err == nil)
	}

	p.fillMissingDates(days, known)
	return days, groups, nil
}

// scanGroups собирает названия групп правее колонки времени
func (p *sheetParser) scanGroups(row, cols int) []groupMarker {
	var groups []groupMarker
	for col := p.timeColumn + 1; col < cols; col++ {
		text, ok := p.sheet.CellText(row, col)
		if !ok {
			continue
		}
		groups = append(groups, groupMarker{
			Col:  col,
			Name: strings.ReplaceAll(text, " ", ""),
		})
	}
	return groups
}

// splitDayLabel делит "Понедельник 01.09.2025" на название дня и строку даты.
// Возвращает false, если первое слово не является днём недели.
func splitDayLabel(text string) (string, string, bool) {
	label, dateText, _ := strings.Cut(text, " ")
	lower := strings.ToLower(label)
	for _, weekday := range weekdayNames {
		if lower == weekday {
			return cases.Title(language.Russian).String(lower), strings.TrimSpace(dateText), true
		}
	}
	return "", "", false
}

// parseDayDate ищет дату вида д.м.гггг в строке
func parseDayDate(text string) (time.Time, error) {
	found := reDayDate.FindString(text)
	if found == "" {
		found = text
	}
	return time.Parse("2.1.2006", found)
}

// fillMissingDates восстанавливает нераспознанные даты от соседних дней:
// сначала вперёд (предыдущий + 1 день), затем назад (следующий − 1 день).
// Если ни одна дата не распознана, даты остаются нулевыми.
func (p *sheetParser) fillMissingDates(days []dayMarker, known []bool) {
	for i := 1; i < len(days); i++ {
		if !known[i] && known[i-1] {
			days[i].Date = days[i-1].Date.AddDate(0, 0, 1)
			known[i] = true
			p.logger.Debug("дата дня восстановлена по предыдущему", zap.String("day", days[i].Name))
		}
	}
	for i := len(days) - 2; i >= 0; i-- {
		if !known[i] && known[i+1] {
			days[i].Date = days[i+1].Date.AddDate(0, 0, -1)
			known[i] = true
			p.logger.Debug("дата дня восстановлена по следующему", zap.String("day", days[i].Name))
		}
	}
	for i, ok := range known {
		if !ok {
			p.logger.Warn("не удалось определить дату дня", zap.String("day", days[i].Name))
		}
	}
}
