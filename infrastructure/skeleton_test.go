package infrastructure

import (
	"testing"
	"time"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSheetParser(t *testing.T, sheet WorkSheet) *sheetParser {
	t.Helper()
	return &sheetParser{
		sheet:      sheet,
		timeColumn: DefaultTimeColumn,
		logger:     zaptest.NewLogger(t),
	}
}

func date(day int) time.Time {
	return time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC)
}

func TestSplitDayLabel(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantDate string
		wantOK   bool
	}{
		{"Понедельник 01.09.2025", "Понедельник", "01.09.2025", true},
		{"ВТОРНИК 02.09.2025", "Вторник", "02.09.2025", true},
		{"суббота", "Суббота", "", true},
		{"Итого часов", "", "", false},
		{"Воскресенье 07.09.2025", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, dateText, ok := splitDayLabel(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDate, dateText)
		})
	}
}

func TestParseDayDate(t *testing.T) {
	got, err := parseDayDate("01.09.2025")
	require.NoError(t, err)
	assert.Equal(t, date(1), got)

	got, err = parseDayDate("(3.9.2025 г.)")
	require.NoError(t, err)
	assert.Equal(t, date(3), got)

	_, err = parseDayDate("")
	assert.Error(t, err)
	_, err = parseDayDate("32.13.2025")
	assert.Error(t, err)
}

func TestScanSkeleton(t *testing.T) {
	sheet := NewGridSheet([][]string{
		{"Расписание занятий"},
		{"", "", "ИС - 21", "", "ПР-22"},
		{"Понедельник 01.09.2025", "1 пара 8.30-10.00"},
		{"Вторник", "1 пара 8.30-10.00"},
		{"Среда 03.09.2025", "1 пара 8.30-10.00"},
		{"Итого", ""},
	}, nil)

	days, groups, err := newTestSheetParser(t, sheet).scanSkeleton()
	require.NoError(t, err)

	assert.Equal(t, []groupMarker{{Col: 2, Name: "ИС-21"}, {Col: 4, Name: "ПР-22"}}, groups)
	require.Len(t, days, 3)
	assert.Equal(t, dayMarker{Row: 2, Name: "Понедельник", Date: date(1)}, days[0])
	assert.Equal(t, dayMarker{Row: 3, Name: "Вторник", Date: date(2)}, days[1])
	assert.Equal(t, dayMarker{Row: 4, Name: "Среда", Date: date(3)}, days[2])
}

func TestScanSkeleton_StopsAfterSixDays(t *testing.T) {
	rows := [][]string{{"", "", "ИС-21"}}
	for _, name := range []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Понедельник"} {
		rows = append(rows, []string{name + " 01.09.2025"})
	}

	days, _, err := newTestSheetParser(t, NewGridSheet(rows, nil)).scanSkeleton()
	require.NoError(t, err)
	assert.Len(t, days, daysInWeek)
}

func TestScanSkeleton_EmptySheet(t *testing.T) {
	_, _, err := newTestSheetParser(t, NewGridSheet(nil, nil)).scanSkeleton()
	assert.ErrorIs(t, err, domain.ErrUnknownWorkSheetRange)
}

func TestFillMissingDates(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		known []bool
		want  []time.Time
	}{
		{
			name:  "вперёд от предыдущего",
			dates: []time.Time{date(1), {}, {}},
			known: []bool{true, false, false},
			want:  []time.Time{date(1), date(2), date(3)},
		},
		{
			name:  "назад от следующего",
			dates: []time.Time{{}, {}, date(3)},
			known: []bool{false, false, true},
			want:  []time.Time{date(1), date(2), date(3)},
		},
		{
			name:  "ни одной даты",
			dates: []time.Time{{}, {}},
			known: []bool{false, false},
			want:  []time.Time{{}, {}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := make([]dayMarker, len(tt.dates))
			for i, d := range tt.dates {
				days[i] = dayMarker{Row: i, Name: weekdayNames[i], Date: d}
			}

			newTestSheetParser(t, NewGridSheet(nil, nil)).fillMissingDates(days, tt.known)

			for i, want := range tt.want {
				assert.Equal(t, want, days[i].Date, "день %d", i)
			}
		})
	}
}
