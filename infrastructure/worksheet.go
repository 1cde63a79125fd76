package infrastructure

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/Vaflel/schedule-parser/domain"
)

// CellPos координата ячейки (с нуля)
type CellPos struct {
	Row int
	Col int
}

// CellRange прямоугольник ячеек, End не включается
type CellRange struct {
	Start CellPos
	End   CellPos
}

// Rows количество строк в прямоугольнике
func (r CellRange) Rows() int {
	return r.End.Row - r.Start.Row
}

// WorkSheet минимальный доступ к листу, за которым прячется библиотека чтения файла
type WorkSheet interface {
	// CellText возвращает нормализованный текст ячейки; false, если ячейка пуста
	CellText(row, col int) (string, bool)
	// MergeExtent возвращает объединение, начинающееся в ячейке, или её саму как 1×1
	MergeExtent(row, col int) CellRange
	// Bounds возвращает число строк и колонок листа
	Bounds() (rows, cols int)
}

var (
	reLineBreaks = regexp.MustCompile(`[\r\n]+`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// NormalizeCellText схлопывает переводы строк и пробелы и обрезает края.
// Применяется ко всему читаемому тексту, на ней держатся все регулярные выражения разбора.
func NormalizeCellText(text string) string {
	text = reLineBreaks.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var (
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
)

// OpenWorkSheet определяет формат по сигнатуре и открывает первый лист.
// Основной формат двоичный .xls, .xlsx принимается через тот же интерфейс.
func OpenWorkSheet(data []byte, charset string) (WorkSheet, error) {
	switch {
	case bytes.HasPrefix(data, oleMagic):
		return openXLSSheet(data, charset)
	case bytes.HasPrefix(data, zipMagic):
		return openXLSXSheet(data)
	default:
		return nil, domain.NewBadXLSError(errors.New("неизвестный формат файла"))
	}
}

// gridSheet лист в памяти: сырые строки и список объединений
type gridSheet struct {
	rows   [][]string
	cols   int
	merges map[CellPos]CellRange
}

// NewGridSheet собирает лист из строк и объединений.
// Обе реализации файлов сводятся к нему, тесты строят его напрямую.
func NewGridSheet(rows [][]string, merges []CellRange) WorkSheet {
	sheet := &gridSheet{
		rows:   rows,
		merges: make(map[CellPos]CellRange, len(merges)),
	}
	for _, row := range rows {
		if len(row) > sheet.cols {
			sheet.cols = len(row)
		}
	}
	for _, merge := range merges {
		sheet.merges[merge.Start] = merge
	}
	return sheet
}

func (s *gridSheet) CellText(row, col int) (string, bool) {
	if row < 0 || row >= len(s.rows) || col < 0 || col >= len(s.rows[row]) {
		return "", false
	}
	text := NormalizeCellText(s.rows[row][col])
	if text == "" {
		return "", false
	}
	return text, true
}

func (s *gridSheet) MergeExtent(row, col int) CellRange {
	start := CellPos{Row: row, Col: col}
	if merge, ok := s.merges[start]; ok {
		return merge
	}
	return CellRange{
		Start: start,
		End:   CellPos{Row: row + 1, Col: col + 1},
	}
}

func (s *gridSheet) Bounds() (int, int) {
	return len(s.rows), s.cols
}
