package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode машинный код ошибки разбора
type ErrorCode string

const (
	CodeBadXLS                ErrorCode = "BAD_XLS"
	CodeNoWorkSheets          ErrorCode = "NO_WORK_SHEETS"
	CodeUnknownWorkSheetRange ErrorCode = "UNKNOWN_WORK_SHEET_RANGE"
	CodeLessonBoundaries      ErrorCode = "LESSON_BOUNDARIES"
	CodeLessonTimeNotFound    ErrorCode = "LESSON_TIME_NOT_FOUND"
)

// Образцы для errors.Is: сравнение идёт только по коду.
// Наружу они не возвращаются, ошибки создаются конструкторами ниже.
var (
	ErrBadXLS                = &ParseError{Code: CodeBadXLS}
	ErrNoWorkSheets          = &ParseError{Code: CodeNoWorkSheets}
	ErrUnknownWorkSheetRange = &ParseError{Code: CodeUnknownWorkSheetRange}
	ErrLessonBoundaries      = &ParseError{Code: CodeLessonBoundaries}
	ErrLessonTimeNotFound    = &ParseError{Code: CodeLessonTimeNotFound}
)

// ParseError структурная ошибка, прерывающая разбор целиком.
// Row и Col заполнены для ошибок конкретной ячейки, Text для нечитаемых границ пар.
type ParseError struct {
	Code ErrorCode
	Row  int
	Col  int
	Text string
	Err  error
}

// NewBadXLSError оборачивает ошибку декодирования файла
func NewBadXLSError(err error) *ParseError {
	return &ParseError{Code: CodeBadXLS, Err: err}
}

// NewNoWorkSheetsError в файле нет листов
func NewNoWorkSheetsError() *ParseError {
	return &ParseError{Code: CodeNoWorkSheets}
}

// NewUnknownWorkSheetRangeError у листа нет ни одной строки
func NewUnknownWorkSheetRangeError() *ParseError {
	return &ParseError{Code: CodeUnknownWorkSheetRange}
}

// NewLessonBoundariesError ячейка времени пар не соответствует формату
func NewLessonBoundariesError(row, col int, text string) *ParseError {
	return &ParseError{Code: CodeLessonBoundaries, Row: row, Col: col, Text: text}
}

// NewLessonTimeNotFoundError для ячейки занятия не нашлось подходящего слота
func NewLessonTimeNotFoundError(row, col int) *ParseError {
	return &ParseError{Code: CodeLessonTimeNotFound, Row: row, Col: col}
}

// Error возвращает человекочитаемое описание
func (e *ParseError) Error() string {
	switch e.Code {
	case CodeBadXLS:
		if e.Err != nil {
			return fmt.Sprintf("не удалось прочитать файл расписания: %v", e.Err)
		}
		return "не удалось прочитать файл расписания"
	case CodeNoWorkSheets:
		return "в файле нет ни одного листа"
	case CodeUnknownWorkSheetRange:
		return "не удалось определить границы листа"
	case CodeLessonBoundaries:
		return fmt.Sprintf("не удалось прочитать границы пары в ячейке (строка %d, колонка %d): '%s'", e.Row, e.Col, e.Text)
	case CodeLessonTimeNotFound:
		return fmt.Sprintf("не найдено время занятия для ячейки (строка %d, колонка %d)", e.Row, e.Col)
	default:
		return fmt.Sprintf("ошибка разбора расписания: %s", e.Code)
	}
}

// Unwrap возвращает исходную ошибку декодера
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по коду
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON отдаёт машинный код отдельно от текста
func (e *ParseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Code:    e.Code,
		Message: e.Error(),
	})
}
