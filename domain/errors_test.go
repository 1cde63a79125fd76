package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_IsByCode(t *testing.T) {
	err := fmt.Errorf("файл расписания: %w", NewLessonBoundariesError(3, 1, "утро"))

	assert.ErrorIs(t, err, ErrLessonBoundaries)
	assert.NotErrorIs(t, err, ErrLessonTimeNotFound)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Row)
	assert.Equal(t, 1, parseErr.Col)
	assert.Equal(t, "утро", parseErr.Text)
}

func TestParseError_UnwrapsDecoderError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewBadXLSError(cause)

	assert.ErrorIs(t, err, ErrBadXLS)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestParseError_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewLessonTimeNotFoundError(7, 4))
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "LESSON_TIME_NOT_FOUND", decoded["code"])
	assert.Contains(t, decoded["message"], "строка 7")
}

func TestParseError_ConstructorsReturnFreshValues(t *testing.T) {
	first := NewNoWorkSheetsError()
	second := NewNoWorkSheetsError()

	assert.NotSame(t, first, second)
	assert.NotSame(t, ErrNoWorkSheets, first)
	assert.ErrorIs(t, first, ErrNoWorkSheets)
	assert.ErrorIs(t, NewUnknownWorkSheetRangeError(), ErrUnknownWorkSheetRange)

	first.Code = CodeBadXLS
	assert.Equal(t, CodeNoWorkSheets, ErrNoWorkSheets.Code)
	assert.Equal(t, CodeNoWorkSheets, second.Code)
}
