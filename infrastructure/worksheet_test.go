package infrastructure

import (
	"testing"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeCellText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"переводы строк", "Математика\r\nИванов А.Б.", "Математика Иванов А.Б."},
		{"повторные пробелы", "  1 пара   8.30 -  10.00 ", "1 пара 8.30 - 10.00"},
		{"табуляция", "Физика\tПетров", "Физика Петров"},
		{"пусто", " \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCellText(tt.in))
		})
	}
}

func TestGridSheet(t *testing.T) {
	sheet := NewGridSheet([][]string{
		{"a", " b\n"},
		{"", "   "},
		{"c"},
	}, []CellRange{
		{Start: CellPos{Row: 0, Col: 1}, End: CellPos{Row: 2, Col: 2}},
	})

	rows, cols := sheet.Bounds()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)

	text, ok := sheet.CellText(0, 1)
	assert.True(t, ok)
	assert.Equal(t, "b", text)

	_, ok = sheet.CellText(1, 1)
	assert.False(t, ok, "пробелы считаются пустой ячейкой")
	_, ok = sheet.CellText(2, 1)
	assert.False(t, ok, "за пределами короткой строки")
	_, ok = sheet.CellText(10, 0)
	assert.False(t, ok)

	merge := sheet.MergeExtent(0, 1)
	assert.Equal(t, 2, merge.Rows())
	assert.Equal(t, CellPos{Row: 2, Col: 2}, merge.End)

	single := sheet.MergeExtent(2, 0)
	assert.Equal(t, CellRange{Start: CellPos{Row: 2, Col: 0}, End: CellPos{Row: 3, Col: 1}}, single)
}

func TestOpenWorkSheet_UnknownFormat(t *testing.T) {
	_, err := OpenWorkSheet([]byte("просто текст"), DefaultCharset)
	assert.ErrorIs(t, err, domain.ErrBadXLS)

	_, err = OpenWorkSheet(nil, DefaultCharset)
	assert.ErrorIs(t, err, domain.ErrBadXLS)
}

func TestOpenWorkSheet_BrokenXLSX(t *testing.T) {
	data := append([]byte{}, zipMagic...)
	data = append(data, []byte("не архив")...)

	_, err := OpenWorkSheet(data, DefaultCharset)
	assert.ErrorIs(t, err, domain.ErrBadXLS)
}

func TestOpenWorkSheet_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Понедельник 01.09.2025"))
	require.NoError(t, f.SetCellStr("Sheet1", "C2", "Математика\nИванов А.Б."))
	require.NoError(t, f.MergeCell("Sheet1", "C2", "C3"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := OpenWorkSheet(buf.Bytes(), DefaultCharset)
	require.NoError(t, err)

	text, ok := sheet.CellText(1, 2)
	require.True(t, ok)
	assert.Equal(t, "Математика Иванов А.Б.", text)

	merge := sheet.MergeExtent(1, 2)
	assert.Equal(t, CellRange{Start: CellPos{Row: 1, Col: 2}, End: CellPos{Row: 3, Col: 3}}, merge)
}

func TestOpenWorkSheet_EmptyXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = OpenWorkSheet(buf.Bytes(), DefaultCharset)
	assert.ErrorIs(t, err, domain.ErrUnknownWorkSheetRange)
}

func TestOpenWorkSheet_ErrorDoesNotAliasPattern(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = OpenWorkSheet(buf.Bytes(), DefaultCharset)
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.NotSame(t, domain.ErrUnknownWorkSheetRange, parseErr)

	parseErr.Code = domain.CodeBadXLS
	assert.Equal(t, domain.CodeUnknownWorkSheetRange, domain.ErrUnknownWorkSheetRange.Code)
}

func TestXLSXMergeRange(t *testing.T) {
	merge, err := xlsxMergeRange("B3", "D6")
	require.NoError(t, err)
	assert.Equal(t, CellRange{Start: CellPos{Row: 2, Col: 1}, End: CellPos{Row: 6, Col: 4}}, merge)

	_, err = xlsxMergeRange("??", "D6")
	assert.Error(t, err)
}
