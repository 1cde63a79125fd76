package infrastructure

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/extrame/xls"
	"github.com/richardlehane/mscfb"
)

// Записи BIFF, нужные для поиска объединённых ячеек
const (
	biffBOF         = 0x0809
	biffEOF         = 0x000A
	biffBoundSheet  = 0x0085
	biffMergedCells = 0x00E5
)

// openXLSSheet читает первый лист .xls: текст ячеек через extrame/xls,
// объединения напрямую из потока Workbook, потому что extrame/xls их не отдаёт.
func openXLSSheet(data []byte, charset string) (sheet WorkSheet, err error) {
	// extrame/xls паникует на повреждённых файлах
	defer func() {
		if r := recover(); r != nil {
			sheet = nil
			err = domain.NewBadXLSError(fmt.Errorf("паника декодера xls: %v", r))
		}
	}()

	file, err := xls.OpenReader(bytes.NewReader(data), charset)
	if err != nil {
		return nil, domain.NewBadXLSError(err)
	}

	if file.NumSheets() == 0 {
		return nil, domain.NewNoWorkSheetsError()
	}
	xlsSheet := file.GetSheet(0)
	if xlsSheet == nil {
		return nil, domain.NewNoWorkSheetsError()
	}

	rows := readXLSRows(xlsSheet)
	if len(rows) == 0 {
		return nil, domain.NewUnknownWorkSheetRangeError()
	}

	merges, err := readXLSMerges(data)
	if err != nil {
		return nil, domain.NewBadXLSError(err)
	}

	return NewGridSheet(rows, merges), nil
}

// readXLSRows переносит ячейки листа в плотный срез строк; пустые строки остаются nil
func readXLSRows(sheet *xls.WorkSheet) [][]string {
	maxRow := int(sheet.MaxRow)
	if maxRow == 0 && xlsRow(sheet, 0) == nil {
		return nil
	}

	rows := make([][]string, maxRow+1)
	for rowIndex := 0; rowIndex <= maxRow; rowIndex++ {
		row := xlsRow(sheet, rowIndex)
		if row == nil {
			continue
		}
		cols := make([]string, row.LastCol())
		for colIndex := row.FirstCol(); colIndex < row.LastCol(); colIndex++ {
			cols[colIndex] = row.Col(colIndex)
		}
		rows[rowIndex] = cols
	}
	return rows
}

// xlsRow возвращает строку листа или nil, если записи ROW нет.
// extrame/xls на отсутствующей строке разыменовывает nil, так бывает на пустых строках-разделителях.
func xlsRow(sheet *xls.WorkSheet, index int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(index)
}

// readXLSMerges достаёт записи MERGEDCELLS первого листа из составного документа
func readXLSMerges(data []byte) ([]CellRange, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть составной документ: %w", err)
	}

	var stream []byte
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != "Workbook" && entry.Name != "Book" {
			continue
		}
		stream = make([]byte, entry.Size)
		if _, err := io.ReadFull(entry, stream); err != nil {
			return nil, fmt.Errorf("не удалось прочитать поток %s: %w", entry.Name, err)
		}
		break
	}
	if stream == nil {
		return nil, errors.New("в документе нет потока Workbook")
	}

	offset, ok := firstSheetOffset(stream)
	if !ok {
		return nil, nil
	}
	return scanMergedCells(stream, offset), nil
}

// biffRecord одна запись потока BIFF
type biffRecord struct {
	id   uint16
	data []byte
	next int
}

func readBIFFRecord(stream []byte, pos int) (biffRecord, bool) {
	if pos+4 > len(stream) {
		return biffRecord{}, false
	}
	id := binary.LittleEndian.Uint16(stream[pos:])
	size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
	end := pos + 4 + size
	if end > len(stream) {
		return biffRecord{}, false
	}
	return biffRecord{id: id, data: stream[pos+4 : end], next: end}, true
}

// firstSheetOffset берёт смещение первого BOUNDSHEET из глобального подпотока
func firstSheetOffset(stream []byte) (int, bool) {
	for pos := 0; ; {
		record, ok := readBIFFRecord(stream, pos)
		if !ok || record.id == biffEOF {
			return 0, false
		}
		if record.id == biffBoundSheet && len(record.data) >= 4 {
			return int(binary.LittleEndian.Uint32(record.data)), true
		}
		pos = record.next
	}
}

// scanMergedCells собирает объединения подпотока листа, пропуская вложенные подпотоки (диаграммы)
func scanMergedCells(stream []byte, offset int) []CellRange {
	var merges []CellRange
	depth := 0

	for pos := offset; ; {
		record, ok := readBIFFRecord(stream, pos)
		if !ok {
			return merges
		}
		pos = record.next

		switch record.id {
		case biffBOF:
			depth++
		case biffEOF:
			depth--
			if depth <= 0 {
				return merges
			}
		case biffMergedCells:
			if depth != 1 || len(record.data) < 2 {
				continue
			}
			count := int(binary.LittleEndian.Uint16(record.data))
			for i := 0; i < count; i++ {
				at := 2 + i*8
				if at+8 > len(record.data) {
					break
				}
				firstRow := int(binary.LittleEndian.Uint16(record.data[at:]))
				lastRow := int(binary.LittleEndian.Uint16(record.data[at+2:]))
				firstCol := int(binary.LittleEndian.Uint16(record.data[at+4:]))
				lastCol := int(binary.LittleEndian.Uint16(record.data[at+6:]))
				merges = append(merges, CellRange{
					Start: CellPos{Row: firstRow, Col: firstCol},
					End:   CellPos{Row: lastRow + 1, Col: lastCol + 1},
				})
			}
		}
	}
}
