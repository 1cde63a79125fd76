package infrastructure

import (
	"bytes"
	"fmt"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/xuri/excelize/v2"
)

// openXLSXSheet читает первый лист .xlsx через excelize
func openXLSXSheet(data []byte) (WorkSheet, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewBadXLSError(err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewNoWorkSheetsError()
	}
	name := sheets[0]

	rows, err := file.GetRows(name)
	if err != nil {
		return nil, domain.NewBadXLSError(err)
	}
	if len(rows) == 0 {
		return nil, domain.NewUnknownWorkSheetRangeError()
	}

	mergeCells, err := file.GetMergeCells(name)
	if err != nil {
		return nil, domain.NewBadXLSError(err)
	}

	merges := make([]CellRange, 0, len(mergeCells))
	for _, mergeCell := range mergeCells {
		merge, err := xlsxMergeRange(mergeCell.GetStartAxis(), mergeCell.GetEndAxis())
		if err != nil {
			return nil, domain.NewBadXLSError(err)
		}
		merges = append(merges, merge)
	}

	return NewGridSheet(rows, merges), nil
}

// xlsxMergeRange переводит "C3"/"D6" в прямоугольник с нуля и исключающим концом
func xlsxMergeRange(startAxis, endAxis string) (CellRange, error) {
	startCol, startRow, err := excelize.CellNameToCoordinates(startAxis)
	if err != nil {
		return CellRange{}, fmt.Errorf("неверная ячейка объединения '%s': %w", startAxis, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(endAxis)
	if err != nil {
		return CellRange{}, fmt.Errorf("неверная ячейка объединения '%s': %w", endAxis, err)
	}
	return CellRange{
		Start: CellPos{Row: startRow - 1, Col: startCol - 1},
		End:   CellPos{Row: endRow, Col: endCol},
	}, nil
}
