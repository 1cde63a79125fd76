package infrastructure

import (
	"strings"

	"github.com/Vaflel/schedule-parser/domain"
	"go.uber.org/zap"
)

// collectRooms читает кабинеты в колонке col по всем строкам ячейки занятия
func (p *sheetParser) collectRooms(extent CellRange, col int) []string {
	var rooms []string
	for row := extent.Start.Row; row < extent.End.Row; row++ {
		if text, ok := p.sheet.CellText(row, col); ok {
			rooms = append(rooms, strings.Fields(text)...)
		}
	}
	return rooms
}

// assignRooms раскладывает кабинеты по подгруппам и логирует расхождения
func (p *sheetParser) assignRooms(extent CellRange, col int, subGroups []domain.SubGroup) []domain.SubGroup {
	rooms := p.collectRooms(extent, col)
	if len(rooms) != len(subGroups) && len(rooms) != 1 {
		p.logger.Debug("число кабинетов не совпадает с числом подгрупп",
			zap.Int("row", extent.Start.Row),
			zap.Int("col", col),
			zap.Int("rooms", len(rooms)),
			zap.Int("subgroups", len(subGroups)))
	}
	return distributeRooms(rooms, subGroups)
}

// distributeRooms раскладывает кабинеты по подгруппам:
// без кабинетов у всех UnknownRoom, один кабинет общий, иначе по порядку;
// лишние кабинеты получают новые несогласованные подгруппы.
func distributeRooms(rooms []string, subGroups []domain.SubGroup) []domain.SubGroup {
	result := make([]domain.SubGroup, len(subGroups))
	copy(result, subGroups)

	if len(result) == 2 && len(rooms) > 2 {
		rooms = rooms[:2]
	}

	switch {
	case len(rooms) == 0:
		for i := range result {
			result[i].Room = domain.UnknownRoom
		}
	case len(rooms) == 1 && len(result) > 0:
		for i := range result {
			result[i].Room = rooms[0]
		}
	default:
		for i := range result {
			result[i].Room = rooms[i]
		}
		for i := len(result); i < len(rooms); i++ {
			extra := domain.NewInconsistentSubGroup(i + 1)
			extra.Room = rooms[i]
			result = append(result, extra)
		}
	}

	return result
}
