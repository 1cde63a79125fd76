// Package infrastructure содержит разбор недельного расписания колледжа из XLS-файла.
// Лист устроен для глаз человека, а не как таблица данных: объединённые ячейки задают
// длительность занятия, колонка задаёт группу, одна ячейка хранит название, преподавателей,
// номера подгрупп и особый вид занятия.
//
// Разбор идёт в один проход:
// 1. скелет листа: строки дней недели и колонки групп (skeleton.go);
// 2. границы пар по колонке времени для каждого дня (boundaries.go);
// 3. ячейки занятий по каждой группе и паре (lesson_cell.go, lesson_name.go, rooms.go);
// 4. сборка недели группы с перерывами между занятиями (schedule_parser.go);
// 5. расписания преподавателей из расписаний групп (domain.BuildTeachers).
//
// Структурные ошибки (битый файл, нет листа, нечитаемое время пары, занятие без слота) прерывают разбор
// целиком и возвращаются как *domain.ParseError. Мелкие несоответствия (пустая ячейка,
// неугаданный тип, лишние кабинеты) не прерывают разбор и видны только в данных и логе.
//
// Зависимости:
// - "github.com/extrame/xls" и "github.com/richardlehane/mscfb" для .xls;
// - "github.com/xuri/excelize/v2" для .xlsx;
// - "github.com/agext/levenshtein" для угадывания вида занятия;
// - "go.uber.org/zap" для диагностики.
package infrastructure
