package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Vaflel/schedule-parser/infrastructure"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Выгрузить неделю группы или преподавателя в ICS",
	Long:  `Выгружает занятия одной группы или одного преподавателя в файл iCalendar. Перерывы не выгружаются.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		teacher, _ := cmd.Flags().GetString("teacher")
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if _, err := a.parseFiles(cmd.Context(), args); err != nil {
			return err
		}
		entry, err := a.selectEntry(group, teacher)
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("не удалось создать файл: %w", err)
		}
		defer file.Close()

		if err := infrastructure.GenerateICS(entry, time.Now(), file); err != nil {
			return fmt.Errorf("не удалось сформировать ICS: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Расписание %s выгружено в %s", entry.Name, output)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("group", "g", "", "Группа")
	exportCmd.Flags().StringP("teacher", "t", "", "Преподаватель")
	exportCmd.Flags().StringP("output", "o", "schedule.ics", "Файл для записи")
}
