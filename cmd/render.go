package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Vaflel/schedule-parser/web"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Сохранить неделю группы или преподавателя как HTML-таблицу",
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

		loc, err := time.LoadLocation(a.cfg.Timezone)
		if err != nil {
			return fmt.Errorf("часовой пояс %q: %w", a.cfg.Timezone, err)
		}

		if _, err := a.parseFiles(cmd.Context(), args); err != nil {
			return err
		}
		entry, err := a.selectEntry(group, teacher)
		if err != nil {
			return err
		}

		report, err := web.RenderSchedule(entry, loc)
		if err != nil {
			return fmt.Errorf("не удалось сформировать HTML: %w", err)
		}

		if err := os.WriteFile(output, []byte(report), 0644); err != nil {
			return fmt.Errorf("не удалось записать файл: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Расписание %s сохранено в %s", entry.Name, output)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("group", "g", "", "Группа")
	renderCmd.Flags().StringP("teacher", "t", "", "Преподаватель")
	renderCmd.Flags().StringP("output", "o", "schedule.html", "Файл для записи")
}
