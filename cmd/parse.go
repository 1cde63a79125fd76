package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Разобрать файлы и вывести расписание в JSON",
	Long: `Разбирает один или несколько файлов расписания и печатает результат в JSON.
С --group или --teacher печатается только неделя этой группы или преподавателя.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		teacher, _ := cmd.Flags().GetString("teacher")
		pretty, _ := cmd.Flags().GetBool("pretty")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		schedules, err := a.parseFiles(cmd.Context(), args)
		if err != nil {
			return err
		}

		var result any = schedules
		if len(schedules) == 1 {
			result = schedules[0]
		}
		if group != "" || teacher != "" {
			entry, err := findEntry(schedules, group, teacher)
			if err != nil {
				return err
			}
			result = entry
		}

		var out []byte
		if pretty {
			out, err = json.MarshalIndent(result, "", "  ")
		} else {
			out, err = json.Marshal(result)
		}
		if err != nil {
			return fmt.Errorf("не удалось сериализовать JSON: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("group", "g", "", "Группа, например ИС-21")
	parseCmd.Flags().StringP("teacher", "t", "", "Преподаватель, например \"Иванов А.Б.\"")
	parseCmd.Flags().Bool("pretty", false, "Форматировать JSON с отступами")
}
