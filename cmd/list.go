package cmd

import (
	"fmt"
	"sort"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "Показать группы и преподавателей из файла",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		schedules, err := a.parseFiles(cmd.Context(), args)
		if err != nil {
			return err
		}
		schedule := schedules[0]

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Группы (%d)", len(schedule.Groups))))
		for _, name := range entryNames(schedule.Groups) {
			fmt.Fprintln(out, "  "+name)
		}
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Преподаватели (%d)", len(schedule.Teachers))))
		for _, name := range entryNames(schedule.Teachers) {
			fmt.Fprintln(out, "  "+name)
		}
		return nil
	},
}

func entryNames(entries map[string]*domain.ScheduleEntry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	rootCmd.AddCommand(listCmd)
}
