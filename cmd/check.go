package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Проверить расписание на несогласованные подгруппы, пустые кабинеты и пересечения",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if _, err := a.parseFiles(cmd.Context(), args); err != nil {
			return err
		}

		result, err := a.service.Validate()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Violations) == 0 {
			fmt.Fprintln(out, successStyle.Render("Проблем не найдено"))
			return nil
		}

		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("Найдено проблем: %d", len(result.Violations))))
		for _, v := range result.Violations {
			line := fmt.Sprintf("%s  %s  %s  %s", v.Date.Format("02.01.2006"), v.Entity, v.Type, v.Lesson)
			if v.Detail != "" {
				line += " " + mutedStyle.Render("("+v.Detail+")")
			}
			fmt.Fprintln(out, line)
		}

		failOnIssues, _ := cmd.Flags().GetBool("strict")
		if failOnIssues {
			return fmt.Errorf("расписание содержит %d проблем", len(result.Violations))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("strict", false, "Завершаться с ошибкой, если найдены проблемы")
}
