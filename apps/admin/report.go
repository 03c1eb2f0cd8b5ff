package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/engine"
)

var nowFunc = time.Now // mockable

func (cli *commandLine) reportCmd() *cobra.Command {
	var todayStr string
	var days int

	cmd := &cobra.Command{
		Use:   "report USERNAME",
		Short: "Print a user's dashboard: danger ranking, headlines, stress forecast and workload bars",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := engine.Day(nowFunc())
			if todayStr != "" {
				d, err := engine.ParseDate(todayStr)
				if err != nil {
					return err
				}
				today = d
			}
			return cli.report(cmd, args[0], today, days)
		},
	}
	cmd.Flags().StringVar(&todayStr, "today", "", "reference date, YYYY-MM-DD (default: today, local time)")
	cmd.Flags().IntVar(&days, "days", cli.conf.Engine.ProjectionDays, "number of days of workload bars")
	return cmd
}

func (cli *commandLine) report(cmd *cobra.Command, uname string, today time.Time, days int) error {
	ctx := cmd.Context()
	usr, err := cli.usrSvc.GetByUsername(ctx, uname)
	if err != nil {
		return err
	}

	as, err := cli.asgSvc.Load(ctx, usr.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "StudentOS report for %s (%s)\n", usr.Username, engine.FormatDate(today))
	if len(as) == 0 {
		fmt.Fprintln(cli.out, "No assignments yet.")
		return nil
	}

	d, err := cli.asgSvc.Dashboard(ctx, usr.ID, assignment.DashboardParams{
		Today:          today,
		CurrentGrade:   cli.conf.Engine.CurrentGrade,
		WorkloadWindow: cli.conf.Engine.WorkloadWindow,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, "\nMost dangerous:")
	for _, h := range d.Headlines {
		fmt.Fprintln(cli.out, "  "+h)
	}

	fmt.Fprintln(cli.out, "\nAll assignments:")
	for _, r := range engine.RankByDanger(as, today) {
		fmt.Fprintln(cli.out, "  "+engine.ListLine(r))
	}

	fmt.Fprintln(cli.out, "\n"+d.StressForecast.Message)

	fmt.Fprintln(cli.out, "\nWorkload:")
	for _, bar := range engine.WorkloadTextBars(as, today, days, cli.conf.Engine.BlocksPerHour) {
		fmt.Fprintln(cli.out, "  "+bar)
	}
	return nil
}
