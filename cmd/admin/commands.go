package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"padel-ranking-api/internal/service"
)

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func createUserCmd(open opener) *cobra.Command {
	var in service.RegisterInput
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a user without going through the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			u, err := a.Users.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s>\n", u.ID, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "login e-mail (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password (required)")
	cmd.Flags().StringVar(&in.Name, "name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func rankingCmd(open opener) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Print the current ranking table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			rows, err := a.Ranking.Ranking(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tPLAYER\tPOINTS\tMATCHES\tWINS\tWIN RATE")
			for i, r := range rows {
				rate := "-"
				if wr := r.WinRate(); wr != nil {
					rate = fmt.Sprintf("%.2f%%", *wr)
				}
				fmt.Fprintf(tw, "%d\t%d\t%s %s\t%d\t%d\t%d\t%s\n",
					offset+i+1, r.ID, r.Name, r.LastName, r.TotalPoints, r.Matches, r.Wins, rate)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", service.DefaultRankingLimit, "rows to print")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}
