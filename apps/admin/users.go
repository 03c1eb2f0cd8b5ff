package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpeck07/StudentoS/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adduser USERNAME",
		Short: "Create a user, or reactivate it with a new password. The password is prompted.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.promptPassword(cmd)
			if err != nil {
				return err
			}
			usr, err := cli.usrSvc.AddUser(cmd.Context(), user.NewUser{Username: args[0], Password: pwd})
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "user %q saved\n", usr.Username)
			return nil
		},
	}
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resetpassword USERNAME",
		Short: "Reset a user's password. The password is prompted.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := cli.promptPassword(cmd)
			if err != nil {
				return err
			}
			usr, err := cli.usrSvc.SetPassword(cmd.Context(), user.SetPassword{Username: args[0], Password: pwd})
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "password of %q reset\n", usr.Username)
			return nil
		},
	}
}

func (cli *commandLine) deactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate USERNAME",
		Short: "Block a user from logging in",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usr, err := cli.usrSvc.Deactivate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "user %q deactivated\n", usr.Username)
			return nil
		},
	}
}
