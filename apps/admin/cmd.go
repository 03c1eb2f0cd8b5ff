package main

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/user"
	"github.com/rpeck07/StudentoS/storage"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	gooseRunFunc     = goose.Run         // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("migrate needs the database storage backend")
)

type commandLine struct {
	conf    *core.Config
	backend *storage.Backend
	usrSvc  *user.Service
	asgSvc  *assignment.Service
	out     io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "StudentOS administration commands",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.migrateCmd(),
		cli.addUserCmd(),
		cli.resetPasswordCmd(),
		cli.deactivateCmd(),
		cli.reportCmd(),
	)
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	return root.Execute()
}

// exactArgs prints the usage and fails with errHelp unless n arguments are given.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			_ = cmd.Usage()
			return errHelp
		}
		return nil
	}
}

// promptPassword reads a password from the terminal without echoing it.
func (cli *commandLine) promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		_ = cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}
