package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/codedaily/core/user"
)

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a user's password, the new password is prompted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			if err = cli.resetPassword(cmd, email, pwd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "The user's email")
	return cmd
}

func (cli *commandLine) resetPassword(cmd *cobra.Command, email, pwd string) error {
	ctx := cmd.Context()
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	cp := user.ChangePassword{Email: usr.Email, FullName: usr.FullName, Password: pwd}
	if err = cp.Validate(cli.validate); err != nil {
		return err
	}
	_, err = cli.usrSvc.SetPassword(ctx, usr, cp.Password)
	return err
}
