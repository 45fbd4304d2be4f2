package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/codedaily/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var (
		email, name string
		isAdmin     bool
	)
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user or update its password, the password is prompted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			usr, created, err := cli.addUser(cmd, user.ChangePassword{Email: email, FullName: name, Password: pwd}, isAdmin)
			if err != nil {
				return err
			}
			action := "updated"
			if created {
				action = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s %s\n", usr.Email, action)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "The user's email")
	cmd.Flags().StringVar(&name, "name", "", "The user's full name")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "Grant admin rights")
	return cmd
}

// addUser updates or creates a user.User
func (cli *commandLine) addUser(cmd *cobra.Command, cp user.ChangePassword, isAdmin bool) (user.User, bool, error) {
	if err := cp.Validate(cli.validate); err != nil {
		return user.User{}, false, err
	}
	return cli.usrSvc.AddOrUpdate(cmd.Context(), cp, isAdmin)
}
