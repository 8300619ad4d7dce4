package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/service"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage operator accounts",
}

var (
	newUserPassword string
	newUserRole     string
)

var usersCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create an operator account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersCreate,
}

func init() {
	usersCreateCmd.Flags().StringVar(&newUserPassword, "password", "", "account password")
	usersCreateCmd.Flags().StringVar(&newUserRole, "role", string(domain.UserRoleAgent), "ADMIN or AGENT")
	_ = usersCreateCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(usersCreateCmd)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	svc := service.NewAuthService(env.cfg.Auth, env.repos.Users, env.logger)
	user, err := svc.CreateUser(cmd.Context(), args[0], newUserPassword, domain.UserRole(strings.ToUpper(newUserRole)))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", user.Username, user.Role, user.ID)
	return nil
}
