package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
)

// passwordEnv supplies the password when --password is omitted.
const passwordEnv = "MANAGE_PASSWORD"

type userFlags struct {
	email    string
	password string
	name     string
}

func (f *userFlags) bind(cmd *cobra.Command, withName bool) {
	cmd.Flags().StringVar(&f.email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&f.password, "password", "", "account password (default $"+passwordEnv+")")
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "display name")
	}
}

func (f *userFlags) resolvePassword() (string, error) {
	if f.password != "" {
		return f.password, nil
	}
	if env := os.Getenv(passwordEnv); env != "" {
		return env, nil
	}
	return "", errors.New("a password is required: pass --password or set " + passwordEnv)
}

// manage createuser
func newCreateUserCmd() *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a regular user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateUser(cmd, &flags, func(users *service.UserService, password string) (*models.User, error) {
				return users.CreateUser(cmd.Context(), flags.email, password, flags.name)
			})
		},
	}
	flags.bind(cmd, true)
	return cmd
}

// manage createsuperuser
func newCreateSuperuserCmd() *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff account with superuser rights",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateUser(cmd, &flags, func(users *service.UserService, password string) (*models.User, error) {
				return users.CreateSuperuser(cmd.Context(), flags.email, password)
			})
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func runCreateUser(cmd *cobra.Command, flags *userFlags, create func(*service.UserService, string) (*models.User, error)) error {
	password, err := flags.resolvePassword()
	if err != nil {
		return err
	}
	db, cfg, err := openDB()
	if err != nil {
		return err
	}

	users := service.NewUserService(repository.New(db), cfg.JWTSecret, cfg.JWTExpiry)
	user, err := create(users, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
	return nil
}
