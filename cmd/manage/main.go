// Command manage runs administrative tasks against the recipe database:
// schema migration, account creation and demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-api/backend/pkg/logging"
)

func main() {
	logging.Setup()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Recipe API management commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCreateUserCmd())
	root.AddCommand(newCreateSuperuserCmd())
	root.AddCommand(newSeedCmd())
	return root
}
