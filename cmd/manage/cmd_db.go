package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/repository"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// openDB loads config and connects to the database. Tests replace it.
var openDB = func() (*gorm.DB, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

// manage migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

// demoRecipe is a recipe created by the seed command.
type demoRecipe struct {
	title       string
	minutes     int
	price       string
	tags        []string
	ingredients []string
}

var demoRecipes = []demoRecipe{
	{"Thai Prawn Curry", 30, "12.50", []string{"Thai", "Dinner"}, []string{"Prawns", "Coconut milk", "Red curry paste"}},
	{"Pongal", 25, "4.00", []string{"Indian", "Breakfast"}, []string{"Rice", "Moong dal", "Ghee"}},
	{"Aubergine with Tahini", 45, "7.25", []string{"Vegetarian", "Dinner"}, []string{"Aubergine", "Tahini", "Lemon"}},
	{"Porridge", 10, "1.20", []string{"Breakfast", "Vegan"}, []string{"Oats", "Oat milk"}},
}

// manage seed
func newSeedCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo user with sample recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(db); err != nil {
				return err
			}

			ctx := cmd.Context()
			repo := repository.New(db)
			users := service.NewUserService(repo, cfg.JWTSecret, cfg.JWTExpiry)
			recipes := service.NewRecipeService(repo)

			user, err := users.CreateUser(ctx, email, password, "Demo Cook")
			if err != nil {
				return fmt.Errorf("failed to create demo user: %w", err)
			}
			for _, demo := range demoRecipes {
				if _, err := recipes.CreateRecipe(ctx, user.ID, demo.request()); err != nil {
					return fmt.Errorf("failed to create %q: %w", demo.title, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d recipes.\n", user.Email, len(demoRecipes))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "demo@example.com", "demo user email")
	cmd.Flags().StringVar(&password, "password", "demopass123", "demo user password")
	return cmd
}

func (d demoRecipe) request() *types.CreateRecipeRequest {
	minutes := d.minutes
	price := decimal.RequireFromString(d.price)
	req := &types.CreateRecipeRequest{
		Title:       d.title,
		TimeMinutes: &minutes,
		Price:       &price,
	}
	for _, name := range d.tags {
		req.Tags = append(req.Tags, types.LabelRequest{Name: name})
	}
	for _, name := range d.ingredients {
		req.Ingredients = append(req.Ingredients, types.LabelRequest{Name: name})
	}
	return req
}
