package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

const defaultServer = "http://localhost:8080"

var serverFlag = &cli.StringFlag{
	Name:    "server",
	Aliases: []string{"s"},
	Value:   defaultServer,
	Usage:   "Base URL of the coffee maker HTTP API",
	Sources: cli.EnvVars("COFFEEMAKER_SERVER"),
}

var quantityFlags = []cli.Flag{
	&cli.StringFlag{Name: "coffee", Value: "0", Usage: "Units of coffee"},
	&cli.StringFlag{Name: "milk", Value: "0", Usage: "Units of milk"},
	&cli.StringFlag{Name: "sugar", Value: "0", Usage: "Units of sugar"},
	&cli.StringFlag{Name: "chocolate", Value: "0", Usage: "Units of chocolate"},
}

func newApp(out io.Writer) *cli.Command {
	client := func(cmd *cli.Command) *apiClient {
		return newAPIClient(cmd.String("server"))
	}

	return &cli.Command{
		Name:  "coffeemaker",
		Usage: "Operate a coffee maker over its HTTP API",
		Flags: []cli.Flag{serverFlag},
		Commands: []*cli.Command{
			{
				Name:  "menu",
				Usage: "List recipe slots",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					recipes, err := client(cmd).recipes(ctx)
					if err != nil {
						return err
					}
					for i, r := range recipes {
						if r == nil {
							fmt.Fprintf(out, "%d. (empty)\n", i)
							continue
						}
						fmt.Fprintf(out, "%d. %s - %d (coffee %d, milk %d, sugar %d, chocolate %d)\n",
							i, r.Name, r.Price, r.Coffee, r.Milk, r.Sugar, r.Chocolate)
					}
					return nil
				},
			},
			{
				Name:  "buy",
				Usage: "Purchase a recipe",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "selection", Required: true, Usage: "Recipe slot"},
					&cli.StringFlag{Name: "paid", Required: true, Usage: "Amount paid"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					selection, err := strconv.Atoi(cmd.String("selection"))
					if err != nil {
						return fmt.Errorf("invalid selection %q", cmd.String("selection"))
					}
					paid, err := strconv.Atoi(cmd.String("paid"))
					if err != nil {
						return fmt.Errorf("invalid payment %q", cmd.String("paid"))
					}

					resp, err := client(cmd).purchase(ctx, uuid.NewString(), selection, paid)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\nYour change is: %d\n", resp.Message, resp.Change)
					if !resp.Success {
						return errors.New("purchase failed")
					}
					return nil
				},
			},
			{
				Name:  "inventory",
				Usage: "Show ingredient stock",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					resp, err := client(cmd).inventory(ctx)
					if err != nil {
						return err
					}
					fmt.Fprint(out, resp.Report)
					return nil
				},
			},
			{
				Name:  "restock",
				Usage: "Add ingredient stock",
				Flags: quantityFlags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					resp, err := client(cmd).restock(ctx, quantities(cmd))
					if err != nil {
						return err
					}
					if !resp.Success {
						return errors.New(resp.Message)
					}
					fmt.Fprint(out, resp.Report)
					return nil
				},
			},
			{
				Name:  "add-recipe",
				Usage: "Add a recipe to the first free slot",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "name", Required: true, Usage: "Recipe name"},
					&cli.StringFlag{Name: "price", Value: "0", Usage: "Price"},
				}, quantityFlags...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					body := quantities(cmd)
					body["name"] = cmd.String("name")
					body["price"] = cmd.String("price")

					resp, err := client(cmd).addRecipe(ctx, body)
					if err != nil {
						return err
					}
					if !resp.Success {
						return errors.New(resp.Message)
					}
					fmt.Fprintf(out, "%s successfully added in slot %d.\n", resp.Recipe.Name, resp.Recipe.Slot)
					return nil
				},
			},
			{
				Name:  "edit-recipe",
				Usage: "Replace the price and amounts of a recipe",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "index", Required: true, Usage: "Recipe slot"},
					&cli.StringFlag{Name: "price", Required: true, Usage: "Price"},
				}, quantityFlags...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					body := quantities(cmd)
					body["price"] = cmd.String("price")

					resp, err := client(cmd).editRecipe(ctx, cmd.String("index"), body)
					if err != nil {
						return err
					}
					if !resp.Success {
						return errors.New(resp.Message)
					}
					fmt.Fprintf(out, "%s successfully edited.\n", resp.Name)
					return nil
				},
			},
			{
				Name:  "delete-recipe",
				Usage: "Empty a recipe slot",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "index", Required: true, Usage: "Recipe slot"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					resp, err := client(cmd).deleteRecipe(ctx, cmd.String("index"))
					if err != nil {
						return err
					}
					if resp.Name == "" {
						fmt.Fprintln(out, resp.Message)
						return nil
					}
					fmt.Fprintf(out, "%s successfully deleted.\n", resp.Name)
					return nil
				},
			},
		},
	}
}

func quantities(cmd *cli.Command) map[string]string {
	return map[string]string{
		"coffee":    cmd.String("coffee"),
		"milk":      cmd.String("milk"),
		"sugar":     cmd.String("sugar"),
		"chocolate": cmd.String("chocolate"),
	}
}
