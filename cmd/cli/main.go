package main

import (
	"context"
	"log"

	"convictiontrader/cmd"
	"convictiontrader/internal"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var (
	holdingsCsvPath string
	dryRun          bool
	port            int
)

var rootCmd = &cobra.Command{
	Use:   "convictiontrader",
	Short: "Builds conviction-weighted portfolios and executes them against Alpaca",
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and print the current trade plan without submitting orders",
	RunE: func(c *cobra.Command, args []string) error {
		cmd.HoldingsCsvPath = holdingsCsvPath
		handler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(handler)

		result, err := handler.RebalancerHandler.Rebalance(context.Background(), true)
		if err != nil {
			return err
		}
		internal.Pprint(result)

		return nil
	},
}

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Generate the trade plan and submit its orders",
	RunE: func(c *cobra.Command, args []string) error {
		cmd.HoldingsCsvPath = holdingsCsvPath
		handler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(handler)

		result, err := handler.RebalancerHandler.Rebalance(context.Background(), dryRun)
		if result != nil {
			internal.Pprint(result)
		}

		return err
	},
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the http server",
	RunE: func(c *cobra.Command, args []string) error {
		handler, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(handler)

		return handler.StartApi(port)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&holdingsCsvPath, "holdings-csv", "", "read holdings from a csv export instead of postgres")
	rebalanceCmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan only, submit nothing")
	apiCmd.Flags().IntVar(&port, "port", 3009, "port to listen on")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(rebalanceCmd)
	rootCmd.AddCommand(apiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
