// Package main provides the unitprice command line tool.
// It converts quantities and compares per-unit prices without running the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unitprice/backend/internal/usecase"
)

const (
	Version = "1.0.0"
	appName = "unitprice"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		output   string
		currency string
		decimals int
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Compare product prices per unit",
		Long: `unitprice normalizes price/quantity/unit entries to a common base unit
so products sold in different sizes can be compared.

Supported units:
- volume: ml, L, fl oz
- mass: g, kg, oz, lb`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.PersistentFlags().StringVar(&currency, "currency", "$", "Currency symbol used in price lines")
	cmd.PersistentFlags().IntVar(&decimals, "decimals", 5, "Decimal places used in price lines")

	newService := func() *usecase.PricingService {
		return usecase.NewPricingService(usecase.NewUnitConverter(), nil, nil, usecase.PricingServiceConfig{
			CurrencySymbol: currency,
			Decimals:       decimals,
		})
	}

	cmd.AddCommand(unitsCmd(&output))
	cmd.AddCommand(convertCmd(&output))
	cmd.AddCommand(compareCmd(&output, newService))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}
