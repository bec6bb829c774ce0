package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unitprice/backend/internal/domain"
	"github.com/unitprice/backend/internal/usecase"
	"gopkg.in/yaml.v3"
)

func unitsCmd(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List supported units by family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			families := usecase.NewUnitConverter().Families()
			return render(cmd.OutOrStdout(), *output, families, func(w io.Writer) {
				for _, f := range families {
					units := make([]string, len(f.Units))
					for i, u := range f.Units {
						units[i] = string(u)
					}
					fmt.Fprintf(w, "%s: %s\n", f.Family, strings.Join(units, ", "))
				}
			})
		},
	}
}

func convertCmd(output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <quantity> <from> <to>",
		Short: "Convert a quantity between units of the same family",
		Example: `  unitprice convert 1 kg lb
  unitprice convert 12 "fl oz" ml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: quantity %q is not a number", domain.ErrInvalidRequest, args[0])
			}
			from, to := parseUnitArg(args[1]), parseUnitArg(args[2])

			value, err := usecase.NewUnitConverter().Convert(quantity, from, to)
			if err != nil {
				return err
			}

			result := domain.ConvertResult{Quantity: quantity, From: from, To: to, Result: value}
			return render(cmd.OutOrStdout(), *output, result, func(w io.Writer) {
				fmt.Fprintf(w, "%g %s = %g %s\n", quantity, from, value, to)
			})
		},
	}
}

func compareCmd(output *string, newService func() *usecase.PricingService) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "compare <price>:<quantity>:<unit>...",
		Short: "Compare per-unit prices of several products",
		Long: `Each product is given as price:quantity:unit, or as price:size where size
is free text such as "2 L" or "16.9 fl oz". Prices are normalized to the
unit of the first product unless --base is set.`,
		Example: `  unitprice compare 3.99:2:L 1.50:500:ml
  unitprice compare "4.28:128 fl oz" 2.50:1:L --base L`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &domain.CompareRequest{BaseUnit: parseUnitArg(base)}
			for _, arg := range args {
				entry, err := parseProductArg(arg)
				if err != nil {
					return err
				}
				request.Products = append(request.Products, entry)
			}

			comparison, err := newService().Compare(cmd.Context(), request)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), *output, comparison, func(w io.Writer) {
				for _, r := range comparison.Results {
					if r.Valid() {
						fmt.Fprintln(w, r.Display)
						continue
					}
					fmt.Fprintf(w, "%s: skipped (%s)\n", r.Label, r.Error)
				}
				if comparison.BestValue != "" {
					fmt.Fprintf(w, "Best value: %s\n", comparison.BestValue)
				}
			})
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base unit for normalization (defaults to the first product's unit)")
	return cmd
}

// parseProductArg reads "price:quantity:unit" or "price:size".
// Unparseable numbers are kept as NaN so validation reports them per product.
func parseProductArg(arg string) (domain.ProductEntry, error) {
	parts := strings.SplitN(arg, ":", 3)
	switch len(parts) {
	case 3:
		return domain.ProductEntry{
			Price:    usecase.ParseNumber(parts[0]),
			Quantity: usecase.ParseNumber(parts[1]),
			Unit:     parseUnitArg(parts[2]),
		}, nil
	case 2:
		return domain.ProductEntry{
			Price:    usecase.ParseNumber(parts[0]),
			Quantity: usecase.ParseNumber(""),
			Size:     parts[1],
		}, nil
	default:
		return domain.ProductEntry{}, fmt.Errorf("%w: product %q must be price:quantity:unit or price:size", domain.ErrInvalidRequest, arg)
	}
}

// parseUnitArg accepts table names and common spellings ("liters", "LBS")
func parseUnitArg(s string) domain.Unit {
	s = strings.TrimSpace(s)
	if unit, ok := usecase.NormalizeUnit(s); ok {
		return unit
	}
	return domain.Unit(s)
}

// render writes v as JSON or YAML, or calls text for the default format
func render(w io.Writer, format string, v interface{}, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		text(w)
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidRequest, format)
	}
}
