package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/greentail/backend/internal/domain"
	"github.com/greentail/backend/internal/infrastructure/catalog"
	"github.com/greentail/backend/internal/infrastructure/logging"
	"github.com/greentail/backend/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	catalogPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "greentail",
		Short: "Score and rank organic pet food for a pet profile",
		Long: `greentail runs the GreenTail matching engine against the product catalog.

By default the catalog embedded in the binary is used. Every command prints JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", "", "Catalog YAML file (embedded catalog if empty)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newSearchCmd(opts),
		newMatchCmd(opts),
		newRateCmd(opts),
		newCompareCmd(opts),
	)

	return rootCmd
}

// newService builds the catalog service the commands run against
func (o *globalOptions) newService() (*usecase.CatalogService, error) {
	logger, err := logging.New(logging.Config{
		Level:       o.logLevel,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, err
	}

	var products *catalog.Repository
	if o.catalogPath == "" {
		products, err = catalog.LoadDefault()
	} else {
		products, err = catalog.LoadFile(o.catalogPath)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", zap.Int("products", products.Size()))

	return usecase.NewCatalogService(products, nil, nil, logger, usecase.CatalogServiceConfig{
		EnableDebugLogging: logging.ParseLevel(o.logLevel) == zap.DebugLevel,
	}), nil
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		filters domain.FilterState
		sortKey string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter and sort the catalog without a pet profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filters.Query = args[0]
			}

			service, err := opts.newService()
			if err != nil {
				return err
			}

			results, err := service.Search(cmd.Context(), &domain.SearchRequest{
				Filters: filters,
				Sort:    domain.SortKey(sortKey),
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&filters.PetTypes, "pet", nil, "Pet types (Dog, Cat)")
	flags.StringSliceVar(&filters.LifeStages, "life-stage", nil, "Life stages")
	flags.StringSliceVar(&filters.FeedingStyles, "feeding-style", nil, "Feeding styles")
	flags.StringSliceVar(&filters.Proteins, "protein", nil, "Main proteins")
	flags.StringSliceVar(&filters.Brands, "brand", nil, "Brands")
	flags.StringSliceVar(&filters.PriceBands, "price", nil, "Price bands (<$25, $25–$40, $40–$60, $60+)")
	flags.BoolVar(&filters.Organic, "organic", false, "Organic only")
	flags.BoolVar(&filters.GrainFree, "grain-free", false, "Grain-free only")
	flags.BoolVar(&filters.Sustainable, "sustainable", false, "Sustainably sourced only")
	flags.BoolVar(&filters.Premium, "premium", false, "Premium only")
	flags.BoolVar(&filters.Hypoallergenic, "hypoallergenic", false, "Hypoallergenic only")
	flags.BoolVar(&filters.HumanGrade, "human-grade", false, "Human-grade only")
	flags.BoolVar(&filters.LocallySourced, "local", false, "Locally sourced only")
	flags.BoolVar(&filters.Subscription, "subscription", false, "Subscription available only")
	flags.BoolVar(&filters.Certified, "certified", false, "Certified only")
	flags.BoolVar(&filters.Packaging, "packaging", false, "Recyclable or compostable packaging only")
	flags.StringVar(&sortKey, "sort", string(domain.SortBest), "Sort order (best|lowest|highest)")
	flags.IntVarP(&limit, "limit", "n", 0, "Maximum results (0 for all)")

	return cmd
}

// addProfileFlags binds the quiz answers to flags
func addProfileFlags(cmd *cobra.Command, profile *domain.UserProfile) {
	flags := cmd.Flags()
	flags.StringVar(&profile.Pet, "pet", "", "Pet type")
	flags.StringVar(&profile.LifeStage, "life-stage", "", "Life stage")
	flags.StringVar(&profile.Weight, "weight", "", "Weight range")
	flags.StringVar(&profile.FeedingStyle, "feeding-style", "", "Feeding style")
	flags.StringSliceVar(&profile.AvoidIngredients, "avoid", nil, "Ingredients to avoid")
	flags.StringVar(&profile.Budget, "budget", "", "Budget bracket (<$25, $25–$40, $40–$60, $60+, Flexible)")
	flags.StringSliceVar(&profile.Priorities, "priority", nil, "Sustainability priorities")
}

func newMatchCmd(opts *globalOptions) *cobra.Command {
	var (
		profile domain.UserProfile
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank the catalog for a completed quiz profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.newService()
			if err != nil {
				return err
			}

			results, err := service.Recommend(cmd.Context(), &profile, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	addProfileFlags(cmd, &profile)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default from service)")

	return cmd
}

// rating is the output row of the rate command
type rating struct {
	ID           int     `json:"id"`
	Brand        string  `json:"brand"`
	Name         string  `json:"name"`
	QualityScore int     `json:"qualityScore"`
	Rating       float64 `json:"rating"`
}

func newRateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id>...",
		Short: "Print the profile-independent quality score and 5-point rating",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			service, err := opts.newService()
			if err != nil {
				return err
			}

			ratings := make([]rating, 0, len(ids))
			for _, id := range ids {
				product, err := service.GetProduct(cmd.Context(), id, nil)
				if err != nil {
					return err
				}
				ratings = append(ratings, rating{
					ID:           product.ID,
					Brand:        product.Brand,
					Name:         product.Name,
					QualityScore: product.QualityScore,
					Rating:       product.Rating,
				})
			}
			return writeJSON(cmd.OutOrStdout(), ratings)
		},
	}
}

func newCompareCmd(opts *globalOptions) *cobra.Command {
	var profile domain.UserProfile

	cmd := &cobra.Command{
		Use:   "compare <id> <id>...",
		Short: "Compare two to four products, optionally against a profile",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			service, err := opts.newService()
			if err != nil {
				return err
			}

			var p *domain.UserProfile
			if profileFlagsSet(cmd) {
				p = &profile
			}

			results, err := service.Compare(cmd.Context(), ids, p)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	addProfileFlags(cmd, &profile)
	return cmd
}

// profileFlagsSet reports whether any quiz answer was given on the command line
func profileFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"pet", "life-stage", "weight", "feeding-style", "avoid", "budget", "priority"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: invalid product id %q", domain.ErrInvalidRequest, arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
