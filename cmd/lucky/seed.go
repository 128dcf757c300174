package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed FILE",
	Short: "Insert restaurants listed in a YAML file",
	Long: `Insert every restaurant listed in FILE ("-" reads standard input).

The file looks like:

  restaurants:
    - name: 不二家酸菜鱼
    - name: Harbour Dim Sum

This is the only write path; the HTTP API never creates restaurants.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedFile is the YAML layout accepted by the seed command.
type seedFile struct {
	Restaurants []struct {
		Name string `yaml:"name"`
	} `yaml:"restaurants"`
}

// parseSeed decodes a seed file and returns the names in file order.
// Unknown keys are rejected so typos do not silently seed nothing.
func parseSeed(r io.Reader) ([]string, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: seed file is empty", domain.ErrValidation)
		}
		return nil, fmt.Errorf("%w: parse seed file: %v", domain.ErrValidation, err)
	}

	names := make([]string, 0, len(f.Restaurants))
	for i, rest := range f.Restaurants {
		if rest.Name == "" {
			return nil, fmt.Errorf("%w: restaurants[%d]: name is required", domain.ErrValidation, i)
		}
		names = append(names, rest.Name)
	}
	return names, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	names, err := parseSeed(in)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewRestaurantService(db.Restaurants)
	for _, name := range names {
		rest, err := svc.Create(ctx, name)
		if err != nil {
			return err
		}
		logger.Debug("restaurant created", "id", rest.ID, "name", rest.Name)
	}

	total, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d restaurants (%d total)\n", len(names), total)
	return nil
}
