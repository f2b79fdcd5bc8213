package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forgo/statline/api/internal/config"
	"github.com/forgo/statline/api/internal/middleware"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/forgo/statline/api/internal/service"
)

func entitySpec(name string) (*search.Spec, error) {
	spec, ok := model.SpecFor(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (one of %s)", service.ErrUnknownEntity, name, strings.Join(model.EntityNames(), ", "))
	}
	return spec, nil
}

// ============================================================================
// search
// ============================================================================

func (a *app) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <entity> [field=value...]",
		Short: "Search an entity by exact field values",
		Long: `Search an entity. Every field=value pair narrows the result; with no
pairs every record of the entity is returned. Use "statsctl fields" to list
the filter fields of each entity.`,
		Example:   "  statsctl search schedule season=2010 game_type=playoff",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: model.EntityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := entitySpec(args[0])
			if err != nil {
				return err
			}
			req, err := search.RequestFromPairs(spec, args[1:])
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(cfg *config.Config, store search.RecordStore) error {
				stats := service.NewStatsService(service.StatsServiceConfig{
					Store:   store,
					Timeout: cfg.Store.Timeout,
					Logger:  a.logger,
				})
				rows, err := stats.Search(cmd.Context(), spec.Entity, req)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			})
		},
	}
	return cmd
}

// ============================================================================
// fields
// ============================================================================

func (a *app) fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "fields [entity]",
		Short:     "List the filter fields of every entity, or of one",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: model.EntityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []model.EntityInfo
			if len(args) == 1 {
				spec, err := entitySpec(args[0])
				if err != nil {
					return err
				}
				infos = append(infos, model.DescribeSpec(spec))
			} else {
				for _, spec := range model.Specs() {
					infos = append(infos, model.DescribeSpec(spec))
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer func() { _ = enc.Close() }()
			return enc.Encode(infos)
		},
	}
}

// ============================================================================
// seed
// ============================================================================

type seedOptions struct {
	file string
	demo bool
	cfg  service.DemoConfig
}

func (a *app) seedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed (--file league.yaml | --demo)",
		Short: "Load league records into the configured store",
		Long: `Load league records from a YAML file keyed by entity name, or generate
a demo league. Records are validated before anything is saved; existing
records with the same natural key are replaced.`,
		Example: "  statsctl seed --file testdata/league.yaml\n  statsctl seed --demo --seasons 3 --teams 8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.file == "") == !opts.demo {
				return errors.New("exactly one of --file or --demo is required")
			}

			var league map[string][]search.Record
			if opts.file != "" {
				var err error
				if league, err = readLeagueFile(opts.file); err != nil {
					return err
				}
			}

			return a.withStore(cmd.Context(), func(cfg *config.Config, store search.RecordStore) error {
				seeder := service.NewSeedService(service.SeedServiceConfig{Store: store, Logger: a.logger})

				var (
					results []service.SeedResult
					err     error
				)
				if opts.demo {
					results, err = seeder.SeedDemo(cmd.Context(), opts.cfg)
				} else {
					results, err = seeder.SeedAll(cmd.Context(), league)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, r := range results {
					printLine(out, "%-14s %6d saved (%dms)", r.Entity, r.Saved, r.Duration)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "YAML file of records keyed by entity")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "generate a demo league")
	cmd.Flags().IntVar(&opts.cfg.Seasons, "seasons", 2, "demo league seasons")
	cmd.Flags().IntVar(&opts.cfg.Teams, "teams", 6, "demo league teams")
	cmd.Flags().IntVar(&opts.cfg.FirstSeason, "first-season", 0, "first demo season (default 2020)")
	cmd.Flags().Uint64Var(&opts.cfg.Seed, "rng-seed", 0, "demo generator seed")
	return cmd
}

// readLeagueFile decodes a YAML document mapping entity names to records
func readLeagueFile(path string) (map[string][]search.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	league := make(map[string][]search.Record, len(raw))
	for entity, rows := range raw {
		if _, err := entitySpec(entity); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recs := make([]search.Record, len(rows))
		for i, row := range rows {
			recs[i] = search.NormalizeValues(search.Record(row))
		}
		league[entity] = recs
	}
	return league, nil
}

// ============================================================================
// hash-key
// ============================================================================

func (a *app) hashKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-key [key]",
		Short: "Print the bcrypt hash to configure as ADMIN_KEY_HASH",
		Long: `Print the bcrypt hash of an admin key. The key is read from the first
argument, or from the first line of standard input when omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					key = strings.TrimSpace(scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}
			if key == "" {
				return errors.New("admin key must not be empty")
			}

			hash, err := middleware.HashAdminKey(key)
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), "%s", hash)
			return nil
		},
	}
}
