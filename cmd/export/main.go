package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/merchops/pricedesk/internal/catalog"
	"github.com/merchops/pricedesk/internal/export"
	"github.com/merchops/pricedesk/internal/service"
	"github.com/merchops/pricedesk/pkg/logger"
)

func newSnapshotFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "snapshot",
		Usage:    "Path to the catalog snapshot JSON",
		Required: true,
		EnvVars:  []string{"APP_SNAPSHOT_PATH"},
	}
}

func newOutDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "out-dir",
		Usage:   "Directory to write CSV exports into",
		Value:   "./data/exports",
		EnvVars: []string{"APP_EXPORT_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "export",
		Usage: "Generate CSV price/stock exports from a catalog snapshot",
		Commands: []*cli.Command{
			{
				Name:   "master",
				Usage:  "Export one row per master SKU",
				Flags:  []cli.Flag{newSnapshotFlag(), newOutDirFlag()},
				Action: runMaster,
			},
			{
				Name:  "platform",
				Usage: "Export one row per platform alias",
				Flags: []cli.Flag{
					newSnapshotFlag(),
					newOutDirFlag(),
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Platform to export aliases for",
						Required: true,
					},
				},
				Action: runPlatform,
			},
			{
				Name:   "all",
				Usage:  "Export the master file plus one file per known platform",
				Flags:  []cli.Flag{newSnapshotFlag(), newOutDirFlag()},
				Action: runAll,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("export failed")
	}
}

func loadProductService(c *cli.Context) (*service.ProductService, *catalog.Store, error) {
	snap, err := catalog.ReadSnapshot(c.String("snapshot"))
	if err != nil {
		return nil, nil, err
	}

	store := catalog.New()
	store.Load(snap)

	logger.Log.Info().
		Int("products", len(snap.Products)).
		Str("snapshot", c.String("snapshot")).
		Msg("catalog snapshot loaded")

	return service.NewProductService(store), store, nil
}

func runMaster(c *cli.Context) error {
	products, _, err := loadProductService(c)
	if err != nil {
		return err
	}
	return writeMasterFile(products, c.String("out-dir"))
}

func runPlatform(c *cli.Context) error {
	products, _, err := loadProductService(c)
	if err != nil {
		return err
	}
	return writePlatformFile(products, c.String("out-dir"), c.String("name"))
}

func runAll(c *cli.Context) error {
	products, store, err := loadProductService(c)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		return writeMasterFile(products, c.String("out-dir"))
	})
	for _, platform := range knownPlatforms(store) {
		g.Go(func() error {
			return writePlatformFile(products, c.String("out-dir"), platform)
		})
	}

	return g.Wait()
}

func knownPlatforms(store *catalog.Store) []string {
	seen := make(map[string]struct{})
	var platforms []string
	for _, p := range store.Products() {
		for _, ch := range p.Channels {
			if _, ok := seen[ch.Platform]; ok {
				continue
			}
			seen[ch.Platform] = struct{}{}
			platforms = append(platforms, ch.Platform)
		}
	}
	return platforms
}

func writeMasterFile(products *service.ProductService, outDir string) error {
	path := filepath.Join(outDir, "catalog.csv")
	f, err := createExportFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteMaster(f, products.ExportRows("")); err != nil {
		return fmt.Errorf("write master export: %w", err)
	}
	logger.Log.Info().Str("path", path).Msg("master export written")
	return nil
}

func writePlatformFile(products *service.ProductService, outDir, platform string) error {
	path := filepath.Join(outDir, "catalog_"+strings.ToLower(platform)+".csv")
	f, err := createExportFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WritePlatform(f, products.ExportRows(platform)); err != nil {
		return fmt.Errorf("write %s export: %w", platform, err)
	}
	logger.Log.Info().Str("path", path).Str("platform", platform).Msg("platform export written")
	return nil
}

func createExportFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	return f, nil
}
