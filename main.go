package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v2"

	"github.com/pdok/reproject/crs"
	"github.com/pdok/reproject/processing"
	"github.com/pdok/reproject/reproject"
)

const TOLERANCE string = `tolerance`
const PRECISION string = `precision`
const OUTFILE string = `outfile`
const INITIALSEGMENTS string = `initial-segments`
const MAXITERATIONS string = `max-iterations`
const CONCURRENCY string = `concurrency`
const CACHESIZE string = `cache-size`
const VERBOSE string = `verbose`

//nolint:funlen
func main() {
	app := cli.NewApp()
	app.Name = "reproject"
	app.Usage = "Reproject a (Multi)Polygon boundary within a given tolerance"
	app.ArgsUsage = "<infile> <src_crs> <dst_crs>"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.Float64Flag{
			Name:     TOLERANCE,
			Aliases:  []string{"t"},
			Usage:    "Maximum deviation in destination CRS units. Without it the vertices are reprojected as is",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(TOLERANCE)},
		},
		&cli.UintFlag{
			Name:     PRECISION,
			Aliases:  []string{"p"},
			Usage:    "Number of decimals in the output coordinates",
			Value:    reproject.DefaultPrecision,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(PRECISION)},
		},
		&cli.StringFlag{
			Name:     OUTFILE,
			Aliases:  []string{"o"},
			Usage:    "Output GeoJSON file. Defaults to the infile suffixed with -reprojected",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(OUTFILE)},
		},
		&cli.IntFlag{
			Name:     INITIALSEGMENTS,
			Usage:    "Number of segments a ring is split into for the first densification",
			Value:    100,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(INITIALSEGMENTS)},
		},
		&cli.IntFlag{
			Name:     MAXITERATIONS,
			Usage:    "Maximum number of times the densification spacing of a ring is halved",
			Value:    12,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(MAXITERATIONS)},
		},
		&cli.IntFlag{
			Name:     CONCURRENCY,
			Usage:    "Maximum number of rings processed at the same time, 0 is unlimited",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(CONCURRENCY)},
		},
		&cli.Int64Flag{
			Name:     CACHESIZE,
			Usage:    "Number of projected coordinates kept in memory, 0 disables the cache",
			Value:    1 << 20,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(CACHESIZE)},
		},
		&cli.IntFlag{
			Name:     VERBOSE,
			Aliases:  []string{"v"},
			Usage:    "Log verbosity. 1 logs every ring, 2 every densification",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(VERBOSE)},
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.Args().Len() != 3 {
			_ = cli.ShowAppHelp(c)
			return fmt.Errorf("%w: expected 3 arguments (infile, src_crs, dst_crs), got %d",
				reproject.ErrInvalidParameter, c.Args().Len())
		}
		infile, srcCRS, dstCRS := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)

		logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
		stdr.SetVerbosity(c.Int(VERBOSE))

		opts := reproject.NewOptions()
		opts.Logger = logger
		if c.IsSet(TOLERANCE) {
			opts = opts.WithTolerance(c.Float64(TOLERANCE))
		}
		opts.Precision = c.Uint(PRECISION)
		opts.InitialSegments = c.Int(INITIALSEGMENTS)
		opts.MaxIterations = c.Int(MAXITERATIONS)
		opts.Concurrency = c.Int(CONCURRENCY)

		outfile := c.String(OUTFILE)
		if outfile == "" {
			outfile = processing.DefaultOutfile(infile)
		}

		return reprojectFile(c.Context, logger,
			processing.GeoJSONFile{Path: infile}, processing.GeoJSONFile{Path: outfile},
			srcCRS, dstCRS, c.Int64(CACHESIZE), opts)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// reprojectFile reads one geometry from source, reprojects it and writes it to target.
// A geometry for which the tolerance could not be guaranteed is still written.
func reprojectFile(ctx context.Context, logger logr.Logger, source processing.Source, target processing.Target,
	srcCRS, dstCRS string, cacheSize int64, opts reproject.Options) error {

	transform, err := crs.New(srcCRS, dstCRS)
	if err != nil {
		return fmt.Errorf("%w: %w", reproject.ErrInvalidParameter, err)
	}
	var projector reproject.Projector = transform
	if cacheSize > 0 {
		cache, err := crs.NewCache(transform, cacheSize)
		if err != nil {
			return fmt.Errorf("%w: %w", reproject.ErrInvalidParameter, err)
		}
		defer cache.Close()
		projector = cache
	}

	g, err := source.ReadGeometry()
	if err != nil {
		return err
	}

	logger.Info("=== start reprojecting ===", "source", transform.Source, "destination", transform.Destination)
	result, err := reproject.Geometry(ctx, g, projector, opts)
	switch {
	case errors.Is(err, reproject.ErrToleranceNotGuaranteed):
		logger.Info("WARNING: writing a best effort result", "reason", err.Error())
	case err != nil:
		return err
	}

	if err = target.WriteGeometry(result); err != nil {
		return err
	}
	logger.Info("=== done reprojecting ===")
	return nil
}
