package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/twpayne/go-surfacelength"
	"github.com/twpayne/go-surfacelength/internal/profileplot"
)

func run() error {
	configPath := flag.String("config", "", "path to JSON config")
	beforePath := flag.String("before", "", "path to pre-change grid")
	afterPath := flag.String("after", "", "path to post-change grid")
	startArg := flag.String("start", "", "start pixel coordinate x,y")
	endArg := flag.String("end", "", "end pixel coordinate x,y")
	stepSize := flag.Float64("step", 0, "step size in pixels")
	method := flag.String("method", "", "accumulation method (segment or total)")
	plotPath := flag.String("plot", "", "write a profile plot to this file")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("surfacelength: ")
	verbosef := func(format string, args ...any) {
		if *verbose {
			log.Printf(format, args...)
		}
	}

	cfg := surfacelength.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = surfacelength.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		verbosef("loaded config from %s", *configPath)
	}
	if *stepSize != 0 {
		cfg.StepSize = *stepSize
	}
	if *method != "" {
		cfg.Method = *method
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gridSet, err := surfacelength.NewGridSet(
		surfacelength.WithFS(os.DirFS("/")),
		surfacelength.WithGridOptions(cfg.GridOptions()...),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()
	p := newPrompter(os.Stdin, os.Stdout)

	beforeName, before, err := loadGrid(ctx, p, gridSet, *beforePath, "pre-change")
	if err != nil {
		return err
	}
	afterName, after, err := loadGrid(ctx, p, gridSet, *afterPath, "post-change")
	if err != nil {
		return err
	}

	if *configPath == "" {
		if calibration, ok := geoTIFFCalibration(gridSet.Calibration, beforeName, afterName); ok {
			cfg.LengthPerUnit = calibration.LengthPerUnit
			cfg.HeightPerUnit = calibration.HeightPerUnit
			verbosef("using GeoTIFF calibration %+v", calibration)
		}
	}

	start, err := readCoord(p, before, *startArg, "start")
	if err != nil {
		return err
	}
	end, err := readCoord(p, before, *endArg, "end")
	if err != nil {
		return err
	}

	estimator := surfacelength.NewEstimator(cfg.EstimatorOptions()...)
	comparer, err := surfacelength.NewComparer(before, after, estimator)
	if err != nil {
		return err
	}
	comparison := comparer.Compare(start, end)
	verbosef("compared %s to %s with step %g and %s method", start, end, cfg.StepSize, cfg.Method)

	fmt.Printf("The pre-change surface length is %f meters\n", comparison.Before)
	fmt.Printf("The post-change surface length is %f meters\n", comparison.After)
	fmt.Printf("The difference is %f meters\n", comparison.Difference())

	if *plotPath != "" {
		beforeProfile, err := surfacelength.SampleProfile(before, cfg.Calibration(), start, end, cfg.StepSize)
		if err != nil {
			return err
		}
		afterProfile, err := surfacelength.SampleProfile(after, cfg.Calibration(), start, end, cfg.StepSize)
		if err != nil {
			return err
		}
		if err := profileplot.Save(*plotPath, beforeProfile, afterProfile); err != nil {
			return err
		}
		verbosef("wrote %s", *plotPath)
	}

	return nil
}

// geoTIFFCalibration returns the GeoTIFF calibration of the pre-change grid,
// logging a warning if the post-change grid's calibration is unreadable or
// differs.
func geoTIFFCalibration(calibrationOf func(string) (surfacelength.Calibration, bool, error), beforeName, afterName string) (surfacelength.Calibration, bool) {
	beforeCalibration, beforeOK, err := calibrationOf(beforeName)
	if err != nil {
		log.Printf("warning: ignoring GeoTIFF calibration of %s: %v", beforeName, err)
		beforeOK = false
	}
	afterCalibration, afterOK, err := calibrationOf(afterName)
	switch {
	case err != nil:
		log.Printf("warning: ignoring GeoTIFF calibration of %s: %v", afterName, err)
	case afterOK && !beforeOK:
		log.Printf("warning: ignoring GeoTIFF calibration %+v of %s: %s has none", afterCalibration, afterName, beforeName)
	case afterOK && afterCalibration != beforeCalibration:
		log.Printf("warning: GeoTIFF calibration %+v of %s differs from %+v of %s, using %s", afterCalibration, afterName, beforeCalibration, beforeName, beforeName)
	}
	return beforeCalibration, beforeOK
}

// loadGrid loads the grid at path, prompting for a path if path is empty and
// re-prompting until a grid is loaded.
func loadGrid(ctx context.Context, p *prompter, gridSet *surfacelength.GridSet, path, description string) (string, *surfacelength.Grid, error) {
	interactive := path == ""
	for {
		if interactive {
			var err error
			path, err = p.prompt(fmt.Sprintf("Enter the file path for %s data", description))
			if err != nil {
				return "", nil, err
			}
		}
		name, err := fsName(path)
		if err != nil {
			return "", nil, err
		}
		grid, err := gridSet.Load(ctx, name)
		var sourceUnavailableError *surfacelength.SourceUnavailableError
		var sizeMismatchError *surfacelength.SizeMismatchError
		switch {
		case err == nil:
			p.println(fmt.Sprintf("%s data read successfully", description))
			return name, grid, nil
		case !interactive:
			return "", nil, err
		case errors.As(err, &sourceUnavailableError):
			p.println(fmt.Sprintf("Invalid file path for %s data", description))
		case errors.As(err, &sizeMismatchError):
			p.println(fmt.Sprintf("File size must be %d bytes", sizeMismatchError.Expected))
		default:
			p.println(err.Error())
		}
	}
}

// readCoord parses arg as a coordinate within grid, prompting if arg is empty
// and re-prompting until a valid coordinate is entered.
func readCoord(p *prompter, grid *surfacelength.Grid, arg, description string) (surfacelength.Coord, error) {
	interactive := arg == ""
	for {
		if interactive {
			var err error
			arg, err = p.prompt(fmt.Sprintf("Enter the %s pixel coordinates", description))
			if err != nil {
				return surfacelength.Coord{}, err
			}
		}
		coord, err := parseCoord(arg)
		if err == nil {
			err = grid.CheckCoord(coord)
		}
		switch {
		case err == nil:
			return coord, nil
		case !interactive:
			return surfacelength.Coord{}, fmt.Errorf("%s: %w", description, err)
		default:
			p.println("Enter a valid coordinate")
		}
	}
}

// fsName returns the name of path in os.DirFS("/").
func fsName(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(filepath.ToSlash(absPath), "/"), nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
