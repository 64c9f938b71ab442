// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"runtime"

	"github.com/pbnjay/memory"

	"github.com/jtpils/lidarseg/internal/graphcut/refflow"
	"github.com/jtpils/lidarseg/internal/histogram"
	"github.com/jtpils/lidarseg/internal/ops"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/rest"
	"github.com/jtpils/lidarseg/internal/seedio"
	"github.com/jtpils/lidarseg/internal/session"
)

const version = "0.1.0"

var totalMiBs = memory.TotalMemory() / 1024 / 1024

var bins = flag.Int64("bins", 10, "number of histogram bins B for the regional term, range [1,256]")
var lambda = flag.Float64("lambda", 1.0, "lambda, trade-off between regional and smoothness terms, must be > 0")
var includeColour = flag.Bool("includeColour", true, "include colour channels 0..2 in the regional term's histograms")
var includeDepth = flag.Bool("includeDepth", true, "include the depth channel in the regional term's histograms")
var dissimilarity = flag.String("dissimilarity", "weighted", "smoothness dissimilarity metric: depth, colour, weighted or lab")
var weightedW = flag.String("weightedW", "1,1,1,1", "comma-separated 4-channel weights when -dissimilarity=weighted")
var bgRadius = flag.Int64("backgroundCheckRadius", 3, "r_bg, window radius for two-pass boundary growth")
var bgThreshold = flag.Float64("backgroundThreshold", 0.4, "depth-median divergence threshold for two-pass boundary growth")

var image = flag.String("image", "", "input raster image file")
var seeds = flag.String("seeds", "", "input seed file, .png (green=source, red=sink) or text (`f x y`/`b x y` per line)")
var out = flag.String("out", "mask.png", "save output mask to `file`")
var log = flag.String("log", "%auto", "save log output to `file`. `%auto` replaces suffix of output file with .log")

var port = flag.String("port", ":8080", "address to serve HTTP API on")
var chroot = flag.String("chroot", "", "directory to chroot and chdir to when serving HTTP. must be run as root")
var setuid = flag.Int64("setuid", -1, "user id number to setuid to when serving HTTP. must be run as root")
var job = flag.String("job", "", "JSON job specification to run (see internal/ops.OpRunJob)")
var batch = flag.String("batch", "", "JSON array of internal/ops.OpLoadJob entries to segment concurrently (see batch command)")
var twoPass = flag.Bool("twoPass", false, "use the two-pass LiDAR refinement pipeline for the batch command")
var maxThreads = flag.Int64("maxThreads", int64(runtime.NumCPU()), fmt.Sprintf("max jobs to segment concurrently. Physical memory is %d MiB", totalMiBs))

func main() {
	var logWriter io.Writer = os.Stdout
	start := time.Now()
	flag.Usage = func() {
		fmt.Fprintf(logWriter, `lidarseg Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (segment|segment2|serve|run|batch|stats|legal|version)

Commands:
  segment  Run single-pass interactive segmentation on -image with -seeds
  segment2 Run the two-pass LiDAR refinement pipeline
  serve    Serve the segmentation HTTP API
  run      Run a JSON job from the file specified by -job
  batch    Segment a JSON array of jobs from -batch concurrently, up to -maxThreads at a time
  stats    Report per-channel histogram diagnostics for -image/-seeds without running a cut
  legal    Show license and attribution information
  version  Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *log == "%auto" {
		if *out != "" {
			*log = strings.TrimSuffix(*out, filepath.Ext(*out)) + ".log"
		} else {
			*log = ""
		}
	}
	if *log != "" {
		logFile, err := os.Create(*log)
		if err != nil {
			panic(fmt.Sprintf("Unable to open log file %s\n", *log))
		}
		logWriter = io.MultiWriter(logWriter, logFile)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	solver := refflow.BFSSolver{}
	var err error

	switch args[0] {
	case "segment", "segment2":
		err = runSegmentCommand(args[0] == "segment2", solver, logWriter)

	case "serve":
		rest.MakeSandbox(*chroot, int(*setuid))
		server := &rest.Server{Solver: solver}
		err = server.Serve(*port)

	case "run":
		err = runJobCommand(*job, solver, logWriter)

	case "batch":
		err = runBatchCommand(*batch, *twoPass, solver, int(*maxThreads), logWriter)

	case "stats":
		err = runStatsCommand(logWriter)

	case "legal":
		fmt.Fprint(logWriter, legal)

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	if err != nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		os.Exit(-1)
	}

	elapsed := time.Now().Sub(start).Round(time.Millisecond * 10)
	fmt.Fprintf(logWriter, "\nDone after %s\n", elapsed)
}

func runSegmentCommand(twoPass bool, solver refflow.BFSSolver, logWriter io.Writer) error {
	if *image == "" || *seeds == "" {
		return fmt.Errorf("-image and -seeds are required for the %s command", segmentCommandName(twoPass))
	}

	img, err := raster.NewImageFromFile(*image, 0)
	if err != nil {
		return err
	}
	seedSet, err := readSeedFile(*seeds)
	if err != nil {
		return err
	}

	params := session.DefaultParams()
	params.Bins = int32(*bins)
	params.Lambda = float32(*lambda)
	params.IncludeColour = *includeColour
	params.IncludeDepth = *includeDepth
	params.Dissimilarity, err = parseDissimilarity(*dissimilarity)
	if err != nil {
		return err
	}
	params.WeightedW, err = parseWeightedW(*weightedW)
	if err != nil {
		return err
	}
	params.BackgroundCheckRadius = int32(*bgRadius)
	params.BackgroundThreshold = float32(*bgThreshold)

	job := &ops.Job{Image: img, Seeds: seedSet, Params: params}
	var step ops.OperatorUnary
	if twoPass {
		step = ops.NewOpSegmentTwoPass(solver)
	} else {
		step = ops.NewOpSegment(solver)
	}
	job, err = step.Apply(job, logWriter)
	if err != nil {
		return err
	}

	saver := ops.NewOpSaveMask(*out)
	_, err = saver.Apply(job, logWriter)
	return err
}

// runStatsCommand reports per-channel regional-term diagnostics for -image
// and -seeds without running the max-flow solver: foreground/background
// histogram banks built the same way C4 (internal/regional) builds them,
// plus each active channel's diagnostic Gaussian fit (see
// internal/histogram.FitGaussian), per SPEC_FULL.md §4.10.
func runStatsCommand(logWriter io.Writer) error {
	if *image == "" || *seeds == "" {
		return fmt.Errorf("-image and -seeds are required for the stats command")
	}

	img, err := raster.NewImageFromFile(*image, 0)
	if err != nil {
		return err
	}
	seedSet, err := readSeedFile(*seeds)
	if err != nil {
		return err
	}
	normImg, _ := raster.Normalize(img)

	cleaned := seedSet.Clean(normImg, logWriter)
	if cleaned.IsEmpty() {
		return session.ErrNoSeeds
	}

	active := histogram.ActiveChannels(*includeColour, *includeDepth)
	fg := histogram.Build(gatherPixels(normImg, cleaned.Sources), active, int32(*bins))
	bg := histogram.Build(gatherPixels(normImg, cleaned.Sinks), active, int32(*bins))

	fmt.Fprintf(logWriter, "regional term: %d source seeds, %d sink seeds, channels %v, %d bins\n",
		len(cleaned.Sources), len(cleaned.Sinks), active, *bins)

	for i, ch := range active {
		logGaussianFit(logWriter, "foreground", ch, fg.Hists[i])
		logGaussianFit(logWriter, "background", ch, bg.Hists[i])
	}
	return nil
}

// logGaussianFit logs one diagnostic line per histogram, matching the
// teacher's fmt.Fprintf log idiom. A fit failure (e.g. an empty histogram)
// is reported, not fatal: stats is a read-only diagnostic command.
func logGaussianFit(logWriter io.Writer, label string, channel int32, h *histogram.Histogram1D) {
	mode, stdDev, err := h.FitGaussian()
	if err != nil {
		fmt.Fprintf(logWriter, "%s channel %d: fit failed: %s\n", label, channel, err.Error())
		return
	}
	fmt.Fprintf(logWriter, "%s channel %d: mode=%.4f stddev=%.4f\n", label, channel, mode, stdDev)
}

// gatherPixels collects the normalized pixel vectors at coords, the same
// way internal/regional.Build does for its own histogram banks.
func gatherPixels(img *raster.Image, coords []raster.Coord) [][]float32 {
	pixels := make([][]float32, 0, len(coords))
	for _, c := range coords {
		pixels = append(pixels, img.Pixel(img.Index(c)))
	}
	return pixels
}

func segmentCommandName(twoPass bool) string {
	if twoPass {
		return "segment2"
	}
	return "segment"
}

func readSeedFile(fileName string) (session.SeedSet, error) {
	if strings.HasSuffix(strings.ToLower(fileName), ".png") {
		return seedio.ReadSeedPNGFile(fileName)
	}
	return seedio.ReadSeedTextFile(fileName)
}

func parseDissimilarity(s string) (session.DissimilarityKind, error) {
	switch strings.ToLower(s) {
	case "depth":
		return session.Depth, nil
	case "colour", "color":
		return session.Colour, nil
	case "weighted":
		return session.Weighted, nil
	case "lab":
		return session.LabColour, nil
	default:
		return 0, fmt.Errorf("unknown -dissimilarity %q, want depth|colour|weighted|lab", s)
	}
}

func parseWeightedW(s string) ([4]float32, error) {
	var w [4]float32
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return w, fmt.Errorf("-weightedW must have 4 comma-separated values, got %q", s)
	}
	for i, p := range parts {
		var v float64
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v); err != nil {
			return w, fmt.Errorf("-weightedW: invalid value %q", p)
		}
		w[i] = float32(v)
	}
	return w, nil
}

// runBatchCommand loads a JSON array of ops.OpLoadJob entries from
// fileName, segments them concurrently with maxThreads workers in flight,
// and writes each job's mask to *out with a %d placeholder for its index.
func runBatchCommand(fileName string, twoPass bool, solver refflow.BFSSolver, maxThreads int, logWriter io.Writer) error {
	if fileName == "" {
		return fmt.Errorf("-batch is required for the batch command")
	}
	content, err := ioutil.ReadFile(fileName)
	if err != nil {
		return err
	}

	var loaders []*ops.OpLoadJob
	if err := json.Unmarshal(content, &loaders); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", fileName, err)
	}
	fmt.Fprintf(logWriter, "\nLoading %d jobs from %s, running up to %d at a time (physical memory %d MiB)\n",
		len(loaders), fileName, maxThreads, totalMiBs)

	jobs := make([]*ops.Job, len(loaders))
	for i, l := range loaders {
		l.ID = i
		j, err := l.Apply(logWriter)
		if err != nil {
			return fmt.Errorf("loading job %d: %w", i, err)
		}
		jobs[i] = j
	}

	var step ops.OperatorUnary
	if twoPass {
		step = ops.NewOpSegmentTwoPass(solver)
	} else {
		step = ops.NewOpSegment(solver)
	}
	par := ops.NewOpParallel(step, int64(maxThreads))
	jobsOut, err := par.ApplyToJobs(jobs, logWriter)
	if err != nil {
		return err
	}

	saver := ops.NewOpSaveMask(maskFilePattern(*out))
	for i, j := range jobsOut {
		if j == nil {
			continue
		}
		if _, err := saver.Apply(j, logWriter); err != nil {
			return fmt.Errorf("saving job %d: %w", i, err)
		}
	}
	return nil
}

// maskFilePattern turns a single -out file name into a %d-indexed pattern
// for batch runs, e.g. "mask.png" -> "mask_%d.png".
func maskFilePattern(baseName string) string {
	ext := filepath.Ext(baseName)
	return strings.TrimSuffix(baseName, ext) + "_%d" + ext
}

// runJobCommand loads a JSON ops.OpRunJob from fileName, wires in solver
// (not itself serializable), and runs it end to end.
func runJobCommand(fileName string, solver refflow.BFSSolver, logWriter io.Writer) error {
	if fileName == "" {
		return fmt.Errorf("-job is required for the run command")
	}
	content, err := ioutil.ReadFile(fileName)
	if err != nil {
		return err
	}

	var run ops.OpRunJob
	if err := json.Unmarshal(content, &run); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", fileName, err)
	}
	if run.Segment != nil {
		run.Segment.Solver = solver
	}
	if run.SegmentTwoPass != nil {
		run.SegmentTwoPass.Solver = solver
	}

	m, err := json.MarshalIndent(&run, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(logWriter, "\nRunning job from %s:\n%s\n", fileName, string(m))

	_, err = run.Run(logWriter)
	return err
}
