package tools

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/molscreen/vinauto/internal/domain/geometry"
	"github.com/molscreen/vinauto/internal/logging"
	"github.com/molscreen/vinauto/pkg/errors"
)

// DockInput carries everything one docking invocation needs.  The Box is the
// shared run-level search volume; all remaining fields are per-molecule.
type DockInput struct {
	ReceptorPath   string
	LigandPath     string
	Box            geometry.Box
	NumPoses       int
	Exhaustiveness int
	Spacing        float64

	// OutPath receives the multi-pose result structure.
	OutPath string

	// LogPath receives the engine's textual output (one score line per pose).
	LogPath string
}

// DockOutput summarizes a successful docking invocation.
type DockOutput struct {
	OutPath string
	LogPath string

	// BestAffinity is the lowest (most favourable) binding energy found, in
	// kcal/mol.
	BestAffinity float64

	// PoseCount is the number of scored poses parsed from the engine output.
	PoseCount int
}

// DockingEngine drives the external docking engine for one ligand at a time.
type DockingEngine interface {
	Dock(ctx context.Context, in DockInput) (DockOutput, error)
}

// VinaConfig carries the docking engine invocation parameters.
type VinaConfig struct {
	// Path is the resolved vina binary.
	Path string

	// Timeout bounds each docking invocation.
	Timeout time.Duration
}

// Vina is the AutoDock Vina-backed DockingEngine.
type Vina struct {
	cfg    VinaConfig
	runner Runner
	log    logging.Logger
}

// NewVina constructs the production DockingEngine.
func NewVina(cfg VinaConfig, runner Runner, log logging.Logger) *Vina {
	return &Vina{cfg: cfg, runner: runner, log: log.Named("vina")}
}

func (v *Vina) Dock(ctx context.Context, in DockInput) (DockOutput, error) {
	f64 := func(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
	inv := Invocation{
		Path: v.cfg.Path,
		Args: []string{
			"--receptor", in.ReceptorPath,
			"--ligand", in.LigandPath,
			"--center_x", f64(in.Box.Center[0]),
			"--center_y", f64(in.Box.Center[1]),
			"--center_z", f64(in.Box.Center[2]),
			"--size_x", f64(in.Box.Size[0]),
			"--size_y", f64(in.Box.Size[1]),
			"--size_z", f64(in.Box.Size[2]),
			"--num_modes", strconv.Itoa(in.NumPoses),
			"--exhaustiveness", strconv.Itoa(in.Exhaustiveness),
			"--spacing", f64(in.Spacing),
			"--out", in.OutPath,
		},
		Timeout: v.cfg.Timeout,
	}

	res, runErr := v.runner.Run(ctx, inv)

	// The engine log is written even on failure so the user can inspect what
	// the engine reported.
	if in.LogPath != "" {
		if werr := os.WriteFile(in.LogPath, []byte(res.Combined()+"\n"), 0o644); werr != nil {
			v.log.Warn("failed to write docking log",
				logging.String("path", in.LogPath), logging.Err(werr))
		}
	}

	if runErr != nil {
		return DockOutput{}, errors.Wrap(runErr, errors.CodeDockingFailure,
			"docking engine failed").WithDetail(res.Combined())
	}
	if err := requireNonEmptyFile(in.OutPath); err != nil {
		return DockOutput{}, errors.Wrap(err, errors.CodeDockingFailure,
			"docking engine produced no result file").WithDetail(res.Combined())
	}

	best, poses, err := parseAffinities(res.Stdout)
	if err != nil {
		return DockOutput{}, errors.Wrap(err, errors.CodeDockingFailure,
			"could not parse docking scores").WithDetail(res.Combined())
	}

	return DockOutput{
		OutPath:      in.OutPath,
		LogPath:      in.LogPath,
		BestAffinity: best,
		PoseCount:    poses,
	}, nil
}

// parseAffinities extracts per-pose binding energies from the engine's result
// table:
//
//	mode |   affinity | dist from best mode
//	     | (kcal/mol) | rmsd l.b.| rmsd u.b.
//	-----+------------+----------+----------
//	   1       -7.123          0          0
//	   2       -6.891      1.972      2.843
//
// A score row starts with an integer mode index followed by a float
// affinity.  "REMARK VINA RESULT:" lines, as found in multi-pose result
// structures, are accepted as well.  Returns the lowest affinity and the
// number of score rows found.
func parseAffinities(output string) (best float64, poses int, err error) {
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 4 && fields[0] == "REMARK" && fields[1] == "VINA" && fields[2] == "RESULT:" {
			fields = fields[3:]
		} else if len(fields) < 2 {
			continue
		} else if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		} else {
			fields = fields[1:]
		}
		affinity, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		if poses == 0 || affinity < best {
			best = affinity
		}
		poses++
	}
	if poses == 0 {
		return 0, 0, fmt.Errorf("no score lines in engine output")
	}
	return best, poses, nil
}
