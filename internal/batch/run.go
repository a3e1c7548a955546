package batch

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/meshxform/pkg/affine"
	"github.com/Faultbox/meshxform/pkg/formats"
	"github.com/Faultbox/meshxform/pkg/mesh"
)

// Options holds the shared settings of a batch run.
type Options struct {
	Matrix   affine.Matrix
	Rounding mesh.Rounding
	Logger   *zap.Logger // nil discards
	Progress io.Writer   // progress bar target; nil draws none
}

// Result holds the outcome of processing one file.
type Result struct {
	Input    string
	Output   string
	Vertices int
	Normals  int
	Err      error
}

// Run processes the jobs in order. The first failure stops the batch: Run
// returns the results so far, the failing one last, and its error.
func Run(jobs []Job, opts Options) ([]Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run", uuid.NewString()))

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(jobs),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("transforming"),
			progressbar.OptionShowCount(),
		)
		defer bar.Close()
	}

	log.Info("batch started",
		zap.Int("files", len(jobs)),
		zap.Stringer("rounding", opts.Rounding))
	start := time.Now()

	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		res := processFile(job, opts, log)
		results = append(results, res)
		if res.Err != nil {
			log.Error("batch aborted", zap.String("input", job.Input), zap.Error(res.Err))
			return results, fmt.Errorf("%s: %w", job.Input, res.Err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	log.Info("batch finished",
		zap.Int("files", len(results)),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

func processFile(job Job, opts Options, log *zap.Logger) Result {
	res := Result{Input: job.Input, Output: job.Output}

	doc, err := formats.Load(job.Input)
	if err != nil {
		res.Err = err
		return res
	}

	m := doc.Mesh()
	res.Vertices = len(m.Vertices)
	res.Normals = len(m.Normals)

	if err := mesh.Apply(m, opts.Matrix); err != nil {
		res.Err = err
		return res
	}
	opts.Rounding.Apply(m)

	if err := doc.Save(job.Output); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", job.Output, err)
		return res
	}

	lo, hi := mesh.Bounds(m)
	log.Debug("mesh written",
		zap.String("input", job.Input),
		zap.String("output", job.Output),
		zap.Int("vertices", res.Vertices),
		zap.Int("normals", res.Normals),
		zap.Stringer("min", lo),
		zap.Stringer("max", hi),
		zap.Float64("diagonal", lo.Distance(hi)))
	return res
}
