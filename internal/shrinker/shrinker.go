// internal/shrinker/shrinker.go
// Package shrinker processes one morphology end to end: read the tree and
// its annotation, locate the splice, and write one variant per target
// connector length. Variant failures never abort the remaining variants.
package shrinker

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"morphclone-core/annotation"
	"morphclone-core/morph"
	"morphclone-core/shrink"
	"morphclone-core/swc"
	"morphclone/internal/common"
	"morphclone/internal/report"
)

// Options configure one batch run; shared by every morphology in the folder.
type Options struct {
	AnnotationsDir string
	OutputDir      string
	NSamples       int
	Heights        []float64 // explicit connector lengths; overrides NSamples
	Axis           shrink.Axis
}

// ProcessFile shrinks one morphology and returns its outcome row. All
// failures are captured in the row; the batch decides what is fatal.
func ProcessFile(ctx context.Context, opts Options, path string, log *zap.Logger) report.File {
	stem := common.Stem(path)
	out := report.File{File: path, Stem: stem}

	fail := func(err error) report.File {
		out.Err = err.Error()
		log.Warn("morphology failed", zap.String("file", path), zap.Error(err))
		return out
	}

	doc, err := annotation.Read(common.AnnotationPath(opts.AnnotationsDir, stem))
	if err != nil {
		return fail(err)
	}
	upward, yCut, yGraft, err := doc.CutGraft()
	if err != nil {
		return fail(err)
	}

	src, err := swc.Read(path)
	if err != nil {
		return fail(err)
	}

	sp, err := shrink.Locate(src, upward, yCut, yGraft)
	if err != nil {
		return fail(err)
	}

	lengths := opts.Heights
	if len(lengths) == 0 {
		lengths, err = shrink.TargetLengths(sp.Length, opts.NSamples)
		if err != nil {
			return fail(err)
		}
	}

	log.Info("shrinking",
		zap.String("file", path),
		zap.Float64("spliced_length", sp.Length),
		zap.Int("variants", len(lengths)))

	for _, target := range lengths {
		if ctx.Err() != nil {
			out.Variants = append(out.Variants, report.Variant{
				Length: target, Err: ctx.Err().Error(),
			})
			continue
		}
		v := processVariant(src, doc, sp, target, opts, stem)
		if v.Err != "" {
			log.Warn("variant failed",
				zap.String("file", path),
				zap.Float64("length", target),
				zap.String("error", v.Err))
		}
		out.Variants = append(out.Variants, v)
	}
	return out
}

// processVariant performs one surgery on a fresh clone and writes the
// morphology plus its shifted annotation.
func processVariant(src *morph.Morphology, doc *annotation.Document, sp shrink.Splice,
	target float64, opts Options, stem string) report.Variant {

	v := report.Variant{Length: target}

	seg, err := shrink.Synthesize(sp, target, opts.Axis)
	if err != nil {
		v.Err = err.Error()
		return v
	}

	work := src.Clone()
	yDiff, err := shrink.Apply(work, sp, seg)
	if err != nil {
		v.Err = err.Error()
		return v
	}

	outPath := common.VariantPath(opts.OutputDir, stem, target)
	if err := swc.WriteFile(outPath, work); err != nil {
		v.Err = err.Error()
		return v
	}
	if err := doc.ShiftedAxon(yDiff).WriteFile(
		common.VariantAnnotationPath(opts.OutputDir, stem, target)); err != nil {
		// Do not leave a morphology without its annotation.
		_ = os.Remove(outPath)
		v.Err = fmt.Sprintf("write annotation: %v", err)
		return v
	}

	v.Path = outPath
	return v
}
