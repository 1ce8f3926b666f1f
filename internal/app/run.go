package app

import (
	"context"
	"fmt"

	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/job"
	"github.com/vk/mlcbuild/internal/modelconfig"
	"github.com/vk/mlcbuild/internal/modeltype"
	"github.com/vk/mlcbuild/internal/opt"
	"github.com/vk/mlcbuild/internal/target"
)

// Run resolves the job and hands it to the backend.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	d, err := a.Resolve(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("🚀 Handing job to backend.", "id", d.ID(), "output", d.Output().Path)
	if err := a.backend.Compile(ctx, d); err != nil {
		return fmt.Errorf("backend failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Resolve runs the pipeline stages in order and returns the assembled
// descriptor. The first failing stage stops the run.
func (a *App) Resolve(ctx context.Context) (*job.Descriptor, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config

	artifact, err := modelconfig.Locate(stageContext(ctx, diag.StageLocate), cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	modelType, err := modeltype.Infer(stageContext(ctx, diag.StageModelType), cfg.ModelType, artifact, a.registry)
	if err != nil {
		return nil, err
	}

	tgt, err := target.Infer(stageContext(ctx, diag.StageTarget), cfg.Device, cfg.Host, a.env, a.registry)
	if err != nil {
		return nil, err
	}

	optCfg, err := opt.Parse(cfg.Opt)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Optimization flags parsed.", "opt", cfg.Opt, "resolved", optCfg.String())

	d, err := job.Assemble(stageContext(ctx, diag.StageAssemble), job.Inputs{
		Config:            artifact,
		ModelType:         modelType,
		Target:            tgt,
		Opt:               optCfg,
		Quantization:      cfg.Quantization,
		SymbolPrefix:      cfg.PrefixSymbols,
		Output:            cfg.Output,
		MaxSequenceLength: cfg.MaxSequenceLength,
	}, a.registry)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Compile job resolved.",
		"config", artifact.Path(),
		"model_type", d.ModelType(),
		"quantization", d.Quantization().Name,
		"triple", d.Target().Triple,
		"opt", d.Opt().String(),
		"output", d.Output().Path,
		"output_kind", d.Output().Kind)
	return d, nil
}

func stageContext(ctx context.Context, stage diag.Stage) context.Context {
	return ctxlog.WithAttrs(ctx, "stage", string(stage))
}
