package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VectorBits/solo/src/internal/config"
	"github.com/VectorBits/solo/src/internal/logger"
	"github.com/VectorBits/solo/src/internal/normalize"
	"github.com/VectorBits/solo/src/internal/parser"
	"github.com/VectorBits/solo/src/internal/report"
	"github.com/VectorBits/solo/src/internal/selector"
	"github.com/VectorBits/solo/src/internal/solc"
	"github.com/VectorBits/solo/src/internal/store"
	"github.com/VectorBits/solo/src/internal/ui"
	"github.com/VectorBits/solo/src/internal/watch"
)

// runner 一次 CLI 调用共享的输出、存储与报告设置
type runner struct {
	cfg       config.RunConfiguration
	out       io.Writer
	generator report.Generator
	store     store.Store
	compilers *solc.Manager
}

// qhello Execute 解析命令入口
func Execute(ctx context.Context, cfg config.RunConfiguration, appConfig *config.AppConfig, out io.Writer) error {
	generator, err := report.NewGenerator(cfg.Format)
	if err != nil {
		return err
	}

	r := &runner{cfg: cfg, out: out, generator: generator, compilers: solc.GetManager()}

	if appConfig == nil {
		appConfig = config.Default()
	}
	s, err := store.Open(ctx, cfg.Store, appConfig)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	if s != nil {
		defer s.Close()
		r.store = s
		logger.Info("Storing results in %s", cfg.Store)
	}

	rep, err := r.run(ctx, cfg.Files)
	if err != nil {
		return err
	}

	if !cfg.Watch {
		if rep.FailedFiles > 0 {
			return fmt.Errorf("%d of %d sources failed to parse", rep.FailedFiles, rep.TotalFiles)
		}
		return nil
	}
	return r.watch(ctx)
}

// run 并发解析 files，按输入顺序输出，并保存报告与存储记录
func (r *runner) run(ctx context.Context, files []string) (*report.Report, error) {
	start := time.Now()
	rep := report.NewReport()
	results := make([][]report.Result, len(files))

	pb := ui.NewProgressBar(len(files), "Parsing")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.parseFile(rep.RunID, file)
			for _, res := range results[i] {
				if res.Error != "" {
					pb.AddFailure()
					break
				}
			}
			pb.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	pb.Finish()

	for _, group := range results {
		for i := range group {
			res := &group[i]
			if err := r.emit(res); err != nil {
				return nil, err
			}
			if r.store != nil {
				if err := r.store.SaveResult(ctx, res); err != nil {
					ui.LogWarn("Failed to store result for %s: %v", res.File, err)
				}
			}
			rep.AddResult(*res)
		}
	}

	if r.cfg.OutputDir != "" {
		reporter := report.NewReporter(r.generator, report.NewFileStorage(r.cfg.OutputDir))
		path, err := reporter.GenerateAndSave(rep)
		if err != nil {
			return nil, err
		}
		ui.LogSuccess("Report saved: %s", path)
	}

	ui.PrintStats(rep.TotalFiles, rep.TotalFiles-rep.FailedFiles, rep.FailedFiles, rep.TotalDeclarations, time.Since(start).Round(time.Millisecond))
	return rep, nil
}

// emit 先打印规范化内容，再打印结构化结果；失败的文件只打印错误
func (r *runner) emit(res *report.Result) error {
	if res.Error != "" {
		ui.LogParseFailure(res.File, errors.New(res.Error))
		return nil
	}
	if r.cfg.PrintContent {
		if _, err := fmt.Fprintln(r.out, res.Normalized); err != nil {
			return err
		}
	}
	content, err := r.generator.GenerateResult(res)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", res.File, err)
	}
	_, err = fmt.Fprintln(r.out, content)
	return err
}

// parseFile 读取并解析一个文件；标准 JSON 输入拆成多个源文件分别解析
func (r *runner) parseFile(runID, file string) []report.Result {
	data, err := os.ReadFile(file)
	if err != nil {
		res := report.NewResult(runID, file, "")
		res.SetError(fmt.Errorf("failed to read file: %w", err))
		return []report.Result{res}
	}

	content := string(data)
	if !solc.IsJSONSource(content) {
		return []report.Result{r.parseSource(runID, file, content)}
	}

	sources, err := solc.SplitJSONSource(content)
	if err != nil {
		res := report.NewResult(runID, file, "")
		res.SetError(err)
		return []report.Result{res}
	}
	out := make([]report.Result, 0, len(sources))
	for _, src := range sources {
		out = append(out, r.parseSource(runID, file+":"+src.Path, src.Content))
	}
	return out
}

func (r *runner) parseSource(runID, name, content string) report.Result {
	sentinel := r.cfg.Sentinel
	if sentinel == 0 {
		sentinel = parser.DefaultSentinel
	}
	normalized := normalize.NormalizeWith(content, sentinel)
	res := report.NewResult(runID, name, normalized)

	decls, err := parser.New(normalized, parser.Options{
		Sentinel:            sentinel,
		KeepUserReturnTypes: r.cfg.KeepUserReturnTypes,
	}).Parse()
	if err != nil {
		logger.Debug("%s: %v", name, err)
		res.SetError(err)
		return res
	}
	res.SetDeclarations(decls)
	logger.Debug("%s: %d declarations", name, len(decls))

	if r.cfg.Selectors {
		res.SetSelectors(selector.Derive(decls))
	}
	r.checkCompiler(name, decls)
	return res
}

// checkCompiler 校验 pragma solidity；不满足只告警，不算解析失败
func (r *runner) checkCompiler(name string, decls []parser.Declaration) {
	switch r.cfg.Solc {
	case "":
		return
	case "auto":
		constraints := solc.Constraints(decls)
		if len(constraints) == 0 {
			return
		}
		target := solc.ExtractPragmaVersion(decls)
		version, path, err := r.compilers.Resolve(constraints)
		if err != nil {
			ui.LogWarn("%s: pragma targets solc %s: %v", name, target, err)
			return
		}
		logger.Info("%s: solc %s (%s), pragma targets %s", name, version, path, target)
	default:
		if err := solc.Check(decls, r.cfg.Solc); err != nil {
			ui.LogWarn("%s: %v", name, err)
		}
	}
}

// watch 文件变化时重新解析该文件，直到 ctx 结束
func (r *runner) watch(ctx context.Context) error {
	w, err := watch.New(r.cfg.Files)
	if err != nil {
		return err
	}
	defer w.Close()

	ui.LogInfo("Watching %d file(s), press Ctrl+C to stop", len(r.cfg.Files))
	return w.Run(ctx, func(path string) {
		logger.Info("Change detected: %s", path)
		if _, err := r.run(ctx, []string{path}); err != nil {
			ui.LogError("%v", err)
		}
	})
}

// ListRuns 打印存储中最近 limit 次运行的汇总
func ListRuns(ctx context.Context, driver string, appConfig *config.AppConfig, limit int, out io.Writer) error {
	if appConfig == nil {
		appConfig = config.Default()
	}
	s, err := store.Open(ctx, driver, appConfig)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", driver, err)
	}
	if s == nil {
		return errors.New("-runs needs a result store, set -store or database.driver")
	}
	defer s.Close()

	runs, err := s.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tFILES\tFAILED\tDECLARATIONS")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", run.RunID, run.Files, run.Failed, run.Declarations)
	}
	return tw.Flush()
}
