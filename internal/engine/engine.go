package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tsmend/internal/diag"
	"tsmend/internal/pipeline"
	"tsmend/internal/rules"
	"tsmend/internal/source"
)

// FileResult summarises the outcome for a single target file.
type FileResult struct {
	Path    string
	Fixes   int
	Changed bool
	Skipped bool // known-clean via disk cache
	Err     error
}

// Engine orchestrates edit sessions over target files. RuleSet и Classifier
// read-only, сессии владеют буферами эксклюзивно — поэтому файлы можно
// обрабатывать параллельно без синхронизации, детерминизм итогового
// содержимого от этого не страдает.
type Engine struct {
	// Jobs caps parallel file processing; <=1 keeps the run fully sequential.
	Jobs int
	// Sink receives progress events; nil means no progress reporting.
	Sink pipeline.ProgressSink
	// Cache, when set, skips files already proven clean (blind scan only).
	Cache *DiskCache
}

// ListSourceFiles возвращает отсортированный список файлов с подходящим
// расширением под root (рекурсивно).
func ListSourceFiles(root string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func (e *Engine) emit(file string, stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
	if e.Sink == nil {
		return
	}
	e.Sink.OnEvent(pipeline.Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func (e *Engine) jobs() int {
	if e.Jobs <= 0 {
		return 1
	}
	if e.Jobs > runtime.GOMAXPROCS(0) {
		return runtime.GOMAXPROCS(0)
	}
	return e.Jobs
}

// RunBlind applies a blind-scan rule set to every target file.
// Отсутствующие файлы пропускаются молча; ошибка на одном файле не
// останавливает остальные.
func (e *Engine) RunBlind(ctx context.Context, paths []string, set *rules.Set) ([]FileResult, error) {
	// Предзагрузка последовательная: FileSet не рассчитан на конкурентный Add.
	fileSet := source.NewFileSet()
	type target struct {
		path string
		id   source.FileID
	}
	targets := make([]target, 0, len(paths))
	results := make([]FileResult, 0, len(paths))

	for _, path := range paths {
		e.emit(path, pipeline.StageLoad, pipeline.StatusQueued, nil, 0)
		id, err := fileSet.Load(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // silently skip missing files
			}
			results = append(results, FileResult{Path: path, Err: err})
			e.emit(path, pipeline.StageLoad, pipeline.StatusError, err, 0)
			continue
		}
		targets = append(targets, target{path: path, id: id})
	}

	fingerprint := set.Fingerprint()
	processed := make([]FileResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs())

	for i, tgt := range targets {
		i, tgt := i, tgt
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			file := fileSet.Get(tgt.id)

			if e.Cache != nil {
				if clean, _ := e.Cache.IsClean(file.Hash, fingerprint); clean {
					processed[i] = FileResult{Path: tgt.path, Skipped: true}
					e.emit(tgt.path, pipeline.StageRewrite, pipeline.StatusDone, nil, time.Since(start))
					return nil
				}
			}

			e.emit(tgt.path, pipeline.StageRewrite, pipeline.StatusWorking, nil, 0)
			session := NewSession(file)
			session.ApplyBlind(set)

			processed[i] = e.finishSession(session, tgt.path, start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return append(results, processed...), err
	}

	if e.Cache != nil {
		for i, tgt := range targets {
			res := processed[i]
			if res.Err == nil && !res.Changed && !res.Skipped {
				_ = e.Cache.MarkClean(fileSet.Get(tgt.id).Hash, fingerprint)
			}
		}
	}

	return append(results, processed...), nil
}

// RunDiagnostics applies the unknown-type classifier to the files named by
// grouped diagnostics. Строго последовательно: порядок записей в группе —
// часть контракта.
func (e *Engine) RunDiagnostics(ctx context.Context, groups []diag.FileGroup, cls *rules.Classifier) ([]FileResult, error) {
	fileSet := source.NewFileSet()
	results := make([]FileResult, 0, len(groups))

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		e.emit(group.Path, pipeline.StageLoad, pipeline.StatusWorking, nil, 0)

		id, err := fileSet.Load(group.Path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // silently skip missing files
			}
			results = append(results, FileResult{Path: group.Path, Err: err})
			e.emit(group.Path, pipeline.StageLoad, pipeline.StatusError, err, 0)
			continue
		}

		e.emit(group.Path, pipeline.StageRewrite, pipeline.StatusWorking, nil, 0)
		session := NewSession(fileSet.Get(id))
		session.ApplyRecords(group.Records, cls)

		results = append(results, e.finishSession(session, group.Path, start))
	}

	return results, nil
}

// finishSession writes the session back (when changed) and builds its result.
// path — как файл назвал вызывающий, не нормализованный Session.Path:
// отчёт и события должны совпадать с тем, что видел пользователь.
func (e *Engine) finishSession(session *Session, path string, start time.Time) FileResult {
	res := FileResult{Path: path, Fixes: session.Applied}

	e.emit(path, pipeline.StageWrite, pipeline.StatusWorking, nil, 0)
	wrote, err := WriteSession(session)
	if err != nil {
		res.Err = err
		e.emit(path, pipeline.StageWrite, pipeline.StatusError, err, time.Since(start))
		return res
	}
	res.Changed = wrote
	e.emit(path, pipeline.StageWrite, pipeline.StatusDone, nil, time.Since(start))
	return res
}
