package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"resume-match-go/internal/parser"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// BatchItem 批处理中单个文档的结果。
// Record 与 Error 互斥：提取失败的文档带错误描述，其余字段为空。
type BatchItem struct {
	ID     string                 `json:"id"`              // 批内唯一标识
	Path   string                 `json:"path"`            // 来源文档路径
	Record *types.CandidateRecord `json:"record,omitempty"`
	Match  *types.MatchResult     `json:"match,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// BatchResult 一次批处理的汇总结果
type BatchResult struct {
	Items       []BatchItem `json:"items"`
	Total       int         `json:"total"`        // 输入文档总数
	Succeeded   int         `json:"succeeded"`    // 成功解析数
	Failed      int         `json:"failed"`       // 解析失败数
	Scored      bool        `json:"scored"`       // 是否执行了岗位评分
	GeneratedAt time.Time   `json:"generated_at"` // 汇总时间
}

// ProcessBatch 并发处理一组文档，可选地对岗位评分。
// 单个文档失败不影响批次：失败项带错误描述保留在结果中。
// 有岗位时成功项按总分稳定降序排列，失败项按发现顺序排在末尾；
// 无岗位时全部保持发现顺序。
// 上下文取消时停止调度新文档，已产出的结果原样返回。
func (p *Pipeline) ProcessBatch(ctx context.Context, paths []string, job *types.JobRequirement) (*BatchResult, error) {
	ctx, span := tracer.Start(ctx, "pipeline.process_batch",
		trace.WithAttributes(
			attribute.Int("batch.size", len(paths)),
			attribute.Bool("batch.scored", job != nil),
		))
	defer span.End()

	startTime := time.Now()
	p.settings.Logger.Info().
		Int("documents", len(paths)).
		Int("concurrency", p.settings.Concurrency).
		Msg("开始批处理")

	// 每个worker只写自己的槽位，无需加锁；
	// 槽位顺序即发现顺序，与完成顺序无关。
	slots := make([]*BatchItem, len(paths))

	var g errgroup.Group
	g.SetLimit(p.settings.Concurrency)
	for i, path := range paths {
		i, path := i, path
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			item := &BatchItem{
				ID:   uuid.NewString(),
				Path: path,
			}
			record, err := p.ParseFile(ctx, path)
			if err != nil {
				item.Error = err.Error()
				p.settings.Logger.Warn().Str("path", path).Err(err).Msg("文档处理失败")
			} else {
				item.Record = record
				if job != nil {
					item.Match = p.Score(ctx, record, job)
				}
			}
			slots[i] = item
			// 失败只记录在条目上，永远不让单个文档中断批次
			return nil
		})
	}
	_ = g.Wait()

	result := &BatchResult{
		Total:       len(paths),
		Scored:      job != nil,
		GeneratedAt: time.Now(),
	}
	for _, item := range slots {
		if item == nil {
			// 取消后未被调度的文档
			continue
		}
		result.Items = append(result.Items, *item)
		if item.Error != "" {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	if job != nil {
		sortByScoreDescending(result.Items)
	}

	span.SetAttributes(
		attribute.Int("batch.succeeded", result.Succeeded),
		attribute.Int("batch.failed", result.Failed),
	)
	if err := ctx.Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeTimeout)
	}

	p.settings.Logger.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("duration", time.Since(startTime)).
		Msg("批处理完成")

	return result, nil
}

// ProcessDirectory 处理目录下所有受支持的文档。
// 目录项按文件名排序后作为发现顺序，保证批次可复现。
func (p *Pipeline) ProcessDirectory(ctx context.Context, dir string, job *types.JobRequirement) (*BatchResult, error) {
	paths, err := DiscoverDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("目录 %s 下没有受支持的文档", dir)
	}
	return p.ProcessBatch(ctx, paths, job)
}

// DiscoverDocuments 列出目录下所有受支持格式的文件，按文件名排序
func DiscoverDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := parser.DetectFormat(path); err == nil {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// sortByScoreDescending 成功项按总分稳定降序，失败项保持原序排在末尾
func sortByScoreDescending(items []BatchItem) {
	sort.SliceStable(items, func(i, j int) bool {
		mi, mj := items[i].Match, items[j].Match
		if mi == nil && mj == nil {
			return false
		}
		if mi == nil {
			return false
		}
		if mj == nil {
			return true
		}
		return mi.OverallScore > mj.OverallScore
	})
}
