package processor // 组装提取、解析与匹配组件的流水线编排层

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-match-go/internal/matching"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

var tracer = otel.Tracer("resume-match-go/internal/processor")

// Components 流水线的功能组件集合。
// Extractor、Fields、Matcher 为必需；Narrative 可选，
// 缺席时评分理由使用确定性兜底。
type Components struct {
	Extractor parser.DocumentExtractor
	Fields    *parser.FieldExtractor
	Matcher   *matching.Engine
	Narrative matching.NarrativeGenerator
}

// Settings 流水线的纯配置项
type Settings struct {
	Concurrency int            // 批处理的最大并发
	Debug       bool           // 是否输出调试细节
	Logger      zerolog.Logger // 结构化日志实例
}

// DefaultSettings 返回默认配置
func DefaultSettings() Settings {
	return Settings{
		Concurrency: 4,
		Logger:      zlog.Logger,
	}
}

// Pipeline 简历处理流水线。
// 组件在构造时注入，运行期只读，可被多个goroutine并发使用。
type Pipeline struct {
	components Components
	settings   Settings
}

// NewPipeline 创建流水线并校验必需组件
func NewPipeline(components Components, settings Settings) (*Pipeline, error) {
	if components.Extractor == nil {
		return nil, fmt.Errorf("文本提取器不能为空")
	}
	if components.Fields == nil {
		return nil, fmt.Errorf("字段提取器不能为空")
	}
	if components.Matcher == nil {
		return nil, fmt.Errorf("匹配引擎不能为空")
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = DefaultSettings().Concurrency
	}

	return &Pipeline{
		components: components,
		settings:   settings,
	}, nil
}

// ParseFile 对单个文档执行 提取→字段解析 全流程
func (p *Pipeline) ParseFile(ctx context.Context, path string) (*types.CandidateRecord, error) {
	ctx, span := tracer.Start(ctx, "pipeline.parse_file",
		trace.WithAttributes(
			attribute.String("document.path", tracing.SafeDocumentPath(path)),
		))
	defer span.End()

	text, err := p.components.Extractor.ExtractFromFile(ctx, path)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		return nil, err
	}

	record := p.components.Fields.ExtractRecord(text)
	span.SetAttributes(
		attribute.Int("resume.text_length", len(text.Raw)),
		attribute.Int("resume.skill_count", len(record.Skills)),
		attribute.String("resume.name", tracing.SafeAttributeValue("name", record.Name, tracing.DefaultMaxLength)),
	)

	p.settings.Logger.Info().
		Str("path", path).
		Int("skills", len(record.Skills)).
		Int("experience_years", record.ExperienceYears).
		Msg("简历解析完成")

	return record, nil
}

// Parse 对已读入内存的文档执行 提取→字段解析 流程
func (p *Pipeline) Parse(ctx context.Context, doc *types.RawDocument) (*types.CandidateRecord, error) {
	ctx, span := tracer.Start(ctx, "pipeline.parse",
		trace.WithAttributes(
			attribute.String("document.path", tracing.SafeDocumentPath(doc.SourcePath)),
			attribute.String("document.format", string(doc.Format)),
		))
	defer span.End()

	text, err := p.components.Extractor.Extract(ctx, doc)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		return nil, err
	}
	return p.components.Fields.ExtractRecord(text), nil
}

// Score 计算候选人与岗位的匹配结果。
// 叙述生成器可用时用其产出替换确定性理由；
// 生成失败只降级不报错，分数不受影响。
func (p *Pipeline) Score(ctx context.Context, record *types.CandidateRecord, job *types.JobRequirement) *types.MatchResult {
	ctx, span := tracer.Start(ctx, "pipeline.score",
		trace.WithAttributes(
			attribute.String("job.title", tracing.TruncateString(job.Title, tracing.DefaultMaxLength)),
		))
	defer span.End()

	result := p.components.Matcher.Match(record, job)
	span.SetAttributes(
		attribute.Float64("match.overall_percent", result.OverallPercent),
		attribute.String("match.recommendation", result.Recommendation),
	)

	if p.components.Narrative != nil {
		narrative, err := p.components.Narrative.GenerateNarrative(ctx, record, job, result)
		if err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeExternal)
			p.settings.Logger.Warn().Err(err).Msg("叙述生成失败，使用确定性理由")
		} else if narrative != "" {
			result.Reasoning = narrative
		}
	}

	return result
}

// MatchFile 解析文档并直接对岗位评分
func (p *Pipeline) MatchFile(ctx context.Context, path string, job *types.JobRequirement) (*types.CandidateRecord, *types.MatchResult, error) {
	record, err := p.ParseFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return record, p.Score(ctx, record, job), nil
}
