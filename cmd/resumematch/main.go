package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matching"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"
	"resume-match-go/internal/vocab"
)

func main() {
	var (
		configPath string
		jobPath    string
		outPath    string
		profile    string
		asReport   bool
	)

	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径（可选，缺省使用内置默认值）")
	pflag.StringVarP(&jobPath, "job", "j", "", "岗位要求文件路径（YAML或JSON）")
	pflag.StringVarP(&outPath, "out", "o", "", "输出文件路径（缺省输出到标准输出）")
	pflag.StringVarP(&profile, "profile", "p", "general", "权重画像：general 或 self_service")
	pflag.BoolVar(&asReport, "report", false, "batch命令输出文本报告而不是JSON")
	pflag.Usage = usage
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	command, target := args[0], args[1]

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	switch command {
	case "parse", "match", "batch":
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n", command)
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	pipeline, err := buildPipeline(ctx, cfg, profile)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化流水线失败")
	}

	err = withOutput(outPath, func(out io.Writer) error {
		switch command {
		case "parse":
			return runParse(ctx, pipeline, target, out)
		case "match":
			return runMatch(ctx, pipeline, target, jobPath, out)
		default:
			return runBatch(ctx, pipeline, target, jobPath, asReport, out)
		}
	})
	if err != nil {
		// 输出文件此刻已经关闭，直接退出不会丢数据
		logger.Error().Err(err).Str("command", command).Msg("命令执行失败")
		os.Exit(1)
	}
}

// withOutput 打开输出目标并在返回前保证关闭。
// 错误路径上也先落盘再退出，不依赖被 os.Exit 跳过的 defer。
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败 %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func usage() {
	fmt.Fprintf(os.Stderr, `用法: resumematch [选项] <命令> <路径>

命令:
  parse <file>   解析单份简历，输出候选人记录JSON
  match <file>   解析并对岗位评分（需要 --job）
  batch <dir>    批量处理目录下所有简历（--job 可选）

选项:
`)
	pflag.PrintDefaults()
}

// buildPipeline 按配置组装流水线的全部组件
func buildPipeline(ctx context.Context, cfg *config.Config, profile string) (*processor.Pipeline, error) {
	v := vocab.Default()
	if cfg.VocabularyPath != "" {
		loaded, err := vocab.Load(cfg.VocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("加载词表失败: %w", err)
		}
		v = loaded
	}

	extractor, err := parser.NewTextExtractor(ctx,
		parser.WithMinTextLength(cfg.Extractor.MinTextLength),
		parser.WithPDFExtractTimeout(cfg.PDFTimeout()),
	)
	if err != nil {
		return nil, err
	}

	fields := parser.NewFieldExtractor(v,
		parser.WithSummaryMaxLength(cfg.Extractor.SummaryMaxLength),
		parser.WithDescriptionMaxLength(cfg.Extractor.DescriptionMaxLength),
		parser.WithExcerptLength(cfg.Extractor.ExcerptLength),
	)

	engineOptions := []matching.EngineOption{}
	switch profile {
	case "", "general":
		engineOptions = append(engineOptions, matching.WithProfile(matching.ProfileGeneral()))
	case "self_service":
		engineOptions = append(engineOptions, matching.WithProfile(matching.ProfileSelfService()))
	default:
		return nil, fmt.Errorf("未知的权重画像: %q", profile)
	}
	engine := matching.NewEngine(v, engineOptions...)

	components := processor.Components{
		Extractor: extractor,
		Fields:    fields,
		Matcher:   engine,
	}
	if cfg.Narrative.Enabled {
		// 叙述服务需要调用方注入已配置的模型实例，
		// CLI模式下不建连，降级到确定性理由
		logger.Warn().Msg("CLI模式不内置叙述模型，评分理由使用确定性兜底")
	}

	settings := processor.DefaultSettings()
	settings.Concurrency = cfg.Batch.Concurrency
	settings.Logger = logger.Logger

	return processor.NewPipeline(components, settings)
}

func runParse(ctx context.Context, pipeline *processor.Pipeline, path string, out io.Writer) error {
	record, err := pipeline.ParseFile(ctx, path)
	if err != nil {
		return err
	}
	return processor.WriteRecordJSON(out, record)
}

func runMatch(ctx context.Context, pipeline *processor.Pipeline, path, jobPath string, out io.Writer) error {
	if jobPath == "" {
		return fmt.Errorf("match命令需要通过 --job 提供岗位要求文件")
	}
	job, err := loadJob(jobPath)
	if err != nil {
		return err
	}

	record, match, err := pipeline.MatchFile(ctx, path, job)
	if err != nil {
		return err
	}
	return processor.WriteMatchJSON(out, record, match)
}

func runBatch(ctx context.Context, pipeline *processor.Pipeline, dir, jobPath string, asReport bool, out io.Writer) error {
	var job *types.JobRequirement
	if jobPath != "" {
		loaded, err := loadJob(jobPath)
		if err != nil {
			return err
		}
		job = loaded
	}

	result, err := pipeline.ProcessDirectory(ctx, dir, job)
	if err != nil {
		return err
	}

	if asReport {
		return result.WriteReport(out)
	}
	return result.WriteJSON(out)
}

// loadJob 从YAML或JSON文件加载岗位要求（YAML解析器兼容JSON）
func loadJob(path string) (*types.JobRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取岗位要求文件失败: %w", err)
	}

	var job types.JobRequirement
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("解析岗位要求文件失败: %w", err)
	}
	if len(job.RequiredSkills) == 0 && job.MinExperience == 0 && job.RequiredEducation == "" {
		logger.Warn().Str("path", path).Msg("岗位要求为空，所有分量将退化为中性分")
	}
	return &job, nil
}
