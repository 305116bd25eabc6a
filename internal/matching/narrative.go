package matching

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"resume-match-go/internal/types"
)

// DefaultNarrativeTimeout 叙述生成的默认超时
const DefaultNarrativeTimeout = 10 * time.Second

// NarrativeGenerator 评分叙述服务的接口边界。
// 实现方基于已算好的分量得分生成自然语言解释，
// 绝不参与评分本身：分数在调用前已经确定。
type NarrativeGenerator interface {
	GenerateNarrative(ctx context.Context, candidate *types.CandidateRecord, job *types.JobRequirement, result *types.MatchResult) (string, error)
}

// LLMNarrativeGenerator 基于大模型的叙述生成器
type LLMNarrativeGenerator struct {
	llmModel model.ChatModel
	timeout  time.Duration
	logger   *log.Logger
}

// NarrativeOption 叙述生成器的配置选项
type NarrativeOption func(*LLMNarrativeGenerator)

// WithNarrativeTimeout 配置单次生成的超时时间
func WithNarrativeTimeout(d time.Duration) NarrativeOption {
	return func(g *LLMNarrativeGenerator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithNarrativeLogger 配置自定义日志记录器
func WithNarrativeLogger(logger *log.Logger) NarrativeOption {
	return func(g *LLMNarrativeGenerator) {
		g.logger = logger
	}
}

// NewLLMNarrativeGenerator 创建叙述生成器
func NewLLMNarrativeGenerator(llmModel model.ChatModel, options ...NarrativeOption) (*LLMNarrativeGenerator, error) {
	if llmModel == nil {
		return nil, fmt.Errorf("LLM模型实例不能为空")
	}

	g := &LLMNarrativeGenerator{
		llmModel: llmModel,
		timeout:  DefaultNarrativeTimeout,
		logger:   log.New(os.Stderr, "[叙述生成] ", log.LstdFlags),
	}
	for _, option := range options {
		option(g)
	}
	return g, nil
}

// GenerateNarrative 调用模型生成评分叙述。
// 超时或任何失败都返回错误，由调用方回落到确定性理由。
func (g *LLMNarrativeGenerator) GenerateNarrative(ctx context.Context, candidate *types.CandidateRecord, job *types.JobRequirement, result *types.MatchResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	startTime := time.Now()
	messages := []*schema.Message{
		schema.SystemMessage("你是一名资深招聘顾问。请基于给出的既定评分数据，用2-3句话解释候选人与岗位的匹配情况。只解释分数，不要重新评分，不要输出分数之外的推测。"),
		schema.UserMessage(BuildNarrativePrompt(candidate, job, result)),
	}

	response, err := g.llmModel.Generate(ctx, messages)
	duration := time.Since(startTime)
	if err != nil {
		g.logger.Printf("叙述生成失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}

	content := strings.TrimSpace(response.Content)
	if content == "" {
		g.logger.Printf("叙述生成返回空内容 (用时 %.2f秒)", duration.Seconds())
		return "", fmt.Errorf("narrative generation returned empty content")
	}

	g.logger.Printf("叙述生成完成: %d 个字符 (用时 %.2f秒)", len(content), duration.Seconds())
	return content, nil
}

// BuildNarrativePrompt 组装叙述提示词。
// 只包含已经计算出的分量数据，模型看不到原始简历全文。
func BuildNarrativePrompt(candidate *types.CandidateRecord, job *types.JobRequirement, result *types.MatchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "岗位: %s\n", job.Title)
	fmt.Fprintf(&sb, "候选人: %s\n", candidate.Name)
	fmt.Fprintf(&sb, "总分: %.1f%% (%s)\n", result.OverallPercent, result.Recommendation)
	fmt.Fprintf(&sb, "技能分: %.2f, 命中 %d/%d", result.SkillScore,
		result.SkillDetails.TotalMatched, result.SkillDetails.TotalRequired)
	if len(result.SkillDetails.MatchedSkills) > 0 {
		fmt.Fprintf(&sb, ", 命中技能: %s", strings.Join(result.SkillDetails.MatchedSkills, ", "))
	}
	if len(result.SkillDetails.MissingSkills) > 0 {
		fmt.Fprintf(&sb, ", 缺失技能: %s", strings.Join(result.SkillDetails.MissingSkills, ", "))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "年限分: %.2f (候选人 %d 年 / 要求 %d 年)\n", result.ExperienceScore,
		result.ExperienceDetails.Candidate, result.ExperienceDetails.Required)
	fmt.Fprintf(&sb, "学历分: %.2f (候选人 %s / 要求 %s)\n", result.EducationScore,
		labelOrNone(result.EducationDetails.CandidateLabel), labelOrNone(result.EducationDetails.RequiredLabel))
	fmt.Fprintf(&sb, "地点分: %.2f\n", result.LocationScore)

	return sb.String()
}

func labelOrNone(label string) string {
	if label == "" {
		return "未识别"
	}
	return label
}
