package matching

import (
	"context"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// 测试用LLM模型模拟器
type MockLLMModel struct {
	// 模拟响应
	mockResponse string
	// 用于测试的错误
	Err error
	// 模拟响应前的延迟，用于超时测试
	Delay time.Duration
	// 记录收到的消息
	lastMessages []*schema.Message
}

// Generate 实现model.ChatModel接口
func (m *MockLLMModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	m.lastMessages = messages
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &schema.Message{
		Role:    "assistant",
		Content: m.mockResponse,
	}, nil
}

// Stream 实现model.ChatModel接口
func (m *MockLLMModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	// 测试中不需要流式响应
	return nil, nil
}

// BindTools 实现model.ChatModel接口
func (m *MockLLMModel) BindTools(tools []*schema.ToolInfo) error {
	// 空实现，测试中不需要工具绑定
	return nil
}

func sampleMatchInputs() (*types.CandidateRecord, *types.JobRequirement, *types.MatchResult) {
	candidate := &types.CandidateRecord{Name: "Jane Doe", Skills: []string{"Python"}}
	job := &types.JobRequirement{Title: "Backend Engineer", RequiredSkills: []string{"Python", "Go"}}
	engine := NewEngine(nil)
	return candidate, job, engine.Match(candidate, job)
}

// TestNarrativeGeneratorSuccess 模型正常返回时使用其产出
func TestNarrativeGeneratorSuccess(t *testing.T) {
	mock := &MockLLMModel{mockResponse: "候选人技能部分匹配岗位要求。"}
	generator, err := NewLLMNarrativeGenerator(mock)
	require.NoError(t, err)

	candidate, job, result := sampleMatchInputs()
	narrative, err := generator.GenerateNarrative(context.Background(), candidate, job, result)
	require.NoError(t, err)
	assert.Equal(t, "候选人技能部分匹配岗位要求。", narrative)
}

// TestNarrativeGeneratorError 模型失败时返回错误，由调用方回落
func TestNarrativeGeneratorError(t *testing.T) {
	mock := &MockLLMModel{Err: assert.AnError}
	generator, err := NewLLMNarrativeGenerator(mock)
	require.NoError(t, err)

	candidate, job, result := sampleMatchInputs()
	_, err = generator.GenerateNarrative(context.Background(), candidate, job, result)
	assert.Error(t, err)
}

// TestNarrativeGeneratorEmptyContent 空内容按失败处理
func TestNarrativeGeneratorEmptyContent(t *testing.T) {
	mock := &MockLLMModel{mockResponse: "   "}
	generator, err := NewLLMNarrativeGenerator(mock)
	require.NoError(t, err)

	candidate, job, result := sampleMatchInputs()
	_, err = generator.GenerateNarrative(context.Background(), candidate, job, result)
	assert.Error(t, err)
}

// TestNarrativeGeneratorTimeout 慢模型触发超时
func TestNarrativeGeneratorTimeout(t *testing.T) {
	mock := &MockLLMModel{mockResponse: "too late", Delay: 200 * time.Millisecond}
	generator, err := NewLLMNarrativeGenerator(mock, WithNarrativeTimeout(20*time.Millisecond))
	require.NoError(t, err)

	candidate, job, result := sampleMatchInputs()
	start := time.Now()
	_, err = generator.GenerateNarrative(context.Background(), candidate, job, result)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

// TestNarrativeGeneratorNilModel 模型实例缺失时拒绝构造
func TestNarrativeGeneratorNilModel(t *testing.T) {
	_, err := NewLLMNarrativeGenerator(nil)
	assert.Error(t, err)
}

// TestBuildNarrativePromptContent 提示词只携带已算好的评分数据
func TestBuildNarrativePromptContent(t *testing.T) {
	candidate, job, result := sampleMatchInputs()
	prompt := BuildNarrativePrompt(candidate, job, result)

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "Python")
	assert.Contains(t, prompt, "Go")
	// 原始简历全文不进入提示词
	assert.NotContains(t, prompt, "raw_text_excerpt")
}

// TestNarrativePassesScoresToModel 模型收到的消息包含系统约束与评分数据
func TestNarrativePassesScoresToModel(t *testing.T) {
	mock := &MockLLMModel{mockResponse: "ok"}
	generator, err := NewLLMNarrativeGenerator(mock)
	require.NoError(t, err)

	candidate, job, result := sampleMatchInputs()
	_, err = generator.GenerateNarrative(context.Background(), candidate, job, result)
	require.NoError(t, err)

	require.Len(t, mock.lastMessages, 2)
	assert.Equal(t, schema.System, mock.lastMessages[0].Role)
	assert.Contains(t, mock.lastMessages[1].Content, "Jane Doe")
}
