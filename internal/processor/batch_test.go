package processor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/matching"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"
)

const strongResume = `Jane Doe
jane.doe@example.com
Austin, TX

Summary
Backend engineer focused on reliable data platforms.

Skills
Python, Docker, SQL, Leadership

Experience
Acme Corp
Senior Engineer
2016 - 2023
Built and operated streaming pipelines.

Education
Bachelor of Science in Computer Science, 2015
State University
`

const weakResume = `Bob Novice
bob@example.com

Skills
Excel

Experience
Intern
2023 - 2024
Assisted the reporting team.
`

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	extractor, err := parser.NewTextExtractor(context.Background())
	require.NoError(t, err)

	pipeline, err := NewPipeline(Components{
		Extractor: extractor,
		Fields:    parser.NewFieldExtractor(nil),
		Matcher:   matching.NewEngine(nil),
	}, DefaultSettings())
	require.NoError(t, err)
	return pipeline
}

func writeBatchDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_strong.txt"), []byte(strongResume), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_weak.txt"), []byte(weakResume), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_broken.txt"), []byte("too short"), 0o644))
	return dir
}

func testJob() *types.JobRequirement {
	return &types.JobRequirement{
		Title:             "Backend Engineer",
		RequiredSkills:    []string{"Python", "Docker"},
		MinExperience:     5,
		RequiredEducation: "Bachelor",
		Location:          "Austin, TX",
	}
}

// TestParseFile 单文档的端到端解析
func TestParseFile(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	record, err := pipeline.ParseFile(context.Background(), filepath.Join(dir, "a_strong.txt"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "jane.doe@example.com", record.Email)
	assert.Equal(t, "Austin, TX", record.Location)
	assert.Contains(t, record.TechnicalSkills, "Python")
	assert.Contains(t, record.SoftSkills, "Leadership")
	assert.GreaterOrEqual(t, record.ExperienceYears, 5)
	require.NotEmpty(t, record.Education)
	assert.Equal(t, "Bachelor", record.Education[0].Degree)
}

// TestProcessBatchBestEffort 单个文档失败不影响批次，失败项带错误描述
func TestProcessBatchBestEffort(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	result, err := pipeline.ProcessDirectory(context.Background(), dir, testJob())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Scored)
	require.Len(t, result.Items, 3)

	// 成功项按总分降序，失败项排在末尾
	assert.Contains(t, result.Items[0].Path, "a_strong.txt")
	assert.Contains(t, result.Items[1].Path, "b_weak.txt")
	assert.Contains(t, result.Items[2].Path, "c_broken.txt")
	assert.NotEmpty(t, result.Items[2].Error)
	assert.Nil(t, result.Items[2].Record)

	require.NotNil(t, result.Items[0].Match)
	require.NotNil(t, result.Items[1].Match)
	assert.Greater(t, result.Items[0].Match.OverallScore, result.Items[1].Match.OverallScore)

	// 每个条目有唯一标识
	assert.NotEqual(t, result.Items[0].ID, result.Items[1].ID)
}

// TestProcessBatchWithoutJob 无岗位时不评分，保持发现顺序
func TestProcessBatchWithoutJob(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	result, err := pipeline.ProcessDirectory(context.Background(), dir, nil)
	require.NoError(t, err)

	assert.False(t, result.Scored)
	require.Len(t, result.Items, 3)
	assert.Contains(t, result.Items[0].Path, "a_strong.txt")
	assert.Contains(t, result.Items[1].Path, "b_weak.txt")
	assert.Nil(t, result.Items[0].Match)
}

// TestProcessBatchIdempotent 同一批次重复处理产出一致的排序与分数
func TestProcessBatchIdempotent(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	first, err := pipeline.ProcessDirectory(context.Background(), dir, testJob())
	require.NoError(t, err)
	second, err := pipeline.ProcessDirectory(context.Background(), dir, testJob())
	require.NoError(t, err)

	require.Len(t, second.Items, len(first.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].Path, second.Items[i].Path)
		if first.Items[i].Match != nil {
			require.NotNil(t, second.Items[i].Match)
			assert.Equal(t, first.Items[i].Match.OverallScore, second.Items[i].Match.OverallScore)
		}
	}
}

// TestProcessBatchCancelled 取消后已产出的结果原样返回
func TestProcessBatchCancelled(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // 提交前就取消

	paths, err := DiscoverDocuments(dir)
	require.NoError(t, err)

	result, err := pipeline.ProcessBatch(ctx, paths, testJob())
	require.NoError(t, err)
	// 未被调度的文档不产生条目，已有条目保持完整
	assert.LessOrEqual(t, len(result.Items), len(paths))
	for _, item := range result.Items {
		assert.True(t, item.Record != nil || item.Error != "")
	}
}

// TestDiscoverDocuments 只收录受支持的格式并按名字排序
func TestDiscoverDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.png"), []byte("x"), 0o644))

	paths, err := DiscoverDocuments(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Contains(t, paths[0], "a.pdf")
	assert.Contains(t, paths[1], "b.txt")
}

// TestWriteReport 文本报告包含候选人与分数信息
func TestWriteReport(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	result, err := pipeline.ProcessDirectory(context.Background(), dir, testJob())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, result.WriteReport(&buf))

	report := buf.String()
	assert.Contains(t, report, "Jane Doe")
	assert.Contains(t, report, "处理失败")
	assert.Contains(t, report, "总分")
}

// TestWriteJSON JSON输出可往返解析
func TestWriteJSON(t *testing.T) {
	pipeline := newTestPipeline(t)
	dir := writeBatchDir(t)

	result, err := pipeline.ProcessDirectory(context.Background(), dir, testJob())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, result.WriteJSON(&buf))
	assert.Contains(t, buf.String(), "\"items\"")
	assert.Contains(t, buf.String(), "jane.doe@example.com")
}
