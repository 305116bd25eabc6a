package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// TestSegmentBasicSections 验证标准简历的区块切分
func TestSegmentBasicSections(t *testing.T) {
	text := types.NewExtractedText(`John Smith
john@example.com

Professional Summary
Seasoned backend engineer with a focus on distributed systems.

Technical Skills
Python, Go, Docker

Work Experience
Senior Engineer at Acme
2020 - 2023

Education
Bachelor of Science, State University
`)

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Contains(t, sections, types.SectionSummary)
	require.Contains(t, sections, types.SectionSkills)
	require.Contains(t, sections, types.SectionExperience)
	require.Contains(t, sections, types.SectionEducation)

	assert.Contains(t, sections[types.SectionSkills].Content(), "Python, Go, Docker")
	assert.Contains(t, sections[types.SectionSummary].Content(), "distributed systems")
	// 区块内容不包含下一个区块的标题行
	assert.NotContains(t, sections[types.SectionSkills].Content(), "Work Experience")
}

// TestSegmentFirstSectionWins 同类区块出现多次时只保留第一个
func TestSegmentFirstSectionWins(t *testing.T) {
	text := types.NewExtractedText(`Skills
Python

Skills
Java
`)

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, []string{"Python"}, sections[types.SectionSkills].Lines)
}

// TestSegmentHeaderLengthLimit 过长的行即使包含别名也不算标题
func TestSegmentHeaderLengthLimit(t *testing.T) {
	longLine := "My extensive skills cover many areas including cloud and data"
	require.GreaterOrEqual(t, len(longLine), maxHeaderLineLength)

	text := types.NewExtractedText(longLine + "\nPython\n")
	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	assert.NotContains(t, sections, types.SectionSkills)
}

// TestSegmentForeignHeaderTerminates 词表之外的全大写标题终止当前区块
func TestSegmentForeignHeaderTerminates(t *testing.T) {
	text := types.NewExtractedText(`Skills
Python
REFERENCES
Available upon request
`)

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, []string{"Python"}, sections[types.SectionSkills].Lines)
}

// TestSegmentColonLineTerminates 大写开头且行内带冒号的行终止当前区块，
// 冒号后的内容与后续行都不会混入区块
func TestSegmentColonLineTerminates(t *testing.T) {
	text := types.NewExtractedText(`Skills
Python, SQL
Projects: shipped an internal tool
more prose that belongs to projects
`)

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, []string{"Python, SQL"}, sections[types.SectionSkills].Lines)
}

// TestSegmentUppercaseSkillListNotHeader 含逗号的全大写行仍属于区块内容
func TestSegmentUppercaseSkillListNotHeader(t *testing.T) {
	text := types.NewExtractedText(`Skills
AWS, SQL, CSS
Python
`)

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, []string{"AWS, SQL, CSS", "Python"}, sections[types.SectionSkills].Lines)
}

// TestSegmentCaseInsensitiveHeaders 标题匹配不区分大小写
func TestSegmentCaseInsensitiveHeaders(t *testing.T) {
	text := types.NewExtractedText(`EDUCATION
Bachelor of Arts
`)

	segmenter := NewSectionSegmenter(nil)
	sections := segmenter.Segment(text)

	require.Contains(t, sections, types.SectionEducation)
	assert.Equal(t, []string{"Bachelor of Arts"}, sections[types.SectionEducation].Lines)
}
