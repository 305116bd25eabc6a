package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// TestExtractExperienceYearsExplicit 显式年限声明按模式顺序命中
func TestExtractExperienceYearsExplicit(t *testing.T) {
	f := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"标准写法", "Engineer with 8 years of experience in backend systems", 8},
		{"带加号", "5+ years experience building APIs", 5},
		{"冒号写法", "Experience: 12 years", 12},
		{"行业年限", "10 years in the field of data engineering", 10},
		{"over写法", "Over 7 years leading teams", 7},
		{"无声明", "A resume without any explicit statement", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.extractExperienceYears(tt.text, nil))
		})
	}
}

// TestExtractExperienceYearsFallback 无显式声明时求和各段工作时长并取整
func TestExtractExperienceYearsFallback(t *testing.T) {
	f := newTestExtractor(t)

	entries := []types.WorkExperienceEntry{
		{DurationYears: 3},
		{DurationYears: 2},
	}
	assert.Equal(t, 5, f.extractExperienceYears("no explicit statement here", entries))
}

// TestExtractWorkExperienceYearRange 纯年份区间的解析
func TestExtractWorkExperienceYearRange(t *testing.T) {
	f := newTestExtractor(t)

	text := types.NewExtractedText(`Experience
Acme Corp
Senior Engineer
2019 - 2022
Built data pipelines at scale.
Led a team of four engineers.
`)

	entries := f.extractWorkExperience(text, NewSectionSegmenter(nil).Segment(text))
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "2019 - 2022", entry.Period)
	assert.Equal(t, 3.0, entry.DurationYears)
	assert.Equal(t, "Senior Engineer", entry.Role)
	assert.Equal(t, "Acme Corp", entry.Company)
	assert.Contains(t, entry.Description, "Built data pipelines")
	assert.Contains(t, entry.Description, "Led a team")
}

// TestExtractWorkExperiencePresent Present按注入时钟的当前年份结算
func TestExtractWorkExperiencePresent(t *testing.T) {
	f := newTestExtractor(t) // 固定时钟在2024年

	text := types.NewExtractedText(`Experience
Engineer
2021 - Present
Working on platform tooling.
`)

	entries := f.extractWorkExperience(text, NewSectionSegmenter(nil).Segment(text))
	require.Len(t, entries, 1)
	assert.Equal(t, 3.0, entries[0].DurationYears)
}

// TestExtractWorkExperienceMonthRange 月份形式的区间不会被年份模式重复计入
func TestExtractWorkExperienceMonthRange(t *testing.T) {
	f := newTestExtractor(t)

	text := types.NewExtractedText(`Experience
Developer
Jan 2018 - Mar 2020
Shipped the billing system.
`)

	entries := f.extractWorkExperience(text, NewSectionSegmenter(nil).Segment(text))
	require.Len(t, entries, 1)
	assert.Equal(t, "Jan 2018 - Mar 2020", entries[0].Period)
	assert.Equal(t, 2.0, entries[0].DurationYears)
}

// TestExtractWorkExperienceMultiple 多段经历按出现顺序返回
func TestExtractWorkExperienceMultiple(t *testing.T) {
	f := newTestExtractor(t)

	text := types.NewExtractedText(`Experience
First Corp
Junior Developer
2015 - 2018
Maintained internal tools.

Second Corp
Senior Developer
2018 - 2023
Owned the payments service.
`)

	entries := f.extractWorkExperience(text, NewSectionSegmenter(nil).Segment(text))
	require.Len(t, entries, 2)
	assert.Equal(t, "2015 - 2018", entries[0].Period)
	assert.Equal(t, "2018 - 2023", entries[1].Period)
	assert.Equal(t, "Junior Developer", entries[0].Role)
	assert.Equal(t, "Senior Developer", entries[1].Role)
	assert.Equal(t, "Second Corp", entries[1].Company)
}

// TestExtractWorkExperienceSameLineRole 日期与职位同行时取行内前缀
func TestExtractWorkExperienceSameLineRole(t *testing.T) {
	f := newTestExtractor(t)

	text := types.NewExtractedText(`Experience
Acme Corp
Senior Engineer 2020 - 2023
Ran the infrastructure team.
`)

	entries := f.extractWorkExperience(text, NewSectionSegmenter(nil).Segment(text))
	require.Len(t, entries, 1)
	assert.Equal(t, "Senior Engineer", entries[0].Role)
	assert.Equal(t, "Acme Corp", entries[0].Company)
}

// TestRangeDurationFloorZero 结束年份不晚于开始年份时时长为0
func TestRangeDurationFloorZero(t *testing.T) {
	f := newTestExtractor(t)

	assert.Equal(t, 0.0, f.rangeDuration("2022 - 2022"))
	assert.Equal(t, 0.0, f.rangeDuration("2023 - 2020"))
	assert.Equal(t, 0.0, f.rangeDuration("no years at all"))
}

// TestFindDateRangesDeduplicates 月份区间里的年份不会再产生独立的年份区间
func TestFindDateRangesDeduplicates(t *testing.T) {
	source := "Jan 2018 - Mar 2020 and later 2021 - 2023"
	spans := findDateRanges(source)
	require.Len(t, spans, 2)
	assert.Equal(t, "Jan 2018 - Mar 2020", source[spans[0][0]:spans[0][1]])
	assert.Equal(t, "2021 - 2023", source[spans[1][0]:spans[1][1]])
}
