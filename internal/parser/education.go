package parser

import (
	"regexp"
	"strconv"
	"strings"

	"resume-match-go/internal/types"
)

// maxInstitutionLookahead 学校名在学历行之后最多往下找这几行
const maxInstitutionLookahead = 2

// 学历识别模式，按固定顺序尝试：先全称词，再缩写
var (
	degreeWordPattern = regexp.MustCompile(`(?i)\b(?:bachelor|master|phd|ph\.d|doctorate|mba|associate|diploma|certificate)s?\b`)
	degreeAbbrPattern = regexp.MustCompile(`(?i)(?:^|[^a-z])(?:b\.tech|m\.tech|b\.e|m\.e|b\.s|m\.s|b\.a|m\.a)\.?(?:[^a-z]|$)`)

	institutionPattern = regexp.MustCompile(`([A-Z][A-Za-z&.,' -]*?(?:University|College|Institute|School))`)
)

// extractEducation 逐行扫描教育节（缺失时退回全文）找学历关键词。
// 每个命中行产出一条记录：同行找毕业年份，
// 本行及之后最多两行找机构名。没有任何命中时返回单条占位记录。
func (f *FieldExtractor) extractEducation(text *types.ExtractedText, sections map[types.SectionKind]*types.Section) []types.EducationEntry {
	lines := text.Lines
	if section, ok := sections[types.SectionEducation]; ok && !section.IsEmpty() {
		lines = section.Lines
	}

	currentYear := f.now().Year()
	var entries []types.EducationEntry
	for i, line := range lines {
		if !degreeWordPattern.MatchString(line) && !degreeAbbrPattern.MatchString(line) {
			continue
		}

		entry := types.EducationEntry{Degree: types.DegreeNotSpecified}
		if level := f.vocab.ClassifyDegree(line); level.Rank > 0 {
			entry.Degree = level.Label
		}

		if m := yearTokenPattern.FindString(line); m != "" {
			if year, err := strconv.Atoi(m); err == nil && year <= currentYear {
				entry.Year = year
			}
		}

		for j := i; j <= i+maxInstitutionLookahead && j < len(lines); j++ {
			if m := institutionPattern.FindString(lines[j]); m != "" {
				entry.Institution = strings.TrimSpace(m)
				break
			}
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		entries = append(entries, types.EducationEntry{Degree: types.DegreeNotSpecified})
	}
	return entries
}
