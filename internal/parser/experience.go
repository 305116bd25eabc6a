package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"resume-match-go/internal/types"
)

const (
	// 日期命中点前后用于提取职位/公司/描述的上下文窗口
	contextBefore = 200
	contextAfter  = 300
	// maxRoleLineLength 超过该长度的行不太可能是职位或公司名
	maxRoleLineLength = 80
)

// experienceYearPatterns 显式年限声明的模式，按固定顺序尝试，
// 首个命中即为结果
var experienceYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2})\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(?i)experience\s*[:of]*\s*(\d{1,2})\+?\s*years?`),
	regexp.MustCompile(`(?i)(\d{1,2})\+?\s*years?\s*in\s*(?:the\s*)?(?:field|industry)`),
	regexp.MustCompile(`(?i)over\s*(\d{1,2})\s*years?`),
}

// 日期区间模式。月份形式先匹配并占位，
// 避免 "Jan 2020 - 2023" 里的年份子串被重复计入。
var (
	monthRangePattern = regexp.MustCompile(`(?i)\b((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4})\s*[-–—]+\s*((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|present|current)`)
	yearRangePattern  = regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]+\s*(\d{4}|present|current)\b`)
	yearTokenPattern  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	presentPattern    = regexp.MustCompile(`(?i)\b(?:present|current)\b`)
)

// extractWorkExperience 在经历节（缺失时退回全文）中定位日期区间，
// 再围绕每个命中点用行启发式恢复职位、公司与描述
func (f *FieldExtractor) extractWorkExperience(text *types.ExtractedText, sections map[types.SectionKind]*types.Section) []types.WorkExperienceEntry {
	source := text.Raw
	if section, ok := sections[types.SectionExperience]; ok && !section.IsEmpty() {
		source = section.Content()
	}

	spans := findDateRanges(source)
	entries := make([]types.WorkExperienceEntry, 0, len(spans))
	for _, span := range spans {
		period := source[span[0]:span[1]]
		entry := types.WorkExperienceEntry{
			Period:        strings.TrimSpace(period),
			DurationYears: f.rangeDuration(period),
		}

		before := source[maxInt(0, span[0]-contextBefore):span[0]]
		after := source[span[1]:minInt(len(source), span[1]+contextAfter)]
		entry.Role, entry.Company = roleAndCompany(before)
		entry.Description = truncateText(descriptionAfter(after), f.descriptionMaxLen)

		entries = append(entries, entry)
	}
	return entries
}

// findDateRanges 返回按出现位置排序的日期区间 [start,end) 对。
// 先收集月份区间，再收集与其不重叠的纯年份区间。
func findDateRanges(source string) [][]int {
	spans := monthRangePattern.FindAllStringIndex(source, -1)
	for _, candidate := range yearRangePattern.FindAllStringIndex(source, -1) {
		overlapped := false
		for _, taken := range spans {
			if candidate[0] < taken[1] && candidate[1] > taken[0] {
				overlapped = true
				break
			}
		}
		if !overlapped {
			spans = append(spans, candidate)
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	return spans
}

// rangeDuration 从区间文本里取首尾年份相减得到时长
// "Present"/"Current" 解析为注入时钟的当前年份，结果下限为0
func (f *FieldExtractor) rangeDuration(period string) float64 {
	years := yearTokenPattern.FindAllString(period, -1)
	if presentPattern.MatchString(period) {
		years = append(years, strconv.Itoa(f.now().Year()))
	}
	if len(years) < 2 {
		return 0
	}

	first, _ := strconv.Atoi(years[0])
	last, _ := strconv.Atoi(years[len(years)-1])
	if last <= first {
		return 0
	}
	return float64(last - first)
}

// roleAndCompany 从日期前的上下文恢复职位与公司。
// 日期与职位同行时（"Senior Engineer 2020-2023"），行内前缀即职位；
// 否则取日期前最近的非空行为职位，再前一行为公司。
func roleAndCompany(before string) (role, company string) {
	parts := strings.Split(before, "\n")
	sameLinePrefix := strings.TrimSpace(parts[len(parts)-1])

	var prior []string
	for _, line := range parts[:len(parts)-1] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			prior = append(prior, trimmed)
		}
	}

	if sameLinePrefix != "" {
		role = sameLinePrefix
		if len(prior) > 0 {
			company = prior[len(prior)-1]
		}
	} else {
		if len(prior) > 0 {
			role = prior[len(prior)-1]
		}
		if len(prior) > 1 {
			company = prior[len(prior)-2]
		}
	}

	if len(role) > maxRoleLineLength {
		role = ""
	}
	if len(company) > maxRoleLineLength {
		company = ""
	}
	return role, company
}

// descriptionAfter 取日期后最多两个非空行拼成描述
func descriptionAfter(after string) string {
	parts := strings.Split(after, "\n")
	var picked []string
	for _, line := range parts[1:] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			picked = append(picked, trimmed)
			if len(picked) == 2 {
				break
			}
		}
	}
	return strings.Join(picked, " ")
}

// extractExperienceYears 先找显式年限声明，
// 没有声明时把各段工作时长相加取整作为兜底
func (f *FieldExtractor) extractExperienceYears(raw string, entries []types.WorkExperienceEntry) int {
	for _, pattern := range experienceYearPatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				return years
			}
		}
	}

	var total float64
	for _, entry := range entries {
		total += entry.DurationYears
	}
	return int(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
