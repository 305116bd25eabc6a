package parser

import (
	"regexp"
	"strings"
	"time"

	"resume-match-go/internal/types"
	"resume-match-go/internal/vocab"
)

const (
	// nameScanLines 姓名启发式只看开头这几个非空行
	nameScanLines = 5
	// locationScanWindow 地点只在文本开头这个窗口内找
	locationScanWindow = 500
	// minPhoneDigits 低于该位数的数字串不认为是电话号码
	minPhoneDigits = 10
)

// 联系方式相关的模式，列表顺序即尝试顺序
var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// phonePatterns 依次尝试：国际前缀、裸数字串、分段本地号码
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
		regexp.MustCompile(`\d{10,}`),
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	}

	nameWordPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z.\-]*$`)

	// locationPatterns 先尝试 "City, ST"，再尝试 "City, Country"。
	// 城市名内部只允许空格，避免跨行误拼。
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?), ?([A-Z]{2})(?:[^A-Za-z]|$)`),
		regexp.MustCompile(`([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?), ?([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)?)`),
	}

	summaryFallbackPattern = regexp.MustCompile(`(?is)(?:professional\s+summary|summary|objective|profile)\s*[:\-]?\s*\n?(.+?)(?:\n\s*\n|\z)`)
)

// FieldExtractor 从归一化文本中抽取结构化候选人字段
// 所有启发式都是确定性的：同一输入永远产出同一记录
type FieldExtractor struct {
	vocab     *vocab.Vocabulary
	segmenter *SectionSegmenter

	skillMatchers []skillMatcher
	certPatterns  []*regexp.Regexp

	summaryMaxLen     int
	descriptionMaxLen int
	excerptLen        int

	// now 用于解析 "2021 - Present" 这类区间，测试中可注入固定时钟
	now func() time.Time
}

// FieldOption 字段提取器的配置选项
type FieldOption func(*FieldExtractor)

// WithSummaryMaxLength 配置简介的最大长度
func WithSummaryMaxLength(n int) FieldOption {
	return func(f *FieldExtractor) {
		if n > 0 {
			f.summaryMaxLen = n
		}
	}
}

// WithDescriptionMaxLength 配置工作描述的最大长度
func WithDescriptionMaxLength(n int) FieldOption {
	return func(f *FieldExtractor) {
		if n > 0 {
			f.descriptionMaxLen = n
		}
	}
}

// WithExcerptLength 配置原始文本摘录的长度
func WithExcerptLength(n int) FieldOption {
	return func(f *FieldExtractor) {
		if n > 0 {
			f.excerptLen = n
		}
	}
}

// WithClock 注入时钟，默认为 time.Now
func WithClock(now func() time.Time) FieldOption {
	return func(f *FieldExtractor) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFieldExtractor 创建字段提取器并预编译词表相关的模式
func NewFieldExtractor(v *vocab.Vocabulary, options ...FieldOption) *FieldExtractor {
	if v == nil {
		v = vocab.Default()
	}

	f := &FieldExtractor{
		vocab:             v,
		segmenter:         NewSectionSegmenter(v),
		summaryMaxLen:     500,
		descriptionMaxLen: 200,
		excerptLen:        500,
		now:               time.Now,
	}

	for _, option := range options {
		option(f)
	}

	f.skillMatchers = buildSkillMatchers(v)
	f.certPatterns = compileCertPatterns(v)
	return f
}

// ExtractRecord 执行全部字段启发式，产出候选人记录
// 缺失的字段以零值或占位符表示，永远不返回错误
func (f *FieldExtractor) ExtractRecord(text *types.ExtractedText) *types.CandidateRecord {
	sections := f.segmenter.Segment(text)

	record := &types.CandidateRecord{
		Name:     f.extractName(text.Lines),
		Email:    f.extractEmail(text.Raw),
		Phone:    f.extractPhone(text.Raw),
		Location: f.extractLocation(text.Raw),
		Summary:  f.extractSummary(text, sections),
	}

	record.TechnicalSkills, record.SoftSkills = f.extractSkills(text, sections)
	record.Skills = append(append([]string{}, record.TechnicalSkills...), record.SoftSkills...)

	record.WorkExperience = f.extractWorkExperience(text, sections)
	record.ExperienceYears = f.extractExperienceYears(text.Raw, record.WorkExperience)
	record.Education = f.extractEducation(text, sections)
	record.Certifications = f.extractCertifications(text, sections)
	record.RawTextExcerpt = truncateText(text.Raw, f.excerptLen)

	return record
}

// extractName 在开头几个非空行里找形如人名的行
// 包含联系方式或简历套话的行跳过；找不到时返回占位符
func (f *FieldExtractor) extractName(lines []string) string {
	scanned := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		scanned++
		if scanned > nameScanLines {
			break
		}

		if f.shouldSkipNameLine(trimmed) {
			continue
		}
		// 人名长度的合理区间
		if len(trimmed) < 6 || len(trimmed) >= 50 {
			continue
		}

		words := strings.Fields(trimmed)
		if len(words) < 2 || len(words) > 4 {
			continue
		}

		valid := true
		for _, word := range words {
			if !nameWordPattern.MatchString(word) {
				valid = false
				break
			}
		}
		if valid {
			return trimmed
		}
	}
	return types.NameNotFound
}

func (f *FieldExtractor) shouldSkipNameLine(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	for _, keyword := range f.vocab.NameSkipKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (f *FieldExtractor) extractEmail(raw string) string {
	return emailPattern.FindString(raw)
}

// extractPhone 按模式顺序找第一个数字位数达标的匹配
func (f *FieldExtractor) extractPhone(raw string) string {
	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(raw, -1) {
			if digitCount(match) >= minPhoneDigits {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

// extractLocation 只在文本开头的窗口内匹配 "城市, 地区" 形式
func (f *FieldExtractor) extractLocation(raw string) string {
	window := raw
	if runes := []rune(raw); len(runes) > locationScanWindow {
		window = string(runes[:locationScanWindow])
	}

	for _, pattern := range locationPatterns {
		if m := pattern.FindStringSubmatch(window); m != nil {
			return m[1] + ", " + strings.TrimSpace(m[2])
		}
	}
	return ""
}

// extractSummary 优先取简介节的内容，否则在全文做标题兜底匹配
func (f *FieldExtractor) extractSummary(text *types.ExtractedText, sections map[types.SectionKind]*types.Section) string {
	if section, ok := sections[types.SectionSummary]; ok && !section.IsEmpty() {
		return truncateText(section.Content(), f.summaryMaxLen)
	}

	if m := summaryFallbackPattern.FindStringSubmatch(text.Raw); m != nil {
		return truncateText(strings.TrimSpace(m[1]), f.summaryMaxLen)
	}
	return ""
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// truncateText 按字符数截断，保证不切断多字节字符
func truncateText(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
