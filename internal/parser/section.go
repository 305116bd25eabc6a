package parser

import (
	"strings"

	"resume-match-go/internal/types"
	"resume-match-go/internal/vocab"
)

// maxHeaderLineLength 超过该长度的行不会被当作节标题
const maxHeaderLineLength = 50

// SectionSegmenter 基于标题启发式把简历文本切分为语义节
type SectionSegmenter struct {
	vocab *vocab.Vocabulary
	// kindOrder 同一行命中多个节别名时的判定顺序，顺序即契约
	kindOrder []types.SectionKind
}

// NewSectionSegmenter 创建节切分器，词表为空时使用内置默认表
func NewSectionSegmenter(v *vocab.Vocabulary) *SectionSegmenter {
	if v == nil {
		v = vocab.Default()
	}
	return &SectionSegmenter{
		vocab: v,
		kindOrder: []types.SectionKind{
			types.SectionSkills,
			types.SectionExperience,
			types.SectionEducation,
			types.SectionSummary,
			types.SectionCertifications,
		},
	}
}

// Segment 切分全部行，返回按节类型索引的结果
// 同类节出现多次时只保留第一个，后续标题只作为前一节的终止边界
func (s *SectionSegmenter) Segment(text *types.ExtractedText) map[types.SectionKind]*types.Section {
	sections := make(map[types.SectionKind]*types.Section)

	var current *types.Section
	for _, line := range text.Lines {
		trimmed := strings.TrimSpace(line)

		if kind, ok := s.headerKind(trimmed); ok {
			if _, seen := sections[kind]; seen {
				// 重复标题：结束当前节但不覆盖已有内容
				current = nil
				continue
			}
			current = &types.Section{Kind: kind}
			sections[kind] = current
			continue
		}

		// 未知的全大写短行很可能是词表之外的节标题，作为边界处理
		if current != nil && looksLikeForeignHeader(trimmed) {
			current = nil
			continue
		}

		if current != nil && trimmed != "" {
			current.Lines = append(current.Lines, trimmed)
		}
	}

	return sections
}

// headerKind 判断一行是否为已知节的标题
// 标题须短于 maxHeaderLineLength 且包含该节的任一别名（不区分大小写）
func (s *SectionSegmenter) headerKind(trimmed string) (types.SectionKind, bool) {
	if trimmed == "" || len(trimmed) >= maxHeaderLineLength {
		return "", false
	}

	lower := strings.ToLower(trimmed)
	for _, kind := range s.kindOrder {
		for _, alias := range s.headerAliases(kind) {
			if strings.Contains(lower, alias) {
				return kind, true
			}
		}
	}
	return "", false
}

func (s *SectionSegmenter) headerAliases(kind types.SectionKind) []string {
	switch kind {
	case types.SectionSkills:
		return s.vocab.SkillsHeaders
	case types.SectionExperience:
		return s.vocab.ExperienceHeaders
	case types.SectionEducation:
		return s.vocab.EducationHeaders
	case types.SectionSummary:
		return s.vocab.SummaryHeaders
	case types.SectionCertifications:
		return s.vocab.CertificationHeaders
	default:
		return nil
	}
}

// looksLikeForeignHeader 识别词表未覆盖的节标题，作为内容终止边界：
// 全大写行，或大写开头且行内带冒号的行。
// 例如 "REFERENCES"、"Projects: shipped an internal tool"。
func looksLikeForeignHeader(trimmed string) bool {
	if trimmed == "" || len(trimmed) >= maxHeaderLineLength {
		return false
	}

	// 全大写行。含逗号的放行："AWS, SQL, CSS" 这类全大写技能列表
	// 是节内容而不是标题，少于3个大写字母的行（"C++"、年份区间）同理。
	if !strings.Contains(trimmed, ",") {
		letters := 0
		for _, r := range trimmed {
			if r >= 'a' && r <= 'z' {
				letters = 0
				break
			}
			if r >= 'A' && r <= 'Z' {
				letters++
			}
		}
		if letters >= 3 {
			return true
		}
	}

	// 大写开头、行内带冒号，例如 "Projects:" 或 "Projects: shipped a tool"
	if strings.Contains(trimmed, ":") {
		first := rune(trimmed[0])
		if first >= 'A' && first <= 'Z' {
			return true
		}
	}
	return false
}
