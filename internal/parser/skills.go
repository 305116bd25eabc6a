package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/types"
	"resume-match-go/internal/vocab"
)

// skillMatcher 单个词表技能的预编译匹配器
type skillMatcher struct {
	canonical string
	technical bool
	re        *regexp.Regexp
}

// buildSkillMatchers 为词表中的每个技能编译整词匹配模式。
// 边界字符类把 '+' '#' 视为词内字符，这样 "c++11" 不会命中 "c++"；
// 点号留作边界，否则句末的 "Go." 无法命中。
func buildSkillMatchers(v *vocab.Vocabulary) []skillMatcher {
	matchers := make([]skillMatcher, 0, len(v.TechnicalSkills)+len(v.SoftSkills))
	for _, skill := range v.TechnicalSkills {
		matchers = append(matchers, skillMatcher{
			canonical: skill,
			technical: true,
			re:        compileSkillPattern(skill),
		})
	}
	for _, skill := range v.SoftSkills {
		matchers = append(matchers, skillMatcher{
			canonical: skill,
			technical: false,
			re:        compileSkillPattern(skill),
		})
	}
	return matchers
}

func compileSkillPattern(skill string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9+#])` + regexp.QuoteMeta(skill) + `(?:[^a-z0-9+#]|$)`)
}

// extractSkills 做词表扫描：优先在技能节内匹配，没有技能节时退回全文，
// 避免经历描述里顺带提到的工具混入技能集合。
// 结果按词表顺序排列并转为标题格式，保证同一份简历产出稳定。
func (f *FieldExtractor) extractSkills(text *types.ExtractedText, sections map[types.SectionKind]*types.Section) (technical, soft []string) {
	source := text.Raw
	if section, ok := sections[types.SectionSkills]; ok && !section.IsEmpty() {
		source = section.Content()
	}

	for _, m := range f.skillMatchers {
		if m.re.MatchString(source) {
			if m.technical {
				technical = append(technical, titleCase(m.canonical))
			} else {
				soft = append(soft, titleCase(m.canonical))
			}
		}
	}
	return technical, soft
}

// compileCertPatterns 编译词表中的证书模式，顺序即尝试顺序
func compileCertPatterns(v *vocab.Vocabulary) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(v.CertificationPatterns))
	for _, src := range v.CertificationPatterns {
		patterns = append(patterns, regexp.MustCompile(src))
	}
	return patterns
}

// extractCertifications 优先在证书节内匹配，没有证书节时退回全文
func (f *FieldExtractor) extractCertifications(text *types.ExtractedText, sections map[types.SectionKind]*types.Section) []string {
	source := text.Raw
	if section, ok := sections[types.SectionCertifications]; ok && !section.IsEmpty() {
		source = section.Content()
	}

	var certs []string
	seen := make(map[string]bool)
	for _, pattern := range f.certPatterns {
		for _, match := range pattern.FindAllString(source, -1) {
			cleaned := strings.TrimSpace(match)
			key := strings.ToLower(cleaned)
			if cleaned == "" || seen[key] {
				continue
			}
			seen[key] = true
			certs = append(certs, cleaned)
		}
	}
	return certs
}

// titleCase 把小写词表词条转为标题格式，仅大写每个空格分隔词的首字母
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 && runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] = runes[0] - 'a' + 'A'
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
