package vocab // 提供抽取与匹配所依赖的静态词表，以注入的不可变配置形式存在

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SynonymEntry 规范技能及其可接受的拼写/缩写变体。
// 条目顺序即查找顺序，保证同义词解析结果可复现。
type SynonymEntry struct {
	Canonical string   `yaml:"canonical"` // 规范拼写（小写）
	Variants  []string `yaml:"variants"`  // 可接受的变体（小写）
}

// DegreeLevel 学历阶梯上的一个层级。
// Rank 从1开始单调递增，0保留给"未识别"。
type DegreeLevel struct {
	Label    string   `yaml:"label"`    // 规范标签，例如 "Bachelor"
	Rank     int      `yaml:"rank"`     // 序数位置
	Keywords []string `yaml:"keywords"` // 用于子串分类的关键词（小写）
}

// Vocabulary 全部静态词表的聚合。
// 按规格要求不再以包级全局状态存在，而是构造后注入各组件；
// 测试可以用小词表替换。加载后视为只读。
type Vocabulary struct {
	TechnicalSkills []string       `yaml:"technical_skills"` // 技术技能（小写，匹配顺序固定）
	SoftSkills      []string       `yaml:"soft_skills"`      // 软技能（小写，匹配顺序固定）
	Synonyms        []SynonymEntry `yaml:"synonyms"`         // 技能同义词表（顺序即优先级）
	DegreeLadder    []DegreeLevel  `yaml:"degree_ladder"`    // 学历阶梯（Rank升序排列）

	// 区块标题同义词（均为小写短语）
	SkillsHeaders         []string `yaml:"skills_headers"`
	ExperienceHeaders     []string `yaml:"experience_headers"`
	EducationHeaders      []string `yaml:"education_headers"`
	SummaryHeaders        []string `yaml:"summary_headers"`
	CertificationHeaders  []string `yaml:"certification_headers"`
	NameSkipKeywords      []string `yaml:"name_skip_keywords"`     // 姓名扫描时跳过的行关键词
	CertificationPatterns []string `yaml:"certification_patterns"` // 证书匹配的正则来源（顺序固定）
}

// Default 返回编译期内置的默认词表。
// 每次调用产生独立副本，调用方可安全持有。
func Default() *Vocabulary {
	return &Vocabulary{
		TechnicalSkills: []string{
			"python", "javascript", "react", "node.js", "java", "c++", "sql", "mongodb",
			"aws", "docker", "kubernetes", "git", "linux", "html", "css", "typescript",
			"angular", "vue", "django", "flask", "fastapi", "spring", "express",
			"machine learning", "data science", "pandas", "numpy", "tensorflow",
			"pytorch", "scikit-learn", "tableau", "power bi", "excel", "matlab", "go",
			"rust", "redis", "postgresql", "graphql", "terraform",
		},
		SoftSkills: []string{
			"leadership", "communication", "teamwork", "problem solving", "project management",
			"time management", "adaptability", "creativity", "critical thinking", "analytical",
			"collaboration", "mentoring", "presentation", "negotiation", "strategic thinking",
		},
		Synonyms: []SynonymEntry{
			{Canonical: "javascript", Variants: []string{"js", "javascript", "ecmascript"}},
			{Canonical: "typescript", Variants: []string{"ts", "typescript"}},
			{Canonical: "python", Variants: []string{"python", "python3", "py"}},
			{Canonical: "kubernetes", Variants: []string{"kubernetes", "k8s"}},
			{Canonical: "postgresql", Variants: []string{"postgresql", "postgres", "psql"}},
			{Canonical: "machine learning", Variants: []string{"machine learning", "ml"}},
			{Canonical: "node.js", Variants: []string{"node.js", "node", "nodejs"}},
			{Canonical: "aws", Variants: []string{"aws", "amazon web services"}},
			{Canonical: "c++", Variants: []string{"c++", "cpp"}},
			{Canonical: "go", Variants: []string{"go", "golang"}},
		},
		DegreeLadder: []DegreeLevel{
			{Label: "High School", Rank: 1, Keywords: []string{"high school", "secondary school"}},
			{Label: "Diploma", Rank: 2, Keywords: []string{"diploma", "certificate", "certification"}},
			{Label: "Associate", Rank: 3, Keywords: []string{"associate", "a.s", "a.a"}},
			// 裸的两字母缩写（ms/ba等）会在普通词里误命中，只保留带点形式
			{Label: "Bachelor", Rank: 4, Keywords: []string{"bachelor", "b.tech", "b.e", "b.s", "b.a", "undergraduate"}},
			{Label: "Master", Rank: 5, Keywords: []string{"master", "mba", "m.tech", "m.e", "m.s", "m.a", "postgraduate"}},
			{Label: "PhD", Rank: 6, Keywords: []string{"phd", "ph.d", "doctorate", "doctoral"}},
		},
		SkillsHeaders: []string{
			"skills", "technical skills", "core competencies",
		},
		ExperienceHeaders: []string{
			"experience", "work experience", "professional experience", "employment history",
		},
		EducationHeaders: []string{
			"education", "academic background", "qualifications",
		},
		SummaryHeaders: []string{
			"summary", "objective", "profile", "professional summary",
		},
		CertificationHeaders: []string{
			"certifications", "certificates", "licenses",
		},
		NameSkipKeywords: []string{
			"resume", "cv", "email", "phone", "address", "objective", "summary", "profile",
		},
		CertificationPatterns: []string{
			`(?i)\b(?:aws|azure|google cloud|gcp)\s+certified[\w\s-]*?(?:architect|developer|engineer|practitioner|administrator)`,
			`\b(?:PMP|PRINCE2|CAPM|CSM|PMI-ACP)\b`,
			`\b(?:CISSP|CISM|CISA|CEH|OSCP|CCNA|CCNP)\b`,
			`(?i)\bcertified\s+[\w\s]+?\s+(?:professional|specialist|expert|associate)\b`,
		},
	}
}

// Load 从YAML文件加载词表覆盖，未给出的字段回落到默认词表。
// 用于测试替换与部署时的词表定制。
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词表文件失败: %w", err)
	}

	v := Default()
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("解析词表文件失败: %w", err)
	}
	return v, nil
}

// ClassifyDegree 将任意学历描述映射到阶梯上的层级。
// 按Rank从高到低做大小写不敏感的子串分类，先命中先得，
// 显式的遍历顺序保证了平局裁决的确定性。
// 未识别时返回零值层级（Rank 0）。
func (v *Vocabulary) ClassifyDegree(text string) DegreeLevel {
	lower := strings.ToLower(text)
	for i := len(v.DegreeLadder) - 1; i >= 0; i-- {
		level := v.DegreeLadder[i]
		for _, kw := range level.Keywords {
			if strings.Contains(lower, kw) {
				return level
			}
		}
	}
	return DegreeLevel{}
}

// CanonicalSkill 对原始技能词条做同义词解析。
// 仅做大小写不敏感的整词精确匹配，不做模糊或子串匹配：
// 子串误报比漏掉同义词的代价更高。
// 返回规范拼写（小写）和是否命中。
func (v *Vocabulary) CanonicalSkill(raw string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", false
	}
	for _, entry := range v.Synonyms {
		for _, variant := range entry.Variants {
			if token == variant {
				return entry.Canonical, true
			}
		}
	}
	return "", false
}

// HighestDegree 返回一组教育经历中最高的已识别学历层级
func (v *Vocabulary) HighestDegree(degrees []string) DegreeLevel {
	var best DegreeLevel
	for _, d := range degrees {
		if level := v.ClassifyDegree(d); level.Rank > best.Rank {
			best = level
		}
	}
	return best
}
