package types // 定义了简历解析与人岗匹配流程中共享的核心数据类型

import "strings"

// DocumentFormat 支持的文档格式枚举
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"  // PDF文档
	FormatDOCX DocumentFormat = "docx" // Word流式文档
	FormatTXT  DocumentFormat = "txt"  // 纯文本
)

// NameNotFound 姓名提取失败时使用的哨兵值
const NameNotFound = "Not Found"

// DegreeNotSpecified 未识别到任何学历时的占位学历标签
const DegreeNotSpecified = "Not specified"

// RawDocument 原始文档：不可变的字节缓冲加格式标签。
// 在摄取时创建，被文本提取器消费一次后即丢弃。
type RawDocument struct {
	Data       []byte         // 文档原始字节
	Format     DocumentFormat // 声明的格式标签
	SourcePath string         // 来源路径（仅用于日志与结果标注）
}

// ExtractedText 提取后的线性文本：UTF-8、行尾已归一化。
// 由单次流水线运行独占，创建后不再修改。
type ExtractedText struct {
	Raw   string   // 完整文本
	Lines []string // 按行切分的视图
}

// NewExtractedText 归一化行尾并构建行视图
func NewExtractedText(raw string) *ExtractedText {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return &ExtractedText{
		Raw:   normalized,
		Lines: strings.Split(normalized, "\n"),
	}
}

// SectionKind 可识别的简历区块类型（封闭集合）
type SectionKind string

const (
	SectionSkills         SectionKind = "SKILLS"         // 技能区块
	SectionExperience     SectionKind = "EXPERIENCE"     // 工作经历区块
	SectionEducation      SectionKind = "EDUCATION"      // 教育背景区块
	SectionSummary        SectionKind = "SUMMARY"        // 个人摘要区块
	SectionCertifications SectionKind = "CERTIFICATIONS" // 证书区块
)

// Section 一个启发式切分出的简历区块：
// 区块名加上其标题行之后、直到下一个疑似标题行为止的连续行。
// 同一类型的区块只取文档中出现的第一个。
type Section struct {
	Kind  SectionKind // 区块类型
	Lines []string    // 区块内容行（不含标题行）
}

// Content 将区块内容行拼接为单个字符串
func (s *Section) Content() string {
	if s == nil {
		return ""
	}
	return strings.Join(s.Lines, "\n")
}

// IsEmpty 判断区块是否为空（未找到匹配标题时返回空区块）
func (s *Section) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}

// WorkExperienceEntry 单段工作经历
type WorkExperienceEntry struct {
	Period        string  `json:"period"`                // 原始时间段文本，例如 "2020-2023"
	DurationYears float64 `json:"duration_years"`        // 推断出的持续年数，>=0
	Role          string  `json:"role,omitempty"`        // 职位（启发式，可能为空）
	Company       string  `json:"company,omitempty"`     // 公司（启发式，可能为空）
	Description   string  `json:"description,omitempty"` // 描述，截断到固定上限
}

// EducationEntry 单条教育经历
type EducationEntry struct {
	Degree      string `json:"degree"`                // 学历阶梯上的规范标签
	Institution string `json:"institution,omitempty"` // 院校名称（可选）
	Year        int    `json:"year,omitempty"`        // 4位年份，1900-当前年，0表示未知
}

// CandidateRecord 从单份文档中抽取出的候选人结构化记录。
// 不变式：Skills 集合中只包含来自词表的规范化技能词条，
// 原始文本片段绝不进入该集合。
type CandidateRecord struct {
	Name            string                `json:"name"`             // 姓名，允许 "Not Found" 哨兵
	Email           string                `json:"email"`            // 邮箱，未找到为空
	Phone           string                `json:"phone"`            // 电话，未找到为空
	Location        string                `json:"location"`         // 地点 "City, Region"，未找到为空
	Summary         string                `json:"summary"`          // 个人摘要，长度有界
	Skills          []string              `json:"skills"`           // 规范化技能全集（去重、标题大小写）
	TechnicalSkills []string              `json:"technical_skills"` // 技术技能子集
	SoftSkills      []string              `json:"soft_skills"`      // 软技能子集
	ExperienceYears int                   `json:"experience_years"` // 工作年限，>=0
	WorkExperience  []WorkExperienceEntry `json:"work_experience"`  // 按文档顺序的工作经历
	Education       []EducationEntry      `json:"education"`        // 按文档顺序的教育经历
	Certifications  []string              `json:"certifications"`   // 证书集合（去重）
	RawTextExcerpt  string                `json:"raw_text_excerpt"` // 原始文本摘录（前500字符）
}

// HasSkill 判断候选人是否持有指定技能（大小写不敏感）
func (c *CandidateRecord) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// JobRequirement 岗位要求记录
type JobRequirement struct {
	Title             string   `json:"title,omitempty"`        // 岗位名称（仅用于叙述与报告）
	RequiredSkills    []string `json:"required_skills"`        // 必备技能
	MinExperience     int      `json:"min_experience"`         // 最低年限，0表示未指定
	RequiredEducation string   `json:"required_education"`     // 学历要求，空或不可识别表示未指定
	Location          string   `json:"location,omitempty"`     // 岗位地点（可选）
	Requirements      []string `json:"requirements,omitempty"` // 自由文本要求，仅用于提取内嵌的学历提示
}

// SkillDetails 技能匹配明细
type SkillDetails struct {
	MatchedSkills []string `json:"matched_skills"` // 命中的必备技能
	MissingSkills []string `json:"missing_skills"` // 缺失的必备技能
	TotalRequired int      `json:"total_required"` // 必备技能总数
	TotalMatched  int      `json:"total_matched"`  // 命中数量
}

// ExperienceDetails 年限匹配明细
type ExperienceDetails struct {
	Required         int  `json:"required"`          // 要求年限
	Candidate        int  `json:"candidate"`         // 候选人年限
	MeetsRequirement bool `json:"meets_requirement"` // 是否达标
}

// EducationDetails 学历匹配明细
type EducationDetails struct {
	CandidateLevel int    `json:"candidate_level"` // 候选人在学历阶梯上的序数
	RequiredLevel  int    `json:"required_level"`  // 要求的序数，0表示未指定
	CandidateLabel string `json:"candidate_label"` // 候选人最高学历标签
	RequiredLabel  string `json:"required_label"`  // 要求的学历标签
}

// MatchResult 候选人与岗位的匹配结果。
// 每个(候选人, 岗位)组合生成一个全新的结果，生成后不再修改；
// 对相同输入重复计算必须产生完全一致的结果。
type MatchResult struct {
	SkillScore        float64           `json:"skill_score"`        // 技能分量 [0,1]
	SkillDetails      SkillDetails      `json:"skill_details"`      // 技能明细
	ExperienceScore   float64           `json:"experience_score"`   // 年限分量 [0,1]
	ExperienceDetails ExperienceDetails `json:"experience_details"` // 年限明细
	EducationScore    float64           `json:"education_score"`    // 学历分量 [0,1]
	EducationDetails  EducationDetails  `json:"education_details"`  // 学历明细
	LocationScore     float64           `json:"location_score"`     // 地点分量 [0,1]
	OverallScore      float64           `json:"overall_score"`      // 加权总分 [0,1]
	OverallPercent    float64           `json:"overall_percent"`    // 总分的0-100表示
	Recommendation    string            `json:"recommendation"`     // 推荐档位
	Reasoning         string            `json:"reasoning"`          // 评分理由（确定性或外部叙述服务生成）
}
