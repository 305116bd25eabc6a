package matching // 确定性的多因子人岗匹配引擎

import (
	"math"
	"strings"

	"resume-match-go/internal/types"
	"resume-match-go/internal/vocab"
)

// 推荐档位。按总分百分比从高到低判定。
const (
	TierStrong  = "Strong Match"
	TierGood    = "Good Match"
	TierPartial = "Partial Match"
	TierWeak    = "Weak Match"
)

// neutralScore 信息缺失时使用的中性分：不奖励也不惩罚
const neutralScore = 0.5

// 技能加分参数：超出必备集合的技能每个加0.05，封顶0.2
const (
	extraSkillBonus    = 0.05
	extraSkillBonusCap = 0.2
)

// WeightProfile 各分量的权重配置。
// 权重之和应为1；ForceNeutralLocation 时地点分量恒为中性分。
type WeightProfile struct {
	Name                 string  `yaml:"name"`
	Skills               float64 `yaml:"skills"`
	Experience           float64 `yaml:"experience"`
	Education            float64 `yaml:"education"`
	Location             float64 `yaml:"location"`
	ForceNeutralLocation bool    `yaml:"force_neutral_location"`
}

// ProfileGeneral 通用画像：技能0.40 / 年限0.30 / 学历0.20 / 地点0.10
func ProfileGeneral() WeightProfile {
	return WeightProfile{
		Name:       "general",
		Skills:     0.40,
		Experience: 0.30,
		Education:  0.20,
		Location:   0.10,
	}
}

// ProfileSelfService 自助画像：技能权重更高，地点恒为中性
// （自助场景下候选人填报的地点不可靠）
func ProfileSelfService() WeightProfile {
	return WeightProfile{
		Name:                 "self_service",
		Skills:               0.50,
		Experience:           0.25,
		Education:            0.15,
		Location:             0.10,
		ForceNeutralLocation: true,
	}
}

// Engine 匹配引擎。纯函数式：不持有可变状态，
// 同一(候选人, 岗位)输入永远产出相同结果。
type Engine struct {
	vocab   *vocab.Vocabulary
	profile WeightProfile
}

// EngineOption 匹配引擎的配置选项
type EngineOption func(*Engine)

// WithProfile 配置权重画像
func WithProfile(p WeightProfile) EngineOption {
	return func(e *Engine) {
		e.profile = p
	}
}

// NewEngine 创建匹配引擎，默认使用通用权重画像
func NewEngine(v *vocab.Vocabulary, options ...EngineOption) *Engine {
	if v == nil {
		v = vocab.Default()
	}
	e := &Engine{
		vocab:   v,
		profile: ProfileGeneral(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Profile 返回引擎当前使用的权重画像
func (e *Engine) Profile() WeightProfile {
	return e.profile
}

// Match 计算候选人对岗位的完整匹配结果
func (e *Engine) Match(candidate *types.CandidateRecord, job *types.JobRequirement) *types.MatchResult {
	result := &types.MatchResult{}

	result.SkillScore, result.SkillDetails = e.scoreSkills(candidate, job)
	result.ExperienceScore, result.ExperienceDetails = e.scoreExperience(candidate, job)
	result.EducationScore, result.EducationDetails = e.scoreEducation(candidate, job)
	result.LocationScore = e.scoreLocation(candidate, job)
	if e.profile.ForceNeutralLocation {
		result.LocationScore = neutralScore
	}

	overall := result.SkillScore*e.profile.Skills +
		result.ExperienceScore*e.profile.Experience +
		result.EducationScore*e.profile.Education +
		result.LocationScore*e.profile.Location
	result.OverallScore = clamp01(overall)
	result.OverallPercent = result.OverallScore * 100
	result.Recommendation = RecommendationForPercent(result.OverallPercent)
	result.Reasoning = BuildReasoning(result)

	return result
}

// scoreSkills 技能分量。
// 必备集合为空时返回中性分；否则以命中比例为基数，
// 超出必备集合的额外技能按固定步长加分并封顶，总分不超过1。
func (e *Engine) scoreSkills(candidate *types.CandidateRecord, job *types.JobRequirement) (float64, types.SkillDetails) {
	details := types.SkillDetails{
		MatchedSkills: []string{},
		MissingSkills: []string{},
		TotalRequired: len(job.RequiredSkills),
	}

	if len(job.RequiredSkills) == 0 {
		return neutralScore, details
	}

	for _, required := range job.RequiredSkills {
		if e.candidateHasSkill(candidate, required) {
			details.MatchedSkills = append(details.MatchedSkills, required)
		} else {
			details.MissingSkills = append(details.MissingSkills, required)
		}
	}
	details.TotalMatched = len(details.MatchedSkills)

	base := float64(details.TotalMatched) / float64(details.TotalRequired)
	extra := len(candidate.Skills) - details.TotalMatched
	if extra < 0 {
		extra = 0
	}
	bonus := math.Min(float64(extra)*extraSkillBonus, extraSkillBonusCap)

	return math.Min(base+bonus, 1.0), details
}

// candidateHasSkill 先做大小写不敏感的直接比对，再经同义词表归一后比对
func (e *Engine) candidateHasSkill(candidate *types.CandidateRecord, required string) bool {
	if candidate.HasSkill(required) {
		return true
	}

	requiredCanonical, ok := e.vocab.CanonicalSkill(required)
	if !ok {
		return false
	}
	for _, skill := range candidate.Skills {
		if canonical, ok := e.vocab.CanonicalSkill(skill); ok && canonical == requiredCanonical {
			return true
		}
	}
	return false
}

// scoreExperience 年限分量。
// 未指定要求时返回中性分；达标得满分，否则按比例线性给分。
func (e *Engine) scoreExperience(candidate *types.CandidateRecord, job *types.JobRequirement) (float64, types.ExperienceDetails) {
	details := types.ExperienceDetails{
		Required:  job.MinExperience,
		Candidate: candidate.ExperienceYears,
	}

	if job.MinExperience <= 0 {
		details.MeetsRequirement = true
		return neutralScore, details
	}

	if candidate.ExperienceYears >= job.MinExperience {
		details.MeetsRequirement = true
		return 1.0, details
	}
	return float64(candidate.ExperienceYears) / float64(job.MinExperience), details
}

// scoreEducation 学历分量。
// 要求侧先看显式学历字段，不可识别时在自由文本要求里找提示并取最高；
// 仍无法识别时返回中性分。候选人达到或超过要求得满分，
// 否则按阶梯序数比例给分。
func (e *Engine) scoreEducation(candidate *types.CandidateRecord, job *types.JobRequirement) (float64, types.EducationDetails) {
	var candidateDegrees []string
	for _, edu := range candidate.Education {
		candidateDegrees = append(candidateDegrees, edu.Degree)
	}
	candidateLevel := e.vocab.HighestDegree(candidateDegrees)

	requiredLevel := e.vocab.ClassifyDegree(job.RequiredEducation)
	if requiredLevel.Rank == 0 {
		for _, req := range job.Requirements {
			if level := e.vocab.ClassifyDegree(req); level.Rank > requiredLevel.Rank {
				requiredLevel = level
			}
		}
	}

	details := types.EducationDetails{
		CandidateLevel: candidateLevel.Rank,
		RequiredLevel:  requiredLevel.Rank,
		CandidateLabel: candidateLevel.Label,
		RequiredLabel:  requiredLevel.Label,
	}

	if requiredLevel.Rank == 0 {
		return neutralScore, details
	}
	if candidateLevel.Rank >= requiredLevel.Rank {
		return 1.0, details
	}
	return float64(candidateLevel.Rank) / float64(requiredLevel.Rank), details
}

// scoreLocation 地点分量，规则按声明顺序短路：
// 任一侧未指定0.5；完全相等1.0；逗号分段有交集0.8；
// 岗位是远程0.7；其余0.3。
func (e *Engine) scoreLocation(candidate *types.CandidateRecord, job *types.JobRequirement) float64 {
	candLoc := strings.TrimSpace(candidate.Location)
	jobLoc := strings.TrimSpace(job.Location)

	if candLoc == "" || jobLoc == "" {
		return neutralScore
	}
	if strings.EqualFold(candLoc, jobLoc) {
		return 1.0
	}
	if locationPartsOverlap(candLoc, jobLoc) {
		return 0.8
	}
	lower := strings.ToLower(jobLoc)
	if strings.Contains(lower, "remote") || strings.Contains(lower, "anywhere") {
		return 0.7
	}
	return 0.3
}

func locationPartsOverlap(a, b string) bool {
	for _, pa := range strings.Split(a, ",") {
		pa = strings.TrimSpace(pa)
		if pa == "" {
			continue
		}
		for _, pb := range strings.Split(b, ",") {
			if strings.EqualFold(pa, strings.TrimSpace(pb)) {
				return true
			}
		}
	}
	return false
}

// RecommendationForPercent 按百分比阈值判定推荐档位
func RecommendationForPercent(percent float64) string {
	switch {
	case percent >= 80:
		return TierStrong
	case percent >= 60:
		return TierGood
	case percent >= 40:
		return TierPartial
	default:
		return TierWeak
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
