package matching

import (
	"fmt"
	"strings"

	"resume-match-go/internal/types"
)

// 理由语句的分量阈值：>0.7 为强，>0.4 为部分，其余为弱
const (
	reasoningStrong  = 0.7
	reasoningPartial = 0.4
)

// BuildReasoning 从分量得分生成确定性的评分理由。
// 固定措辞、固定顺序、分号连接，作为叙述服务不可用时的唯一兜底。
func BuildReasoning(result *types.MatchResult) string {
	var parts []string

	switch {
	case result.SkillScore > reasoningStrong:
		parts = append(parts, "Strong skills match")
	case result.SkillScore > reasoningPartial:
		parts = append(parts, "Partial skills match")
	default:
		parts = append(parts, "Limited skills match")
	}
	if result.SkillDetails.TotalRequired > 0 {
		parts = append(parts, fmt.Sprintf("matched %d of %d required skills",
			result.SkillDetails.TotalMatched, result.SkillDetails.TotalRequired))
	}

	switch {
	case result.ExperienceScore > reasoningStrong:
		parts = append(parts, "Meets experience requirements")
	case result.ExperienceScore > reasoningPartial:
		parts = append(parts, "Close to experience requirements")
	default:
		parts = append(parts, "Below experience requirements")
	}

	switch {
	case result.EducationScore > reasoningStrong:
		parts = append(parts, "Education requirement satisfied")
	case result.EducationScore > reasoningPartial:
		parts = append(parts, "Education partially meets requirement")
	default:
		parts = append(parts, "Education below requirement")
	}

	if result.LocationScore > reasoningStrong {
		parts = append(parts, "Location compatible")
	}

	return strings.Join(parts, "; ")
}
