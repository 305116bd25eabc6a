package processor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"resume-match-go/internal/types"
)

// WriteJSON 以缩进JSON输出批处理结果
func (r *BatchResult) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteReport 输出人类可读的文本报告。
// 条目顺序与 Items 一致：评分批次即总分降序。
func (r *BatchResult) WriteReport(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("==== 简历批处理报告 ====\n")
	fmt.Fprintf(&sb, "生成时间: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "文档总数: %d, 成功: %d, 失败: %d\n\n", r.Total, r.Succeeded, r.Failed)

	for i, item := range r.Items {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, item.Path)
		if item.Error != "" {
			fmt.Fprintf(&sb, "    处理失败: %s\n\n", item.Error)
			continue
		}

		fmt.Fprintf(&sb, "    候选人: %s\n", item.Record.Name)
		if item.Record.Email != "" {
			fmt.Fprintf(&sb, "    邮箱: %s\n", item.Record.Email)
		}
		fmt.Fprintf(&sb, "    技能: %s\n", joinOrPlaceholder(item.Record.Skills))
		fmt.Fprintf(&sb, "    工作年限: %d\n", item.Record.ExperienceYears)

		if item.Match != nil {
			fmt.Fprintf(&sb, "    总分: %.1f%% (%s)\n", item.Match.OverallPercent, item.Match.Recommendation)
			fmt.Fprintf(&sb, "    分量: 技能 %.2f / 年限 %.2f / 学历 %.2f / 地点 %.2f\n",
				item.Match.SkillScore, item.Match.ExperienceScore,
				item.Match.EducationScore, item.Match.LocationScore)
			fmt.Fprintf(&sb, "    理由: %s\n", item.Match.Reasoning)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteRecordJSON 输出单条候选人记录
func WriteRecordJSON(w io.Writer, record *types.CandidateRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}

// WriteMatchJSON 输出单次匹配结果（候选人记录加匹配明细）
func WriteMatchJSON(w io.Writer, record *types.CandidateRecord, match *types.MatchResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Record *types.CandidateRecord `json:"record"`
		Match  *types.MatchResult     `json:"match"`
	}{record, match})
}

func joinOrPlaceholder(values []string) string {
	if len(values) == 0 {
		return "(无)"
	}
	return strings.Join(values, ", ")
}
