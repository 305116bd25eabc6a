package tracing

import (
	"strings"
)

const (
	// DefaultMaxLength 默认最大属性长度
	DefaultMaxLength = 200

	// MaxDocumentPathLength 文档路径最大长度
	MaxDocumentPathLength = 120

	// MaxResumeLength 简历内容最大长度
	MaxResumeLength = 150

	// MaxReasoningLength 评分理由最大长度
	MaxReasoningLength = 200
)

// maskPIILookup 需要掩码处理的属性名关键字
var maskPIILookup = map[string]bool{
	"email":   true,
	"phone":   true,
	"name":    true,
	"address": true,
	"姓名":      true,
	"地址":      true,
	"电话":      true,
	"邮箱":      true,
}

// SafeAttributeValue 确保span属性值安全：
// 1. 属性名命中敏感关键字时返回掩码后的值
// 2. 长度超过maxLength时截断并添加省略号
func SafeAttributeValue(name string, value string, maxLength int) string {
	lowerName := strings.ToLower(name)
	for keyword := range maskPIILookup {
		if strings.Contains(lowerName, keyword) {
			return MaskPII(value)
		}
	}

	return TruncateString(value, maxLength)
}

// MaskPII 对个人敏感信息进行掩码处理。
// 短值只保留首尾各一个字符，长值保留前后各两个字符。
func MaskPII(value string) string {
	if value == "" {
		return ""
	}

	runes := []rune(value)
	length := len(runes)

	if length <= 1 {
		return "*"
	}
	if length <= 4 {
		if length == 2 {
			return string(runes[0:1]) + "*"
		}
		return string(runes[0:1]) + strings.Repeat("*", length-2) + string(runes[length-1:])
	}

	// "myemail@example.com" -> "my***************om"
	return string(runes[0:2]) + strings.Repeat("*", length-4) + string(runes[length-2:])
}

// TruncateString 截断字符串，保留前后部分，中间用...连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}

	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// SafeDocumentPath 安全处理文档路径
func SafeDocumentPath(path string) string {
	return TruncateString(path, MaxDocumentPathLength)
}

// SafeResumeContent 安全处理简历内容片段
func SafeResumeContent(content string) string {
	return TruncateString(content, MaxResumeLength)
}
