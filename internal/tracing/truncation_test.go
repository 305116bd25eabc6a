package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMaskPII 掩码只保留首尾字符
func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "a*", MaskPII("ab"))
	assert.Equal(t, "a**d", MaskPII("abcd"))
	assert.Equal(t, "my***************om", MaskPII("myemail@example.com"))
}

// TestSafeAttributeValue 敏感属性名触发掩码，普通属性只截断
func TestSafeAttributeValue(t *testing.T) {
	masked := SafeAttributeValue("resume.email", "jane@example.com", DefaultMaxLength)
	assert.NotContains(t, masked, "jane@example")
	assert.Contains(t, masked, "*")

	plain := SafeAttributeValue("resume.skill_count", "42", DefaultMaxLength)
	assert.Equal(t, "42", plain)
}

// TestTruncateString 超长字符串保留首尾并标记省略
func TestTruncateString(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, TruncateString(short, 10))

	long := strings.Repeat("x", 300)
	truncated := TruncateString(long, 20)
	assert.LessOrEqual(t, len([]rune(truncated)), 20)
	assert.Contains(t, truncated, "...")
}

// TestSafeDocumentPath 路径截断到固定上限
func TestSafeDocumentPath(t *testing.T) {
	long := "/data/" + strings.Repeat("d/", 100) + "resume.pdf"
	safe := SafeDocumentPath(long)
	assert.LessOrEqual(t, len([]rune(safe)), MaxDocumentPathLength)
}
