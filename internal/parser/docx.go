package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// DocxExtractor 从 .docx 文档提取纯文本
// 按正文顺序拼接段落与表格内容，每个块占一行
type DocxExtractor struct{}

// NewDocxExtractor 创建 DOCX 文本提取器
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

// ExtractText 解析 DOCX 字节内容并返回纯文本
func (d *DocxExtractor) ExtractText(data []byte, uri string) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("go-docx parse failed for URI %s: %w", uri, err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			sb.WriteString(block.String())
			sb.WriteString("\n")
		case *docx.Table:
			sb.WriteString(block.String())
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
