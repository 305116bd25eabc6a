package parser

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-match-go/internal/types"
)

// DefaultMinTextLength 去除首尾空白后视为有效简历的最小字符数
const DefaultMinTextLength = 50

// DocumentExtractor 文本提取器接口，屏蔽具体文档格式
type DocumentExtractor interface {
	Extract(ctx context.Context, doc *types.RawDocument) (*types.ExtractedText, error)
	ExtractFromFile(ctx context.Context, path string) (*types.ExtractedText, error)
}

// DetectFormat 根据文件扩展名推断文档格式
// 扩展名匹配不区分大小写，无法识别时返回 ErrUnsupportedFormat
func DetectFormat(path string) (types.DocumentFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return types.FormatPDF, nil
	case ".docx":
		return types.FormatDOCX, nil
	case ".txt":
		return types.FormatTXT, nil
	default:
		return "", NewUnsupportedFormatError(path, fmt.Sprintf("未知扩展名 %q", ext))
	}
}

// TextExtractor 按格式路由到具体提取器，并做最小长度校验
type TextExtractor struct {
	pdf       *EinoPDFExtractor
	docx      *DocxExtractor
	minLength int
	logger    *log.Logger
}

// TextExtractorOption 文本提取器的配置选项
type TextExtractorOption func(*TextExtractor)

// WithMinTextLength 配置有效文本的最小长度
func WithMinTextLength(n int) TextExtractorOption {
	return func(t *TextExtractor) {
		if n > 0 {
			t.minLength = n
		}
	}
}

// WithExtractorLogger 配置自定义日志记录器
func WithExtractorLogger(logger *log.Logger) TextExtractorOption {
	return func(t *TextExtractor) {
		t.logger = logger
	}
}

// WithPDFExtractTimeout 配置PDF解析超时，透传给底层 Eino 提取器
func WithPDFExtractTimeout(d time.Duration) TextExtractorOption {
	return func(t *TextExtractor) {
		if t.pdf != nil && d > 0 {
			t.pdf.timeout = d
		}
	}
}

// NewTextExtractor 初始化文本提取器，内部创建 Eino PDF 解析器
func NewTextExtractor(ctx context.Context, options ...TextExtractorOption) (*TextExtractor, error) {
	pdfExtractor, err := NewEinoPDFExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化PDF提取器失败: %w", err)
	}

	t := &TextExtractor{
		pdf:       pdfExtractor,
		docx:      NewDocxExtractor(),
		minLength: DefaultMinTextLength,
		logger:    log.New(os.Stderr, "[文本提取] ", log.LstdFlags),
	}

	for _, option := range options {
		option(t)
	}

	return t, nil
}

// ExtractFromFile 读取文件并提取文本
func (t *TextExtractor) ExtractFromFile(ctx context.Context, path string) (*types.ExtractedText, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewReadError(path, err.Error())
	}

	return t.Extract(ctx, &types.RawDocument{
		Data:       data,
		Format:     format,
		SourcePath: path,
	})
}

// Extract 按文档格式提取文本并归一化行
// 去除首尾空白后短于 minLength 的结果一律按提取失败处理，
// 扫描件PDF等无文本层的文档也会落入这条路径
func (t *TextExtractor) Extract(ctx context.Context, doc *types.RawDocument) (*types.ExtractedText, error) {
	var (
		raw string
		err error
	)

	switch doc.Format {
	case types.FormatPDF:
		raw, err = t.pdf.ExtractText(ctx, doc.Data, doc.SourcePath)
	case types.FormatDOCX:
		raw, err = t.docx.ExtractText(doc.Data, doc.SourcePath)
	case types.FormatTXT:
		raw = string(doc.Data)
	default:
		return nil, NewUnsupportedFormatError(doc.SourcePath, fmt.Sprintf("格式 %q 没有对应的提取器", doc.Format))
	}

	if err != nil {
		return nil, NewExtractionError(doc.SourcePath, err.Error())
	}

	if len(strings.TrimSpace(raw)) < t.minLength {
		t.logger.Printf("文本过短，判定提取失败: %s (%d 字符)", doc.SourcePath, len(strings.TrimSpace(raw)))
		return nil, NewExtractionError(doc.SourcePath,
			fmt.Sprintf("有效文本不足 %d 字符，文档可能为扫描件或空文件", t.minLength))
	}

	return types.NewExtractedText(raw), nil
}
