package parser

import (
	"errors"
	"fmt"
)

// 提取失败的基础错误类型。
// UnsupportedFormat 与 ExtractionFailed 是对单份文档致命的错误：
// 上报后批处理继续，字段缺失从不走这条错误通道。
var (
	ErrUnsupportedFormat = errors.New("不支持的文档格式")
	ErrExtractionFailed  = errors.New("文档文本提取失败")
	ErrDocumentRead      = errors.New("读取文档失败")
)

// DocumentError 包含文档路径与操作细节的自定义错误
type DocumentError struct {
	Path    string
	Op      string
	BaseErr error
	Detail  string
}

func (e *DocumentError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文档:%s): %s", e.BaseErr, e.Op, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文档:%s)", e.BaseErr, e.Op, e.Path)
}

func (e *DocumentError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *DocumentError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewUnsupportedFormatError(path, detail string) error {
	return &DocumentError{
		Path:    path,
		Op:      "detect",
		BaseErr: ErrUnsupportedFormat,
		Detail:  detail,
	}
}

func NewExtractionError(path, detail string) error {
	return &DocumentError{
		Path:    path,
		Op:      "extract",
		BaseErr: ErrExtractionFailed,
		Detail:  detail,
	}
}

func NewReadError(path, detail string) error {
	return &DocumentError{
		Path:    path,
		Op:      "read",
		BaseErr: ErrDocumentRead,
		Detail:  detail,
	}
}
