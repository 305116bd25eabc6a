package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 命令失败时输出文件也要先关闭落盘，不能留下未刷写的句柄
func TestWithOutputClosesOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	wantErr := errors.New("命令执行失败")

	err := withOutput(path, func(w io.Writer) error {
		fmt.Fprintln(w, "partial output")
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// 文件已关闭，写入的内容完整可读
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "partial output\n", string(data))
}

func TestWithOutputSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	err := withOutput(path, func(w io.Writer) error {
		fmt.Fprintln(w, "done")
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(data))
}

func TestWithOutputCreateFailure(t *testing.T) {
	err := withOutput(filepath.Join(t.TempDir(), "missing", "out.json"), func(io.Writer) error {
		t.Fatal("目录不存在时不应回调")
		return nil
	})
	require.Error(t, err)
}
