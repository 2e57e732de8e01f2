// Package preset 读写开局摆子文件。
//
// 支持两种格式：
//   - .cfg：每行 `kind ******** row ******** col ******** side`
//   - .yaml / .yml：`pieces: [{kind, row, col, side}]`
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xiangqi/internal/xiangqi"
)

var ErrInvalidLayout = errors.New("invalid layout")

// LayoutError 带上出错的行号（YAML 里是第几条记录）
type LayoutError struct {
	Source string
	Line   int
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: line %d: %s", ErrInvalidLayout, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s:%d: %s", ErrInvalidLayout, e.Source, e.Line, e.Reason)
}

func (e *LayoutError) Unwrap() error { return ErrInvalidLayout }

// Standard 标准开局
func Standard() []xiangqi.Placement { return xiangqi.StandardLayout() }

// Load 按扩展名选解析器；path 为空或 "standard" 时返回标准开局
func Load(path string) ([]xiangqi.Placement, error) {
	if path == "" || path == "standard" {
		return Standard(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	var layout []xiangqi.Placement
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		layout, err = ParseYAML(f)
	default:
		layout, err = ParseCFG(f)
	}
	if err != nil {
		var le *LayoutError
		if errors.As(err, &le) && le.Source == "" {
			le.Source = filepath.Base(path)
		}
		return nil, err
	}
	return layout, nil
}

// record 两种格式共用的一条原始记录
func record(kind string, row, col int, side string) (xiangqi.Placement, string) {
	k, ok := xiangqi.ParseKind(strings.ToLower(strings.TrimSpace(kind)))
	if !ok {
		return xiangqi.Placement{}, fmt.Sprintf("unknown kind %q", kind)
	}
	s, ok := xiangqi.ParseSide(strings.ToLower(strings.TrimSpace(side)))
	if !ok {
		return xiangqi.Placement{}, fmt.Sprintf("unknown side %q", side)
	}
	if xiangqi.SquareAt(row, col) == xiangqi.NoSquare {
		return xiangqi.Placement{}, fmt.Sprintf("(%d,%d) off board", row, col)
	}
	return xiangqi.Placement{Kind: k, Row: row, Col: col, Side: s}, ""
}
