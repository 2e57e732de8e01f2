package preset

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"xiangqi/internal/xiangqi"
)

type yamlFile struct {
	Pieces []yamlPiece `yaml:"pieces"`
}

type yamlPiece struct {
	Kind string `yaml:"kind"`
	Row  *int   `yaml:"row"`
	Col  *int   `yaml:"col"`
	Side string `yaml:"side"`
}

// ParseYAML 解析 YAML 摆局；LayoutError.Line 是 pieces 里的序号（从 1 开始）
func ParseYAML(r io.Reader) ([]xiangqi.Placement, error) {
	var doc yamlFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LayoutError{Reason: "empty document"}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if len(doc.Pieces) == 0 {
		return nil, &LayoutError{Reason: "no pieces"}
	}
	out := make([]xiangqi.Placement, 0, len(doc.Pieces))
	for i, p := range doc.Pieces {
		if p.Row == nil || p.Col == nil {
			return nil, &LayoutError{Line: i + 1, Reason: "row and col are required"}
		}
		pl, reason := record(p.Kind, *p.Row, *p.Col, p.Side)
		if reason != "" {
			return nil, &LayoutError{Line: i + 1, Reason: reason}
		}
		out = append(out, pl)
	}
	return out, nil
}
