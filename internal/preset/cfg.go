package preset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"xiangqi/internal/xiangqi"
)

// Separator .cfg 文件的字段分隔符
const Separator = " ******** "

// ParseCFG 解析 .cfg；空行和 # 开头的行跳过
func ParseCFG(r io.Reader) ([]xiangqi.Placement, error) {
	var out []xiangqi.Placement
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, strings.TrimSpace(Separator))
		if len(fields) != 4 {
			return nil, &LayoutError{Line: line, Reason: fmt.Sprintf("want 4 fields, got %d", len(fields))}
		}
		row, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, &LayoutError{Line: line, Reason: "bad row " + strconv.Quote(fields[1])}
		}
		col, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, &LayoutError{Line: line, Reason: "bad col " + strconv.Quote(fields[2])}
		}
		pl, reason := record(fields[0], row, col, fields[3])
		if reason != "" {
			return nil, &LayoutError{Line: line, Reason: reason}
		}
		out = append(out, pl)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	if len(out) == 0 {
		return nil, &LayoutError{Line: line, Reason: "no pieces"}
	}
	return out, nil
}

// WriteCFG 按 .cfg 格式写出；黑方写成 blue，和旧文件保持一致
func WriteCFG(w io.Writer, layout []xiangqi.Placement) error {
	bw := bufio.NewWriter(w)
	for _, pl := range layout {
		side := "red"
		if pl.Side == xiangqi.Black {
			side = "blue"
		}
		fields := []string{pl.Kind.String(), strconv.Itoa(pl.Row), strconv.Itoa(pl.Col), side}
		if _, err := bw.WriteString(strings.Join(fields, Separator) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
