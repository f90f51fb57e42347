package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// InterpolateStrict 将文本中的 ${path.to.value} 替换为 data 中的值。
// 无法解析的占位符原样保留，并在返回的错误中逐一列出。
func InterpolateStrict(text string, data any) (string, error) {
	out, missing := interpolate(text, data)
	if len(missing) > 0 {
		return out, fmt.Errorf("无法解析占位符: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func interpolate(text string, data any) (string, []string) {
	if !strings.Contains(text, "${") {
		return text, nil
	}
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			missing = append(missing, match)
			return match
		}
		val, ok := resolvePath(data, path)
		if !ok {
			missing = append(missing, match)
			return match
		}
		return format(val)
	})
	return out, missing
}

// format 将切片输出为逗号分隔的列表，其他值按 fmt 默认格式输出。
func format(val any) string {
	list, ok := val.([]any)
	if !ok {
		return fmt.Sprint(val)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, format(item))
	}
	return strings.Join(parts, ", ")
}

func resolvePath(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// parseSegment 拆分 "weights[0]" 形式的路径段。
func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	c, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(c) {
		return nil, false
	}
	return c[idx], true
}
