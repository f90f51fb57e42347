package canvasrenderer

import (
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"
)

// widther measures text in mm; *canvas.FontFace satisfies it.
type widther interface {
	TextWidth(s string) float64
}

var _ widther = (*canvas.FontFace)(nil)

func greedyWrapTokens(content string, width float64, face widther, wrap string) []Line {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	// nowrap：仅按显式换行划分，不基于宽度折行
	if wrap == "nowrap" {
		parts := strings.Split(content, "\n")
		lines := make([]Line, 0, len(parts))
		for _, p := range parts {
			lines = append(lines, Line{Content: p, Width: face.TextWidth(p)})
		}
		return lines
	}

	var lines []Line
	var builder strings.Builder
	current := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, Line{})
			}
			return
		}
		lines = append(lines, Line{Content: strings.TrimRightFunc(builder.String(), unicode.IsSpace), Width: current})
		builder.Reset()
		current = 0
	}

	// break-word：忽略空白机会，纯按宽度切分（但仍然尊重显式换行）
	if wrap == "break-word" {
		for _, r := range content {
			if r == '\r' {
				continue
			}
			if r == '\n' {
				emit(true)
				continue
			}
			s := string(r)
			cw := face.TextWidth(s)
			if current > 0 && current+cw > limit {
				emit(false)
			}
			builder.WriteString(s)
			current += cw
		}
		emit(true)
		return lines
	}

	// 默认：优先在空白处分割，超过限制时在词内拆分
	appendToken := func(token string) {
		builder.WriteString(token)
		current += face.TextWidth(token)
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		isSpace := strings.TrimSpace(token) == ""
		if isSpace && current == 0 {
			// 行首空白不占宽度
			continue
		}

		tokenWidth := face.TextWidth(token)
		if current > 0 && current+tokenWidth > limit {
			emit(false)
			if isSpace {
				continue
			}
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, face) {
			chunkWidth := face.TextWidth(chunk)
			if current > 0 && current+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}

	emit(true)
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face widther) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if face.TextWidth(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
