package content

import (
	"errors"
	"fmt"
)

// SectionOrder 是页面章节的固定顺序。
var SectionOrder = []Kind{KindImageDimensions, KindFontDisplay, KindRenderingStrategy}

// Validate 检查页面是否满足内容模型的不变式。
func Validate(p Page) error {
	if p.Title == "" {
		return errors.New("页面缺少标题")
	}
	if err := ValidateFont(p.Font); err != nil {
		return err
	}
	if len(p.Sections) != len(SectionOrder) {
		return fmt.Errorf("页面应包含 %d 个章节，实际 %d 个", len(SectionOrder), len(p.Sections))
	}
	for i, s := range p.Sections {
		if s.Kind != SectionOrder[i] {
			return fmt.Errorf("第 %d 个章节应为 %s，实际为 %s", i+1, SectionOrder[i], s.Kind)
		}
		if err := validateSection(s); err != nil {
			return fmt.Errorf("章节 %s: %w", s.Kind, err)
		}
	}
	return nil
}

// ValidateFont 检查字体配置。
func ValidateFont(c TextStyleConfig) error {
	if c.Family == "" {
		return errors.New("字体配置缺少 family")
	}
	if len(c.Weights) == 0 {
		return fmt.Errorf("字体 %s 未指定字重", c.Family)
	}
	seen := make(map[Weight]bool, len(c.Weights))
	for _, w := range c.Weights {
		if !w.Valid() {
			return fmt.Errorf("字体 %s 的字重 %d 不合法", c.Family, w)
		}
		if seen[w] {
			return fmt.Errorf("字体 %s 的字重 %d 重复", c.Family, w)
		}
		seen[w] = true
	}
	if c.Subset == "" {
		return fmt.Errorf("字体 %s 未指定字符子集", c.Family)
	}
	if !c.Display.Valid() {
		return fmt.Errorf("字体 %s 的 font-display 取值 %q 不合法", c.Family, c.Display)
	}
	return nil
}

func validateSection(s Section) error {
	if len(s.Panels) == 0 {
		return errors.New("缺少面板")
	}
	if s.Title() == "" {
		return errors.New("缺少标题")
	}
	if len(s.Paragraphs()) == 0 {
		return errors.New("缺少正文段落")
	}
	if s.Panels[0].Role != RoleProblem {
		return errors.New("首个面板必须是问题面板")
	}
	if s.Kind == KindImageDimensions {
		// 图片章节需要同时展示未处理与经过图片原语的两种写法
		if _, ok := s.Demo(RoleProblem).(PlainImage); !ok {
			return errors.New("问题面板缺少未处理图片")
		}
		if _, ok := s.Demo(RoleSolution).(OptimizedImage); !ok {
			return errors.New("解决方案面板缺少优化图片")
		}
	}
	for i, panel := range s.Panels {
		if panel.Title == "" {
			return fmt.Errorf("第 %d 个面板缺少标题", i+1)
		}
		if err := validateDemo(panel.Role, panel.Demo); err != nil {
			return fmt.Errorf("面板 %q: %w", panel.Title, err)
		}
	}
	return nil
}

func validateDemo(role Role, demo Element) error {
	switch d := demo.(type) {
	case nil:
		return nil
	case PlainImage:
		if d.Image.Src == "" {
			return errors.New("图片缺少 src")
		}
		if role == RoleSolution {
			return errors.New("解决方案面板不能使用未处理的图片")
		}
		if !d.Image.Unsized() {
			return fmt.Errorf("问题演示图片不应指定尺寸（%dx%d）", d.Image.Width, d.Image.Height)
		}
	case OptimizedImage:
		if d.Image.Src == "" {
			return errors.New("图片缺少 src")
		}
		if role == RoleProblem {
			return errors.New("问题面板不能使用优化图片")
		}
		if !d.Image.Dimensioned() {
			return fmt.Errorf("优化图片必须同时指定正的宽高，实际 %dx%d", d.Image.Width, d.Image.Height)
		}
	case StyledText:
		if d.Text == "" {
			return errors.New("演示文本为空")
		}
	default:
		return fmt.Errorf("未知的演示元素类型 %T", demo)
	}
	return nil
}
