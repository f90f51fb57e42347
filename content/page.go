package content

// CatPhoto 是三个图片演示共用的静态资源路径。
const CatPhoto = "/no-optimized-cat.jpg"

// 解决方案图片的固有尺寸（像素）。
const (
	CatPhotoWidth  = 2558
	CatPhotoHeight = 3158
)

var roboto = TextStyleConfig{
	Family:  "Roboto",
	Weights: []Weight{WeightRegular, WeightBold},
	Subset:  "latin",
	Display: DisplaySwap,
}

// Roboto 返回页面使用的字体配置副本。
func Roboto() TextStyleConfig { return roboto.Clone() }

// Default 构造固定的演示页面，章节顺序为图片尺寸、字体显示、渲染策略。
func Default() Page {
	return Page{
		Title: "Performance Analysis and PoC in Next.js",
		Style: "padding: 2rem; max-width: 1500px; margin: 0 auto; display: flex; flex-direction: column; gap: 2rem",
		Font:  Roboto(),
		Sections: []Section{
			imageDimensions(),
			fontDisplay(),
			renderingStrategy(),
		},
	}
}

func imageDimensions() Section {
	return Section{
		Kind: KindImageDimensions,
		Panels: []Panel{
			{
				Role:  RoleProblem,
				Title: "1. Problem: Missing Image Dimensions (Causes CLS)",
				Paragraphs: []Paragraph{{
					Text: `An image without "width" and "height" causes "layout shift" or design change, ` +
						`as the browser cannot reserve space before the image loads.`,
					Style: "margin-bottom: 1rem",
					Link:  &Link{Href: CatPhoto, Text: "(Click here to view the unoptimized image)"},
				}},
				Demo: PlainImage{Image: ImageDescriptor{Src: CatPhoto, Alt: "Unoptimized cat photo"}},
			},
			{
				Role:  RoleSolution,
				Title: `Solution: Use the "next/image" Component`,
				Paragraphs: []Paragraph{{
					Text: `The Next.js "Image" component eliminates CLS by requiring dimensions. Additionally, ` +
						`it automatically optimizes images, uses lazy loading, and serves modern formats like WebP.`,
					Style: "margin-bottom: 1rem",
				}},
				Demo: OptimizedImage{
					Image: ImageDescriptor{
						Src:    CatPhoto,
						Alt:    "Cat photo optimized with next/image",
						Width:  CatPhotoWidth,
						Height: CatPhotoHeight,
					},
					Style: "max-width: 100%; height: auto",
				},
			},
		},
	}
}

func fontDisplay() Section {
	return Section{
		Kind: KindFontDisplay,
		Panels: []Panel{
			{
				Role:  RoleProblem,
				Title: "2. Problem: Flash of Invisible Text (FOIT)",
				Paragraphs: []Paragraph{{
					Text: `When using external fonts without "font-display", the text remains invisible until ` +
						`the font is downloaded, which negatively impacts the user experience.`,
				}},
				Demo: StyledText{
					Text:  "This text simulates the font loading problem.",
					Class: "font-problem",
					Style: "font-size: 2rem",
				},
			},
			{
				Role:  RoleSolution,
				Title: `Solution: Use "@next/font" with "font-display: ${font.display}"`,
				Paragraphs: []Paragraph{{
					Text: `The "font-display: ${font.display}" property shows a fallback font immediately, ` +
						`avoiding the "flash" of invisible text. The Next.js "@next/font" component ` +
						`handles this automatically and optimizes font loading.`,
				}},
				Demo: StyledText{
					Text:        "This text uses @next/font with font-display: ${font.display}. It renders immediately.",
					Style:       "font-size: 2rem",
					UsePageFont: true,
				},
			},
		},
	}
}

func renderingStrategy() Section {
	return Section{
		Kind: KindRenderingStrategy,
		Panels: []Panel{{
			Role:  RoleProblem,
			Title: "3. Problem: Slow Server-Side Rendering (SSR)",
			Paragraphs: []Paragraph{
				{Text: "The site is using Server-Side Rendering (SSR) for the main page, which, for a site with " +
					"mostly static content, is the main cause of its initial poor performance."},
				{Text: "The issue lies in the server having to make an API request to fetch the page content on " +
					"every user visit. This two-step process creates a bottleneck, adding a 500ms delay to the " +
					"Time to First Byte (TTFB) and negatively impacting the Largest Contentful Paint (LCP), one " +
					"of the most important Core Web Vitals."},
				{Text: "The ideal solution, which is the Next.js standard for this type of content, is to migrate " +
					"the page to Static Site Generation (SSG). By using SSG, the page data is fetched only once " +
					"during the project build. This eliminates the need for API requests on each visit, allowing " +
					"the page to be served instantly from the Content Delivery Network (CDN)."},
			},
		}},
	}
}

// Bindings 返回段落插值可引用的数据，例如 ${font.display}。
func (p Page) Bindings() map[string]any {
	weights := make([]any, 0, len(p.Font.Weights))
	for _, w := range p.Font.Weights {
		weights = append(weights, int(w))
	}
	return map[string]any{
		"title": p.Title,
		"font": map[string]any{
			"family":  p.Font.Family,
			"subset":  p.Font.Subset,
			"display": string(p.Font.Display),
			"weights": weights,
		},
	}
}
