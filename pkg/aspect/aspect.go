package aspect

// Rect 像素矩形，宽高均为浮点像素值
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero 宽或高为 0 时返回 true，通常出现在首次布局前的瞬态
func (r Rect) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

// Ratio 目标宽高比，来自录像的 sample entry
// 部分播放器不读取封装内的宽高比元数据，必须由外部显式计算尺寸
type Ratio struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Fit 计算在 bounds 内保持 ratio 宽高比的最大内接矩形
// 结果居中贴边：宽高至少有一边与容器相等
// 约定 ratio 分量为正整数，由数据源保证，此处不做校验
func Fit(ratio Ratio, bounds Rect) Rect {
	candidateWidth := bounds.Height * float64(ratio.W) / float64(ratio.H)
	if candidateWidth <= bounds.Width {
		return Rect{Width: candidateWidth, Height: bounds.Height}
	}
	return Rect{Width: bounds.Width, Height: bounds.Width * float64(ratio.H) / float64(ratio.W)}
}
