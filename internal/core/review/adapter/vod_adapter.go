package adapter

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gowvp/replay/internal/conf"
	"github.com/gowvp/replay/internal/core/review"
	"github.com/grafov/m3u8"
	"github.com/ixugo/goddd/pkg/reason"
)

var _ review.SourceProvider = (*VODAdapter)(nil)

// VODAdapter 实现 review.SourceProvider 接口
// 把录像文件静态服务适配成播放地址构建器
// Wire 通过 NewVODAdapter 自动绑定到 review.SourceProvider
type VODAdapter struct {
	conf *conf.Bootstrap
}

// NewVODAdapter 创建点播适配器，返回 review.SourceProvider 接口
func NewVODAdapter(conf *conf.Bootstrap) review.SourceProvider {
	return &VODAdapter{conf: conf}
}

// BuildSource 构建播放源
// 地址指向 /static/recordings 下的 MP4 文件，Range 请求由静态服务支持
// 叠加与裁剪信息编入查询参数，由播放端解释
func (a *VODAdapter) BuildSource(ref review.PlaybackRef, overlay bool, sub *review.TimeRange) (review.PlaybackSource, error) {
	if ref.Recording.Path == "" {
		return review.PlaybackSource{}, reason.ErrBadRequest.Withf("recording[%d] has no file path", ref.Recording.ID)
	}

	q := sourceQuery(overlay, sub)
	addr := "/static/recordings/" + ref.Recording.Path
	playlist := fmt.Sprintf("/playback/%s/%s/%d/index.m3u8", ref.Stream.Camera.ID, ref.Stream.Kind, ref.Recording.ID)
	if enc := q.Encode(); enc != "" {
		addr += "?" + enc
		playlist += "?" + enc
	}

	return review.PlaybackSource{
		URL:      addr,
		Playlist: playlist,
		Ratio:    ref.Entry.Ratio(),
		Overlay:  overlay,
		Sub:      sub,
	}, nil
}

// Playlist 生成 HLS 播放列表
// 播放区间（裁剪后的子区间或整段录像）按分段间隔切分，每个分段一条媒体项
func (a *VODAdapter) Playlist(ref review.PlaybackRef, overlay bool, sub *review.TimeRange, chunk review.Time90k) (string, error) {
	rng := ref.Recording.Range()
	if sub != nil {
		rng = *sub
	}
	if chunk <= 0 {
		chunk = review.DefaultChunkInterval
	}

	chunks := rng.Chunks(chunk)
	if len(chunks) == 0 {
		return "", reason.ErrBadRequest.Withf("recording[%d] empty playback range", ref.Recording.ID)
	}

	p, err := m3u8.NewMediaPlaylist(0, uint(len(chunks)))
	if err != nil {
		return "", err
	}
	p.MediaType = m3u8.VOD

	for _, c := range chunks {
		q := sourceQuery(overlay, &c)
		uri := "/static/recordings/" + ref.Recording.Path + "?" + q.Encode()
		duration := float64(c.Duration()) / review.TicksPerSecond
		if err := p.Append(uri, duration, ""); err != nil {
			return "", err
		}
	}
	p.Close()

	return p.Encode().String(), nil
}

// sourceQuery 叠加与子区间编码为查询参数
func sourceQuery(overlay bool, sub *review.TimeRange) url.Values {
	q := url.Values{}
	if overlay {
		q.Set("ts", "1")
	}
	if sub != nil {
		q.Set("start_90k", strconv.FormatInt(int64(sub.Start), 10))
		q.Set("end_90k", strconv.FormatInt(int64(sub.End), 10))
	}
	return q
}
