package review

import (
	"context"
	"log/slog"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/jinzhu/copier"
)

// FindCameras 分页查询摄像机列表，供流选择器使用
func (c Core) FindCameras(ctx context.Context, in *FindCamerasInput) ([]*Camera, int64, error) {
	query := orm.NewQuery(2).OrderBy("id ASC")
	if in.Name != "" {
		query.Where("name LIKE ?", "%"+in.Name+"%")
	}

	items := make([]*Camera, 0, in.Limit())
	total, err := c.store.Camera().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// GetCamera Query a single object
func (c Core) GetCamera(ctx context.Context, id string) (*Camera, error) {
	var out Camera
	if err := c.store.Camera().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// GetStream 按 (摄像机 ID, 流类型) 构建流身份
// 两次调用得到的同一路流按值相等
func (c Core) GetStream(ctx context.Context, cameraID, kind string) (Stream, error) {
	if kind != KindMain && kind != KindSub {
		return Stream{}, reason.ErrBadRequest.Withf("unknown stream kind [%s]", kind)
	}
	camera, err := c.GetCamera(ctx, cameraID)
	if err != nil {
		return Stream{}, err
	}
	return Stream{Camera: *camera, Kind: kind}, nil
}

// FindRecordings 查询一路流上与时间范围有重叠的录像，按开始时间升序
// 列表组件按 (流, 时间范围, 分段间隔) 元组逐流调用
func (c Core) FindRecordings(ctx context.Context, in *FindRecordingsInput) ([]*Recording, int64, error) {
	query := orm.NewQuery(4).OrderBy("start_90k ASC")

	if in.CameraID != "" {
		query.Where("camera_id = ?", in.CameraID)
	}
	if in.Kind != "" {
		query.Where("kind = ?", in.Kind)
	}
	if in.Start90k > 0 && in.End90k > 0 {
		// 重叠判定：start < 查询终点 且 end > 查询起点
		query.Where("start_90k < ? AND end_90k > ?", in.End90k, in.Start90k)
	}

	items := make([]*Recording, 0, in.Limit())
	total, err := c.store.Recording().Find(ctx, &items, in, query.Encode()...)
	if err != nil {
		return nil, 0, reason.ErrDB.Withf(`Find in[%+v] err[%s]`, in, err.Error())
	}
	return items, total, nil
}

// GetRecording Query a single object
func (c Core) GetRecording(ctx context.Context, id int64) (*Recording, error) {
	out := Recording{ID: id}
	if err := c.store.Recording().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// GetSampleEntry Query a single object
func (c Core) GetSampleEntry(ctx context.Context, id int64) (*SampleEntry, error) {
	var out SampleEntry
	if err := c.store.SampleEntry().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// GetPlaybackRef 组装播放引用：流 + 录像 + sample entry
// 校验录像确实属于该路流，避免跨流引用
func (c Core) GetPlaybackRef(ctx context.Context, cameraID, kind string, recordingID int64) (*PlaybackRef, error) {
	stream, err := c.GetStream(ctx, cameraID, kind)
	if err != nil {
		return nil, err
	}
	rec, err := c.GetRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if rec.CameraID != stream.Camera.ID || rec.Kind != stream.Kind {
		return nil, reason.ErrBadRequest.Withf("recording[%d] not on stream[%s]", recordingID, stream.Key())
	}
	entry, err := c.GetSampleEntry(ctx, rec.SampleEntryID)
	if err != nil {
		return nil, err
	}
	return &PlaybackRef{Stream: stream, Recording: *rec, Entry: *entry}, nil
}

// AddCamera Insert into database
func (c Core) AddCamera(ctx context.Context, in *AddCameraInput) (*Camera, error) {
	var out Camera
	if err := copier.Copy(&out, in); err != nil {
		slog.ErrorContext(ctx, "Copy", "err", err)
	}
	if err := c.store.Camera().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	return &out, nil
}

// AddSampleEntry Insert into database
// 此处是宽高比数据进入系统的唯一入口，非正值在这里拦截
func (c Core) AddSampleEntry(ctx context.Context, in *AddSampleEntryInput) (*SampleEntry, error) {
	if in.AspectW <= 0 || in.AspectH <= 0 {
		return nil, reason.ErrBadRequest.Withf("aspect ratio must be positive, got %dx%d", in.AspectW, in.AspectH)
	}

	var out SampleEntry
	if err := copier.Copy(&out, in); err != nil {
		slog.ErrorContext(ctx, "Copy", "err", err)
	}
	if err := c.store.SampleEntry().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	return &out, nil
}

// AddRecording Insert into database
func (c Core) AddRecording(ctx context.Context, in *AddRecordingInput) (*Recording, error) {
	if in.End90k <= in.Start90k {
		return nil, reason.ErrBadRequest.Withf("recording range must satisfy end > start")
	}

	var out Recording
	if err := copier.Copy(&out, in); err != nil {
		slog.ErrorContext(ctx, "Copy", "err", err)
	}

	if err := c.store.Recording().Add(ctx, &out); err != nil {
		return nil, reason.ErrDB.Withf(`Add err[%s]`, err.Error())
	}
	return &out, nil
}

// DelRecording Delete object
func (c Core) DelRecording(ctx context.Context, id int64) (*Recording, error) {
	var out Recording
	if err := c.store.Recording().Del(ctx, &out, orm.Where("id=?", id)); err != nil {
		return nil, reason.ErrDB.Withf(`Del id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}
