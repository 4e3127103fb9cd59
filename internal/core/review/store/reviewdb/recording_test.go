package reviewdb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gowvp/replay/internal/core/review"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func generateMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}
	return db, mock, nil
}

func TestRecordingGet(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	recordingDB := NewDB(db).Recording()

	mock.ExpectQuery(`SELECT \* FROM "recordings" WHERE id=\$1 (.+) LIMIT \$2`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "kind", "start_90k", "end_90k", "path"}).
			AddRow(int64(7), "cam1", "main", int64(900000), int64(1800000), "record/cam1/a.mp4"))

	var out review.Recording
	if err := recordingDB.Get(context.Background(), &out, orm.Where("id=?", int64(7))); err != nil {
		t.Fatal(err)
	}
	if out.ID != 7 || out.CameraID != "cam1" {
		t.Fatalf("out = %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}

func TestRecordingFindOverlap(t *testing.T) {
	db, mock, err := generateMockDB()
	if err != nil {
		t.Fatal(err)
	}
	recordingDB := NewDB(db).Recording()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "recordings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT \* FROM "recordings" WHERE (.+) ORDER BY start_90k ASC(.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "camera_id", "kind", "start_90k", "end_90k"}).
			AddRow(int64(1), "cam1", "main", int64(0), int64(90000)).
			AddRow(int64(2), "cam1", "main", int64(90000), int64(180000)))

	query := orm.NewQuery(2).OrderBy("start_90k ASC")
	query.Where("camera_id = ?", "cam1")
	query.Where("start_90k < ? AND end_90k > ?", int64(180000), int64(0))

	var items []*review.Recording
	total, err := recordingDB.Find(context.Background(), &items,
		&defaultPager{limit: 10}, query.Encode()...)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d len = %d", total, len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal("ExpectationsWereMet err:", err)
	}
}

// defaultPager 测试用分页器
type defaultPager struct {
	limit int
}

func (p *defaultPager) Offset() int { return 0 }
func (p *defaultPager) Limit() int  { return p.limit }
