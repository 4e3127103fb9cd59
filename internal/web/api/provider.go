package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/gowvp/replay/internal/conf"
	"github.com/gowvp/replay/internal/core/review"
	"github.com/gowvp/replay/internal/core/review/adapter"
	"github.com/gowvp/replay/internal/core/review/store/reviewdb"
	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/web"
	"gorm.io/gorm"
)

// ProviderSet api providers.
var ProviderSet = wire.NewSet(
	wire.Struct(new(Usecase), "*"),
	NewHTTPHandler,
	adapter.NewVODAdapter,
	NewReviewStore, NewReviewCore, NewReviewManager, NewReviewAPI,
)

type Usecase struct {
	Conf      *conf.Bootstrap
	DB        *gorm.DB
	ReviewAPI ReviewAPI
}

// NewHTTPHandler 生成Gin框架路由内容
func NewHTTPHandler(uc *Usecase) http.Handler {
	cfg := uc.Conf.Server
	if cfg.HTTP.JwtSecret == "" {
		uc.Conf.Server.HTTP.JwtSecret = orm.GenerateRandomString(32)
	}
	if !uc.Conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	g.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"msg": "来到了无人的荒漠"})
	})
	// 如果启用了 Pprof，设置 Pprof 监控
	if cfg.HTTP.PProf.Enabled {
		web.SetupPProf(g, &cfg.HTTP.PProf.AccessIps)
	}

	setupRouter(g, uc)
	return g
}

// NewReviewStore 创建回看存储层
func NewReviewStore(db *gorm.DB) review.Storer {
	return reviewdb.NewDB(db).AutoMigrate(orm.GetEnabledAutoMigrate())
}

// NewReviewCore 创建回看核心服务
// 依赖 review.SourceProvider 接口而非具体适配器，避免循环依赖
func NewReviewCore(store review.Storer, cfg *conf.Bootstrap, provider review.SourceProvider) review.Core {
	return review.NewCore(store,
		review.WithConfig(&cfg.Server.Review),
		review.WithSourceProvider(provider),
	)
}

// NewReviewManager 创建会话管理器，内部启动空闲回收协程
// 返回的清理函数停止回收协程并销毁全部会话
func NewReviewManager(core review.Core) (*review.Manager, func()) {
	m := review.NewManager(core)
	return m, m.Close
}

func NewReviewAPI(manager *review.Manager, core review.Core, conf *conf.Bootstrap) ReviewAPI {
	return ReviewAPI{manager: manager, reviewCore: core, conf: conf}
}
