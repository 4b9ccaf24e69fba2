package server

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/example/goshop/internal/auth"
	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/infra/mq"
	"github.com/example/goshop/internal/infra/redis"
	"github.com/example/goshop/internal/middleware"
	"github.com/example/goshop/internal/notify"
	"github.com/example/goshop/internal/repository/mysql"
	"github.com/example/goshop/internal/service"
)

// RegisterRoutes 注册前台 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 领域事件监听器：邮件/短信走进程内模拟，MQ 转发给 notify-worker
	dispatcher := notify.Default()
	dispatcher.Subscribe(notify.EmailListener{})
	dispatcher.Subscribe(notify.SMSListener{})
	dispatcher.Subscribe(notify.NewAMQPListener(mqConn))

	// 仓储与服务
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	lineRepo := mysql.NewOrderLineRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT, dispatcher)
	productSvc := service.NewProductService(productRepo, redisClient)
	orderSvc := service.NewOrderService(orderRepo, lineRepo)
	pricingSvc := service.NewPricingService(productRepo)
	processSvc := service.NewOrderProcessService(db, userRepo, dispatcher)

	// JWT 解析结果缓存，减少重复解析
	ring := auth.NewHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(redisClient, ring,
		time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		if err := redis.Ping(); err != nil {
			ctx.StopWithJSON(503, iris.Map{"code": 503, "msg": "redis unreachable"})
			return
		}
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 用户注册/登录
	api.Post("/register", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), req.Username, req.Email, req.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		token, err := userSvc.Login(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"token": token}})
	})

	// 需要登录的接口
	authAPI := api.Party("/", func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "missing token"})
			return
		}

		claims, hit, err := tokenCache.Get(ctx.Request().Context(), token)
		if err != nil || !hit {
			claims, err = auth.ParseToken(&cfg.JWT, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "invalid token"})
				return
			}
			_ = tokenCache.Set(ctx.Request().Context(), token, claims)
		}

		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("username", claims.Username)
		ctx.Next()
	})

	// 登出：让缓存的登录态立即失效
	authAPI.Post("/logout", func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		if err := tokenCache.Invalidate(ctx.Request().Context(), token); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "logged out"})
	})

	// 商品列表（支持关键字搜索）
	authAPI.Get("/products", func(ctx iris.Context) {
		keyword := ctx.URLParam("q")
		list, err := productSvc.Search(ctx.Request().Context(), keyword)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 商品详情
	authAPI.Get("/products/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(pid))
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 报价：按所选策略计算 quantity 件商品的金额
	authAPI.Get("/products/{id:uint64}/quote", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		quantity := ctx.URLParamInt64Default("quantity", 1)
		strategy := ctx.URLParamDefault("strategy", "fixed")

		amount, err := pricingSvc.Quote(ctx.Request().Context(), int64(pid), quantity, strategy)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{
			"product_id": pid,
			"quantity":   quantity,
			"strategy":   strategy,
			"amount":     amount,
		}})
	})

	// 下单
	authAPI.Post("/orders", middleware.OrderRateLimit(), func(ctx iris.Context) {
		var in service.CreateOrderInput
		if err := ctx.ReadJSON(&in); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		// 下单人以登录态为准
		in.UserID = ctx.Values().GetInt64Default("user_id", 0)

		o, err := processSvc.CreateOrder(ctx.Request().Context(), in)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// 取消订单
	authAPI.Post("/orders/{id:uint64}/cancel", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetUint64("id")
		if err := processSvc.CancelOrder(ctx.Request().Context(), int64(oid)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "cancelled"})
	})

	// 我的订单
	authAPI.Get("/orders", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		list, err := orderSvc.ListByUser(ctx.Request().Context(), userID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 订单详情（含明细）
	authAPI.Get("/orders/{id:uint64}", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetUint64("id")
		o, err := orderSvc.GetByID(ctx.Request().Context(), int64(oid))
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "order not found"})
			return
		}
		lines, err := orderSvc.LinesByOrder(ctx.Request().Context(), o.ID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{
			"order": o,
			"lines": lines,
		}})
	})
}
