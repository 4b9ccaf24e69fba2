package server

import (
	"errors"
	"strings"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/product"
	"github.com/example/goshop/internal/infra/redis"
	"github.com/example/goshop/internal/repository/mysql"
	"github.com/example/goshop/internal/service"
)

// productRequest 后台商品创建/更新请求
type productRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"` // 分
	Stock       *int64  `json:"stock"`
}

// applyTo 把请求字段写入商品，partial 为 true 时只覆盖出现的字段
func (r *productRequest) applyTo(p *product.Product, partial bool) error {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return errors.New("商品名称不能为空")
		}
		p.Name = *r.Name
	} else if !partial {
		return errors.New("商品名称不能为空")
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		if *r.Price < 0 {
			return errors.New("价格不能为负数")
		}
		p.Price = *r.Price
	}
	if r.Stock != nil {
		if *r.Stock < 0 {
			return errors.New("库存不能为负数")
		}
		p.Stock = *r.Stock
	}
	return nil
}

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)

	// 仓储与服务
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	lineRepo := mysql.NewOrderLineRepository(db)

	productSvc := service.NewProductService(productRepo, redisClient)
	orderSvc := service.NewOrderService(orderRepo, lineRepo)
	reportSvc := service.NewReportService(db)

	api := app.Party("/api")

	// ---------- 商品管理 ----------

	api.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p := &product.Product{}
		if err := req.applyTo(p, false); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	api.Put("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), int64(id))
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.applyTo(p, true); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	api.Delete("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := productSvc.Delete(ctx.Request().Context(), int64(id)); err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// ---------- 订单管理 ----------

	api.Get("/orders", func(ctx iris.Context) {
		limit := ctx.URLParamIntDefault("limit", 20)
		list, err := orderSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Get("/orders/{id:uint64}/lines", func(ctx iris.Context) {
		oid, _ := ctx.Params().GetUint64("id")
		lines, err := orderSvc.LinesByOrder(ctx.Request().Context(), int64(oid))
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": lines})
	})

	// ---------- 用户管理 ----------

	api.Get("/users", func(ctx iris.Context) {
		list, err := userRepo.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// ---------- 销售报表 ----------

	// GET /api/reports/sales?from=2025-01-01&to=2025-01-31&filter=xx
	api.Get("/reports/sales", func(ctx iris.Context) {
		const layout = "2006-01-02"
		from, err := time.Parse(layout, ctx.URLParam("from"))
		if err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "invalid from date"})
			return
		}
		to, err := time.Parse(layout, ctx.URLParam("to"))
		if err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "invalid to date"})
			return
		}
		// to 取当天结束
		to = to.Add(24*time.Hour - time.Nanosecond)

		title := ctx.URLParamDefault("title", "销售报表")
		var filters []string
		if f := ctx.URLParam("filter"); f != "" {
			filters = append(filters, f)
		}

		r, err := reportSvc.SalesBetween(ctx.Request().Context(), title, from, to, filters...)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": r})
	})

	// ---------- 监控 ----------

	api.Get("/monitor", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "data": service.GetMonitor().GetStats()})
	})
}
