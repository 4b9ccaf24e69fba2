package main

import (
	"context"
	"fmt"
	"log"

	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/product"
	"github.com/example/goshop/internal/logger"
	"github.com/example/goshop/internal/notify"
	"github.com/example/goshop/internal/repository/mysql"
	"github.com/example/goshop/internal/service"
)

// 演示数据：价格单位为分
var demoProducts = []*product.Product{
	{Name: "T恤", Description: "纯棉短袖T恤", Price: 5900, Stock: 100},
	{Name: "牛仔裤", Description: "修身直筒牛仔裤", Price: 19900, Stock: 50},
	{Name: "帽子", Description: "户外遮阳帽", Price: 3900, Stock: 200},
	{Name: "运动鞋", Description: "轻便跑步鞋", Price: 29900, Stock: 30},
	{Name: "背包", Description: "防水双肩背包", Price: 15900, Stock: 80},
}

var demoUsers = []struct {
	username string
	email    string
	password string
}{
	{"alice", "alice@example.com", "alice123"},
	{"bob", "bob@example.com", "bob123"},
}

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init()

	db := mysql.Init(&cfg.MySQL)
	ctx := context.Background()

	fmt.Println("🌱 写入演示数据...")

	userRepo := mysql.NewUserRepository(db)
	userSvc := service.NewUserService(userRepo, &cfg.JWT, notify.NewDispatcher())
	for _, u := range demoUsers {
		if _, err := userRepo.GetByUsername(ctx, u.username); err == nil {
			fmt.Printf("  用户 %s 已存在，跳过\n", u.username)
			continue
		}
		if _, err := userSvc.Register(ctx, u.username, u.email, u.password); err != nil {
			log.Fatalf("failed to create user %s: %v", u.username, err)
		}
		fmt.Printf("  ✅ 用户 %s (%s)\n", u.username, u.email)
	}

	productRepo := mysql.NewProductRepository(db)
	for _, p := range demoProducts {
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatalf("failed to create product %s: %v", p.Name, err)
		}
		fmt.Printf("  ✅ 商品 %s 价格=%d分 库存=%d\n", p.Name, p.Price, p.Stock)
	}

	fmt.Println("🎉 演示数据写入完成")
}
