package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/example/goshop/internal/datamodels/product"
)

const (
	redisProductKey        = "product:%d" // productID
	productCacheTTLSeconds = 60
)

// ProductService 商品服务，读路径带 Redis 缓存
type ProductService struct {
	repo  product.Repository
	redis radix.Client // 可为 nil（测试或无缓存部署）
}

func NewProductService(repo product.Repository, redis radix.Client) *ProductService {
	return &ProductService{repo: repo, redis: redis}
}

func (s *ProductService) ListAll(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListAll(ctx)
}

// Search 按名称关键字过滤（内存过滤，商品量级不大）
func (s *ProductService) Search(ctx context.Context, keyword string) ([]*product.Product, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return list, nil
	}
	kw := strings.ToLower(keyword)
	filtered := make([]*product.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), kw) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetByID 查询商品，优先命中缓存
func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	if p, ok := s.cacheGet(id); ok {
		return p, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(p)
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	return s.repo.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.cacheInvalidate(p.ID)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheInvalidate(id)
	return nil
}

func (s *ProductService) cacheGet(id int64) (*product.Product, bool) {
	if s.redis == nil {
		return nil, false
	}
	var raw string
	if err := s.redis.Do(radix.Cmd(&raw, "GET", fmt.Sprintf(redisProductKey, id))); err != nil {
		zap.L().Warn("product cache read failed", zap.Int64("id", id), zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var p product.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// 缓存数据损坏，清理后回源
		s.cacheInvalidate(id)
		return nil, false
	}
	return &p, true
}

func (s *ProductService) cacheSet(p *product.Product) {
	if s.redis == nil || p == nil {
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisProductKey, p.ID)
	if err := s.redis.Do(radix.FlatCmd(nil, "SETEX", key, productCacheTTLSeconds, body)); err != nil {
		zap.L().Warn("product cache write failed", zap.Int64("id", p.ID), zap.Error(err))
	}
}

func (s *ProductService) cacheInvalidate(id int64) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Do(radix.Cmd(nil, "DEL", fmt.Sprintf(redisProductKey, id)))
}
