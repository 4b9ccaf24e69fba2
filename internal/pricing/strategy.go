package pricing

import (
	"math"

	"github.com/example/goshop/internal/domain"
)

// Strategy 定价策略接口，价格单位为分
// 入参由调用方保证合法（basePrice >= 0, quantity > 0），策略内部不做校验。
type Strategy interface {
	CalculatePrice(basePrice int64, quantity int64) int64
}

// Fixed 固定价格：单价 * 数量，无任何折扣
type Fixed struct{}

func (Fixed) CalculatePrice(basePrice int64, quantity int64) int64 {
	return basePrice * quantity
}

// VolumeDiscount 批量折扣：数量达到阈值时整单打折
type VolumeDiscount struct {
	Threshold int64
	Discount  float64
}

// NewVolumeDiscount 创建批量折扣策略，参数非法时回落到默认值（满10件打9折）
func NewVolumeDiscount(threshold int64, discount float64) VolumeDiscount {
	if threshold <= 0 {
		threshold = 10
	}
	if discount <= 0 || discount >= 1 {
		discount = 0.10
	}
	return VolumeDiscount{Threshold: threshold, Discount: discount}
}

func (s VolumeDiscount) CalculatePrice(basePrice int64, quantity int64) int64 {
	total := basePrice * quantity
	if quantity >= s.Threshold {
		return int64(math.Round(float64(total) * (1 - s.Discount)))
	}
	return total
}

// Promotion 促销折扣：不论数量一律打折
type Promotion struct {
	Discount float64
}

// NewPromotion 创建促销策略，折扣非法时回落到默认 15%
func NewPromotion(discount float64) Promotion {
	if discount <= 0 || discount >= 1 {
		discount = 0.15
	}
	return Promotion{Discount: discount}
}

func (s Promotion) CalculatePrice(basePrice int64, quantity int64) int64 {
	total := basePrice * quantity
	return int64(math.Round(float64(total) * (1 - s.Discount)))
}

// 策略标识，对外接口通过字符串选择策略
const (
	KindFixed     = "fixed"
	KindVolume    = "volume"
	KindPromotion = "promotion"
)

var registry = map[string]func() Strategy{
	KindFixed:     func() Strategy { return Fixed{} },
	KindVolume:    func() Strategy { return NewVolumeDiscount(0, 0) },
	KindPromotion: func() Strategy { return NewPromotion(0) },
}

// New 按标识构造策略，未注册的标识返回 UnsupportedStrategyError
func New(kind string) (Strategy, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, &domain.UnsupportedStrategyError{Kind: kind}
	}
	return ctor(), nil
}

// Context 持有当前策略并代理计算，策略可在运行期替换
type Context struct {
	strategy Strategy
}

// NewContext 创建定价上下文，strategy 为空时使用固定价格
func NewContext(strategy Strategy) *Context {
	if strategy == nil {
		strategy = Fixed{}
	}
	return &Context{strategy: strategy}
}

// SetStrategy 运行期切换策略
func (c *Context) SetStrategy(strategy Strategy) {
	if strategy != nil {
		c.strategy = strategy
	}
}

// CalculatePrice 委托给当前策略
func (c *Context) CalculatePrice(basePrice int64, quantity int64) int64 {
	return c.strategy.CalculatePrice(basePrice, quantity)
}
