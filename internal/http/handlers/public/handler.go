package public

import "github.com/campus-rent/internal/provider"

// Handler 用户侧接口处理器入口
// 说明：认证、购物车、地址、下单、评价、物品目录与出借人申请。
type Handler struct {
	*provider.Container
}

// New 创建用户侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
