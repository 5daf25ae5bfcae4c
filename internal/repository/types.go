package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CollegeID  uint
	OwnerID    uint
	Category   string
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint // 租借人
	OwnerID  uint // 出借人（订单中包含其物品）
	Status   string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
}

// LenderApplicationListFilter 查询出借人申请的过滤条件
type LenderApplicationListFilter struct {
	Page     int
	PageSize int
	Status   string
}
