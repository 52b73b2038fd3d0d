package application

// PriceContractCommand 合约定价命令
type PriceContractCommand struct {
	Symbol        string
	PayoffKind    string
	ExerciseStyle string
	PricingModel  string
	Spot          float64
	Volatility    float64
	DividendYield float64
	RiskFreeRate  float64
	Strike        float64
	Maturity      float64
	// 结构化凭证参数
	Cap    float64
	Factor float64
	// 二叉树周期数，0 表示使用服务默认值
	Periods int
}

// ConvergenceCommand 收敛扫描命令：同一合约在一组周期数下定价
type ConvergenceCommand struct {
	Contract PriceContractCommand
	Periods  []int
}

// ConvergencePoint 价格-周期数曲线上的一点
type ConvergencePoint struct {
	Periods int     `json:"periods"`
	Price   float64 `json:"price"`
}

// ConvergenceResult 收敛扫描结果
// ClosedForm 仅在合约存在闭式解（欧式普通期权）时给出。
type ConvergenceResult struct {
	Symbol     string             `json:"symbol"`
	Points     []ConvergencePoint `json:"points"`
	ClosedForm *float64           `json:"closed_form,omitempty"`
}

// PayoffCurveQuery 收益曲线查询：在一个价格区间上采样收益函数
type PayoffCurveQuery struct {
	PayoffKind string
	Strike     float64
	Cap        float64
	Factor     float64
	// 采样区间，零值时由 Spot 与 Volatility 推导
	MinPrice   float64
	MaxPrice   float64
	Spot       float64
	Volatility float64
	Samples    int
}

// CurvePoint 收益曲线上的一点
type CurvePoint struct {
	Price  float64 `json:"price"`
	Payout float64 `json:"payout"`
}
