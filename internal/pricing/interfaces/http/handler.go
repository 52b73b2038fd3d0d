package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingHandler 定价服务的 HTTP 处理器
type PricingHandler struct {
	cmd        *application.PricingCommandService
	query      *application.PricingQueryService
	maxPeriods int
}

// NewPricingHandler 创建 HTTP 处理器实例
func NewPricingHandler(cmd *application.PricingCommandService, query *application.PricingQueryService, maxPeriods int) *PricingHandler {
	if maxPeriods <= 0 {
		maxPeriods = 20000
	}
	return &PricingHandler{cmd: cmd, query: query, maxPeriods: maxPeriods}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎
func (h *PricingHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/price", h.PriceContract)
		api.POST("/convergence", h.SweepConvergence)
		api.POST("/payoff-curve", h.PayoffCurve)
		api.GET("/results/:symbol", h.GetLatest)
		api.GET("/results/:symbol/history", h.GetHistory)
	}
}

// ContractRequest 合约参数
type ContractRequest struct {
	Symbol        string  `json:"symbol" binding:"required"`
	PayoffKind    string  `json:"payoff_kind" binding:"required"`
	ExerciseStyle string  `json:"exercise_style"`
	Spot          float64 `json:"spot" binding:"required"`
	Volatility    float64 `json:"volatility"`
	DividendYield float64 `json:"dividend_yield"`
	RiskFreeRate  float64 `json:"risk_free_rate"`
	Strike        float64 `json:"strike" binding:"required"`
	Maturity      float64 `json:"maturity" binding:"required"`
	Cap           float64 `json:"cap"`
	Factor        float64 `json:"factor"`
}

// PriceRequest 定价请求
type PriceRequest struct {
	Contract        ContractRequest `json:"contract" binding:"required"`
	PricingModel    string          `json:"pricing_model"`
	Periods         int             `json:"periods"`
	IncludeLattices bool            `json:"include_lattices"`
}

// ConvergenceRequest 收敛扫描请求
type ConvergenceRequest struct {
	Contract ContractRequest `json:"contract" binding:"required"`
	Periods  []int           `json:"periods" binding:"required"`
}

// PayoffCurveRequest 收益曲线请求
type PayoffCurveRequest struct {
	PayoffKind string  `json:"payoff_kind" binding:"required"`
	Strike     float64 `json:"strike" binding:"required"`
	Cap        float64 `json:"cap"`
	Factor     float64 `json:"factor"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	Spot       float64 `json:"spot"`
	Volatility float64 `json:"volatility"`
	Samples    int     `json:"samples"`
}

// PriceContract 对合约定价
func (h *PricingHandler) PriceContract(c *gin.Context) {
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Periods > h.maxPeriods {
		respondError(c, http.StatusBadRequest,
			errors.New("periods exceeds the configured maximum"))
		return
	}

	result, diag, err := h.cmd.PriceContract(c.Request.Context(), toCommand(req.Contract, req.PricingModel, req.Periods))
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "pricing request failed", "error", err)
		respondError(c, statusFor(err), err)
		return
	}

	data := gin.H{"result": result}
	if req.IncludeLattices && diag != nil {
		data["diagnostics"] = gin.H{
			"stock_lattice":  latticeColumns(diag.Stock),
			"payoff_lattice": latticeColumns(diag.Payoff),
			"value_lattice":  latticeColumns(diag.Value),
		}
	}
	respondOK(c, data)
}

// SweepConvergence 收敛扫描
func (h *PricingHandler) SweepConvergence(c *gin.Context) {
	var req ConvergenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	for _, n := range req.Periods {
		if n > h.maxPeriods {
			respondError(c, http.StatusBadRequest,
				errors.New("periods exceeds the configured maximum"))
			return
		}
	}

	result, err := h.cmd.SweepConvergence(c.Request.Context(), application.ConvergenceCommand{
		Contract: toCommand(req.Contract, domain.PricingModelBinomial, 0),
		Periods:  req.Periods,
	})
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "convergence request failed", "error", err)
		respondError(c, statusFor(err), err)
		return
	}
	respondOK(c, result)
}

// PayoffCurve 收益曲线采样
func (h *PricingHandler) PayoffCurve(c *gin.Context) {
	var req PayoffCurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	curve, err := h.query.PayoffCurve(application.PayoffCurveQuery{
		PayoffKind: req.PayoffKind,
		Strike:     req.Strike,
		Cap:        req.Cap,
		Factor:     req.Factor,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Spot:       req.Spot,
		Volatility: req.Volatility,
		Samples:    req.Samples,
	})
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	respondOK(c, gin.H{"curve": curve})
}

// GetLatest 查询最新定价结果
func (h *PricingHandler) GetLatest(c *gin.Context) {
	result, err := h.query.GetLatest(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if result == nil {
		respondError(c, http.StatusNotFound, errors.New("no pricing result for symbol"))
		return
	}
	respondOK(c, gin.H{"result": result})
}

// GetHistory 查询历史定价结果
func (h *PricingHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	results, err := h.query.GetHistory(c.Request.Context(), c.Param("symbol"), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondOK(c, gin.H{"results": results})
}

func toCommand(req ContractRequest, model string, periods int) application.PriceContractCommand {
	return application.PriceContractCommand{
		Symbol:        req.Symbol,
		PayoffKind:    req.PayoffKind,
		ExerciseStyle: req.ExerciseStyle,
		PricingModel:  model,
		Spot:          req.Spot,
		Volatility:    req.Volatility,
		DividendYield: req.DividendYield,
		RiskFreeRate:  req.RiskFreeRate,
		Strike:        req.Strike,
		Maturity:      req.Maturity,
		Cap:           req.Cap,
		Factor:        req.Factor,
		Periods:       periods,
	}
}

// latticeColumns 将三角网格导出为按步分组的列
func latticeColumns(l *domain.Lattice) [][]float64 {
	columns := make([][]float64, l.Periods()+1)
	for j := 0; j <= l.Periods(); j++ {
		columns[j] = l.Column(j)
	}
	return columns
}

// statusFor 将领域错误映射到 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidModel),
		errors.Is(err, domain.ErrNumericalDegeneracy):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidSpot),
		errors.Is(err, domain.ErrInvalidVolatility),
		errors.Is(err, domain.ErrInvalidMaturity),
		errors.Is(err, domain.ErrInvalidStrike),
		errors.Is(err, domain.ErrInvalidPeriods),
		errors.Is(err, domain.ErrInvalidPayoff),
		errors.Is(err, domain.ErrInvalidStyle),
		errors.Is(err, domain.ErrUnsupportedContract):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok", "data": data})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"code": status, "message": err.Error()})
}
