// Package webui serves the browser dashboard: a small order form plus
// JSON endpoints backed by the bot facade.
package webui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/futures-order-bot/internal/bot"
	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/monitoring"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// Server wires the gin router to the bot facade.
type Server struct {
	bot    *bot.Bot
	log    *logrus.Logger
	engine *gin.Engine
	recent *actionLog
}

// NewServer builds the router. The caller starts it with Run.
func NewServer(b *bot.Bot, log *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		bot:    b,
		log:    log,
		engine: gin.New(),
		recent: newActionLog(20),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("Web UI listening")
	return s.engine.Run(addr)
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/metrics", gin.WrapH(monitoring.Handler()))

	api := s.engine.Group("/api")
	api.GET("/account", s.handleAccount)
	api.GET("/price/:symbol", s.handlePrice)
	api.GET("/positions", s.handlePositions)
	api.GET("/orders", s.handleOrders)
	api.GET("/logs", s.handleLogs)
	api.POST("/order", s.handlePlaceOrder)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

func (s *Server) handleAccount(c *gin.Context) {
	account, err := s.bot.GetAccountInfo(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) handlePrice(c *gin.Context) {
	symbol := c.Param("symbol")

	price, err := s.bot.GetSymbolPrice(c.Request.Context(), symbol)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": strings.ToUpper(strings.TrimSpace(symbol)),
		"price":  price.String(),
	})
}

func (s *Server) handlePositions(c *gin.Context) {
	positions, err := s.bot.GetPositions(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

func (s *Server) handleOrders(c *gin.Context) {
	orders, err := s.bot.GetOpenOrders(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) handleLogs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logs": s.recent.entries()})
}

// orderForm is the POST /api/order body. Price fields are optional
// depending on the order type.
type orderForm struct {
	Type        string  `json:"type" binding:"required"`
	Symbol      string  `json:"symbol" binding:"required"`
	Side        string  `json:"side" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	Price       float64 `json:"price"`
	StopPrice   float64 `json:"stopPrice"`
	TpPrice     float64 `json:"tpPrice"`
	SlPrice     float64 `json:"slPrice"`
	SlLimit     float64 `json:"slLimit"`
	TimeInForce string  `json:"timeInForce"`
}

func (s *Server) handlePlaceOrder(c *gin.Context) {
	var form orderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	switch strings.ToUpper(strings.TrimSpace(form.Type)) {
	case "MARKET":
		ord, err := s.bot.PlaceMarketOrder(ctx, form.Symbol, form.Side, form.Quantity)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.recent.add("market order placed", ord.Symbol+" "+string(ord.Side)+" "+ord.OrigQty)
		c.JSON(http.StatusOK, ord)

	case "LIMIT":
		ord, err := s.bot.PlaceLimitOrder(ctx, form.Symbol, form.Side, form.Quantity, form.Price, form.TimeInForce)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.recent.add("limit order placed", ord.Symbol+" "+string(ord.Side)+" "+ord.OrigQty+" @ "+ord.Price)
		c.JSON(http.StatusOK, ord)

	case "STOP":
		ord, err := s.bot.PlaceStopLimitOrder(ctx, form.Symbol, form.Side, form.Quantity, form.Price, form.StopPrice, form.TimeInForce)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.recent.add("stop-limit order placed", ord.Symbol+" "+string(ord.Side)+" trigger "+ord.StopPrice)
		c.JSON(http.StatusOK, ord)

	case "TAKE_PROFIT":
		ord, err := s.bot.PlaceTakeProfitOrder(ctx, form.Symbol, form.Side, form.Quantity, form.Price, form.StopPrice, form.TimeInForce)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.recent.add("take-profit order placed", ord.Symbol+" "+string(ord.Side)+" trigger "+ord.StopPrice)
		c.JSON(http.StatusOK, ord)

	case "OCO":
		// The stop leg's limit price defaults to its trigger price.
		slLimit := form.SlLimit
		if slLimit == 0 {
			slLimit = form.SlPrice
		}

		result, err := s.bot.PlaceOCOOrder(ctx, form.Symbol, form.Side, form.Quantity, form.TpPrice, form.SlPrice, slLimit, form.TimeInForce)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.recent.add("OCO pair placed", result.TakeProfit.Symbol+" tp "+result.TakeProfit.OrderID+" sl "+result.StopLoss.OrderID)
		c.JSON(http.StatusOK, result)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order type: " + form.Type})
	}
}

// renderError maps an error to a status code and the {"error": ...}
// body every failing endpoint returns.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var vErr *validate.Error
	var notFound *exchange.SymbolNotFoundError
	var apiErr *exchange.APIError
	var partial *bot.PartialFailureError

	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &partial):
		status = http.StatusBadGateway
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
