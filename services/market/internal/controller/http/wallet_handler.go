package http

import (
	"net/http"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletUseCase usecase.WalletUseCase
	logger        *logger.Logger
}

func NewWalletHandler(walletUseCase usecase.WalletUseCase, logger *logger.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
		logger:        logger,
	}
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Get balance for the authenticated user
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Wallet
// @Failure      404  {object}  ErrorResponse
// @Router       /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, _ := currentUser(c)

	wallet, err := h.walletUseCase.GetWallet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetTransactions godoc
// @Summary      Get transactions
// @Description  Ledger history for the authenticated user, newest first
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of transactions"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID, _ := currentUser(c)
	limit, offset := pagination(c, 50)

	transactions, err := h.walletUseCase.GetTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}
