package handlers

import (
	"net/http"

	"property-verify/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db            *gorm.DB
	walletService services.WalletService
}

func NewUserHandler(db *gorm.DB, walletService services.WalletService) *UserHandler {
	return &UserHandler{db: db, walletService: walletService}
}

// GetWallet returns the current wallet balance for a known user.
func (h *UserHandler) GetWallet(c *gin.Context) {
	email := c.Param("email")

	balance, err := h.walletService.Balance(h.db, email)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet_balance_cents": balance})
}
