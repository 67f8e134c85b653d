package wallet

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	wallets := protected.Group("/wallets")
	{
		wallets.GET("/me", h.GetMyWallet)
		wallets.GET("/me/transactions", h.ListMyTransactions)
		wallets.POST("/me/deposit", h.DepositToMyWallet)
		wallets.POST("/me/withdraw", h.WithdrawFromMyWallet)
		wallets.GET("/me/payout-account", h.GetMyPayoutAccount)
		wallets.PUT("/me/payout-account", h.SaveMyPayoutAccount)
	}
}
