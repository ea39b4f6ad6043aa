package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"property-verify/backend/internal/handlers"
	"property-verify/backend/internal/services"

	"github.com/gin-gonic/gin"
)

func setupUserHandler() (*MockWalletService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockWallet := &MockWalletService{}
	handler := handlers.NewUserHandler(nil, mockWallet)

	router := gin.New()
	router.GET("/api/users/:email/wallet", handler.GetWallet)

	return mockWallet, router
}

func TestGetWallet(t *testing.T) {
	mockWallet, router := setupUserHandler()
	mockWallet.balance = 90

	req, _ := http.NewRequest("GET", "/api/users/a@x.com/wallet", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["wallet_balance_cents"] != 90 {
		t.Errorf("Expected balance 90, got %d", response["wallet_balance_cents"])
	}
}

func TestGetWallet_UnknownUser(t *testing.T) {
	mockWallet, router := setupUserHandler()
	mockWallet.err = services.ErrUserNotFound

	req, _ := http.NewRequest("GET", "/api/users/ghost@x.com/wallet", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
