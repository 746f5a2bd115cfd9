package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/pos-tracker/internal/models"
	"github.com/rogerio-castellano/pos-tracker/internal/notify"
	"github.com/rogerio-castellano/pos-tracker/internal/repo"
	"github.com/rogerio-castellano/pos-tracker/internal/sales"
	"golang.org/x/crypto/bcrypt"
)

var (
	token            string
	secondToken      string
	productRepo      *repo.InMemoryProductRepository
	saleRepo         *repo.InMemorySaleRepository
	notificationRepo *repo.InMemoryNotificationRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter(nil)

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	secondToken, err = generateToken(r, "second", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating second token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	saleRepo = repo.NewInMemorySaleRepository()
	handler.SetSaleRepo(saleRepo)

	notificationRepo = repo.NewInMemoryNotificationRepository()
	handler.SetNotificationRepo(notificationRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	})
	userRepo.CreateUser(models.User{
		Username:     "second",
		PasswordHash: string(hash),
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(productRepo, saleRepo)

	counter := notify.NewSaleScanCounter(saleRepo)
	engine := notify.NewEngine(notificationRepo, productRepo, saleRepo, counter, 0, 0)
	handler.SetRuleEngine(engine)
	handler.SetProcessor(sales.NewProcessor(productRepo, saleRepo, engine, counter))
}

func clearAll() {
	productRepo.Clear()
	saleRepo.Clear()
	notificationRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.UserLogin{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", token, p)
}

func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("product setup failed with status %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("product setup decode failed: %v", err))
	}
	return resp
}

func addToCart(r http.Handler, productID int) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/cart/items", token, handler.CartItemRequest{ProductID: productID})
}

func incrementCartItem(r http.Handler, productID int) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, fmt.Sprintf("/cart/items/%d/increment", productID), token, nil)
}

func checkout(r http.Handler, req handler.CheckoutRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/checkout", token, req)
}

func sellUnits(r http.Handler, productID, units int, key string) *httptest.ResponseRecorder {
	addToCart(r, productID)
	for i := 1; i < units; i++ {
		incrementCartItem(r, productID)
	}
	return checkout(r, handler.CheckoutRequest{PaymentMethod: "cash", IdempotencyKey: key})
}

func saleFilterAll() repo.SaleFilter {
	return repo.SaleFilter{}
}

func notificationsOfType(ownerID int, nt models.NotificationType) []models.Notification {
	all, _ := notificationRepo.GetAll(ownerID)
	var matched []models.Notification
	for _, n := range all {
		if n.Type == nt {
			matched = append(matched, n)
		}
	}
	return matched
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
