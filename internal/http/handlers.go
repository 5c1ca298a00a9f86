package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	httpopenapi "github.com/farmcoop/order-service/internal/http/openapi"
	"github.com/farmcoop/order-service/internal/model"
	"github.com/farmcoop/order-service/internal/obs"
)

// Ledger is the spreadsheet facade the handlers talk to.
type Ledger interface {
	GetUser(ctx context.Context, userID string) (model.User, error)
	GetProducts(ctx context.Context, userID string) (map[int]*model.Product, error)
	SetProductOrder(ctx context.Context, userID string, productID, quantity int) (map[int]*model.Product, error)
}

type App struct {
	Ledger Ledger
}

func NewApp(ledger Ledger) *App {
	return &App{Ledger: ledger}
}

type productList struct {
	Products []*model.Product `json:"products"`
}

// toProductList flattens the product map into a list sorted by product id,
// which is the order the columns appear in the sheet.
func toProductList(products map[int]*model.Product) productList {
	out := productList{Products: make([]*model.Product, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, p)
	}
	sort.Slice(out.Products, func(i, j int) bool { return out.Products[i].ID < out.Products[j].ID })
	return out
}

func (a *App) getUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	user, err := a.Ledger.GetUser(r.Context(), userID)
	if err != nil {
		writeSheetsError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

func (a *App) getProductsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteJSONError(w, http.StatusBadRequest, "badInput", "must specify 'userId'")
		return
	}
	products, err := a.Ledger.GetProducts(r.Context(), userID)
	if err != nil {
		writeSheetsError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toProductList(products))
}

type setOrderRequest struct {
	Quantity *int `json:"quantity"`
}

func (a *App) putProductHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		WriteJSONError(w, http.StatusBadRequest, "badInput", "must specify 'userId'")
		return
	}
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "productNotFound", "")
		return
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupportedMediaType", "expected application/json")
		return
	}
	var req setOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.Quantity == nil {
		WriteJSONError(w, http.StatusBadRequest, "badInput", "must specify 'quantity' as a number")
		return
	}

	products, err := a.Ledger.SetProductOrder(r.Context(), userID, productID, *req.Quantity)
	if err != nil {
		writeSheetsError(w, r, err)
		return
	}
	obs.Logger.Info("order_set",
		"user_id", userID,
		"product_id", productID,
		"quantity", *req.Quantity,
		"request_id", RequestIDFromContext(r.Context()),
	)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toProductList(products))
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *App) openapiHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
