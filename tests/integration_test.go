package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pos_gateway/api"
	"pos_gateway/internal/notify"
	"pos_gateway/internal/posapi"
	"pos_gateway/internal/sale"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

// newPOSMock stands in for the remote POS API with a fixed data set.
func newPOSMock(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/All/Min/Product", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result_code":"200","products":[
			{"proid":5,"pro_name":"Coffee","qty":2,"qty_min":3}
		]}`))
	})
	mux.HandleFunc("/import/All/Import", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result_code":"200","imports":[
			{"imp_id":5,"status":"Pending","imp_date":"2024-05-02 09:00:00"},
			{"imp_id":6,"status":"Approved","imp_date":"2024-05-01 09:00:00"}
		]}`))
	})
	mux.HandleFunc("/export/All/Export", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result_code":"200","exports":[
			{"exp_id":3,"status":"ລໍຖ້າ","exp_date":"2024-05-03 10:00:00"}
		]}`))
	})
	mux.HandleFunc("/sale/All/Sales", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result_code":"200","sales":[
			{"sale_id":1,"cus_id":1,"emp_id":2,"subtotal":2500,"pay":3000,"money_change":500,"status":"Paid","date":"2024-05-01 10:00:00"},
			{"sale_id":2,"cus_id":2,"emp_id":2,"subtotal":800,"pay":800,"money_change":0,"status":"Paid","date":"2024-05-02 11:00:00"}
		]}`))
	})
	mux.HandleFunc("/sale/Insert/Sales", func(w http.ResponseWriter, r *http.Request) {
		var payload posapi.SalePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"unreadable payload"}`))
			return
		}
		w.Write([]byte(`{"result_code":"201","message":"created","sale_id":99}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, posURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := zaptest.NewLogger(t)
	client := posapi.NewClient(posapi.Config{BaseURL: posURL, Timeout: 2 * time.Second}, logger)
	t.Cleanup(client.Close)

	api.InitRoutes(router, client, notify.NewLocalHistory(), logger)
	return router
}

func TestGatewayEndToEnd(t *testing.T) {
	posMock := newPOSMock(t)
	router := newGateway(t, posMock.URL)

	t.Run("GET_Ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GET_Notifications", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Notifications []notify.Notification `json:"notifications"`
			Total         int                   `json:"total"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 3, response.Total, "1 low stock + 1 pending import + 1 pending export")

		ids := make(map[string]bool)
		for _, n := range response.Notifications {
			ids[n.ID] = true
		}
		assert.True(t, ids["low-stock-5"])
		assert.True(t, ids["import-5"])
		assert.True(t, ids["export-3"])

		for i := 0; i < len(response.Notifications)-1; i++ {
			assert.False(t, response.Notifications[i].Date.Before(response.Notifications[i+1].Date))
		}
	})

	t.Run("GET_NotificationCounts", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/counts", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var counts notify.Counts
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
		assert.Equal(t, 1, counts.LowStock)
		assert.Equal(t, 1, counts.PendingImports)
		assert.Equal(t, 1, counts.PendingExports)
		assert.Equal(t, 3, counts.Total)
	})

	t.Run("POST_CreateSale", func(t *testing.T) {
		body := []byte(`{
			"cus_id": "1",
			"emp_id": 2,
			"products": [
				{"proid": 1, "qty": 2, "price": 1000},
				{"proid": 2, "qty": 1, "price": 500}
			]
		}`)

		req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var receipt sale.Receipt
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
		assert.NotEmpty(t, receipt.Reference)
		assert.Equal(t, 99, receipt.Ack.SaleID.Int())
		assert.Equal(t, 2500.0, receipt.Payload.Subtotal)
		assert.Equal(t, 2500.0, receipt.Payload.Pay)
		assert.Equal(t, 0.0, receipt.Payload.MoneyChange)
	})

	t.Run("POST_CreateSale_MissingCustomer", func(t *testing.T) {
		body := []byte(`{"emp_id": 2, "products": [{"proid": 1, "qty": 1, "price": 100}]}`)

		req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET_SalesHistory_FilterByCustomer", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales?customer_id=1", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Results  []posapi.SaleRecord  `json:"results"`
			Metadata sale.HistoryMetadata `json:"metadata"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Results, 1)
		assert.Equal(t, 1, response.Results[0].ID.Int())
		assert.Equal(t, 2500.0, response.Metadata.TotalAmount)
	})
}

func TestGatewayWithUnreachablePOSAPI(t *testing.T) {
	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadServer.Close()

	router := newGateway(t, deadServer.URL)

	t.Run("GET_Notifications_DegradesToEmpty", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))
		assert.Equal(t, http.StatusOK, w.Code, "aggregation never fails as a whole")

		var response struct {
			Total int `json:"total"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 0, response.Total)
	})

	t.Run("POST_CreateSale_GatewayTimeout", func(t *testing.T) {
		body := []byte(`{"cus_id": 1, "emp_id": 2, "products": [{"proid": 1, "qty": 1, "price": 100}]}`)

		req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}
