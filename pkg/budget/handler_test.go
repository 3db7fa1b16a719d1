package budget

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/backoffice/internal/event_bus"
	"github.com/klokku/backoffice/internal/rest"
	"github.com/klokku/backoffice/internal/utils"
	"github.com/klokku/backoffice/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	service := NewService(NewRepositoryStub(), event_bus.NewEventBus(), &utils.MockClock{FixedNow: now}, true)
	handler := NewHandler(service, NewCsvRenderer())

	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(user.WithUser(r.Context(), operator)))
		})
	})
	router.HandleFunc("/api/budget", handler.ListBudgets).Methods("GET")
	router.HandleFunc("/api/budget", handler.CreateBudget).Methods("POST")
	router.HandleFunc("/api/budget/summary", handler.GetSummary).Methods("GET")
	router.HandleFunc("/api/budget/{budgetId}", handler.GetBudget).Methods("GET")
	router.HandleFunc("/api/budget/{budgetId}", handler.DeleteBudget).Methods("DELETE")
	router.HandleFunc("/api/budget/{budgetId}/approve", handler.ApproveBudget).Methods("PATCH")
	router.HandleFunc("/api/budget/{budgetId}/reject", handler.RejectBudget).Methods("PATCH")
	return router
}

func serve(router *mux.Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_ListBudgets(t *testing.T) {
	router := newTestRouter(t)

	t.Run("should filter by query parameters", func(t *testing.T) {
		// when
		rr := serve(router, httptest.NewRequest("GET", "/api/budget?status=pendente&minValue=R%24+20.000,00", nil))

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		var dtos []BudgetDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
		require.Len(t, dtos, 1)
		assert.Equal(t, "ORC001", dtos[0].Id)
		assert.Equal(t, "Empresa XYZ Inc", dtos[0].Client.Name)
	})

	t.Run("should treat todos as no status filter", func(t *testing.T) {
		rr := serve(router, httptest.NewRequest("GET", "/api/budget?status=todos&dateFrom=2024-03-01", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var dtos []BudgetDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
		assert.Len(t, dtos, 3)
	})

	t.Run("should return empty json array", func(t *testing.T) {
		rr := serve(router, httptest.NewRequest("GET", "/api/budget?search=inexistente", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("should reject malformed filters", func(t *testing.T) {
		for _, query := range []string{"status=cancelado", "minValue=abc", "dateTo=31/02/2024"} {
			rr := serve(router, httptest.NewRequest("GET", "/api/budget?"+query, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code, query)
			var body rest.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "Invalid filter", body.Error)
		}
	})

	t.Run("should render csv", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/budget?status=aprovado", nil)
		req.Header.Set("Accept", "text/csv")

		rr := serve(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
		lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[1], "ORC002,Pedro Almeida"))
	})

	t.Run("should negotiate csv from accept lists", func(t *testing.T) {
		tests := []struct {
			accept string
			csv    bool
		}{
			{"text/csv, */*;q=0.8", true},
			{"application/json;q=0.9, text/csv; charset=utf-8", true},
			{"TEXT/CSV", true},
			{"application/json", false},
			{"text/csv;q=0, application/json", false},
			{"*/*", false},
		}
		for _, tt := range tests {
			req := httptest.NewRequest("GET", "/api/budget?status=aprovado", nil)
			req.Header.Set("Accept", tt.accept)

			rr := serve(router, req)

			require.Equal(t, http.StatusOK, rr.Code, tt.accept)
			assert.Equal(t, tt.csv, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/csv"), tt.accept)
		}
	})
}

func TestHandler_GetSummary(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, httptest.NewRequest("GET", "/api/budget/summary", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var dto SummaryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, 5, dto.Count)
	assert.Equal(t, "R$ 90.850,50", dto.Total)
	assert.Equal(t, StatusSummaryDTO{Count: 1, Total: "R$ 45.000,00"}, dto.ByStatus[StatusRejected])
}

func TestHandler_Lifecycle(t *testing.T) {
	router := newTestRouter(t)
	serve(router, httptest.NewRequest("GET", "/api/budget", nil))

	t.Run("should create budget", func(t *testing.T) {
		// given
		body, _ := json.Marshal(BudgetDTO{
			Client:       ClientDTO{Name: "Padaria Pão Quente", Email: "padaria@email.com"},
			Value:        "R$ 1.200,00",
			PaymentTerms: "PIX - à vista",
		})

		// when
		rr := serve(router, httptest.NewRequest("POST", "/api/budget", bytes.NewReader(body)))

		// then
		require.Equal(t, http.StatusCreated, rr.Code)
		var created BudgetDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, "ORC006", created.Id)
		assert.Equal(t, StatusPending, created.Status)
		assert.Equal(t, now.Format(DateLayout), created.IssueDate)
		assert.NotNil(t, created.Attachments)
	})

	t.Run("should reject invalid budget", func(t *testing.T) {
		rr := serve(router, httptest.NewRequest("POST", "/api/budget", strings.NewReader(`{"value":"100"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should reject malformed body", func(t *testing.T) {
		rr := serve(router, httptest.NewRequest("POST", "/api/budget", strings.NewReader(`{`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should approve once", func(t *testing.T) {
		first := serve(router, httptest.NewRequest("PATCH", "/api/budget/ORC006/approve", nil))
		second := serve(router, httptest.NewRequest("PATCH", "/api/budget/ORC006/reject", nil))

		require.Equal(t, http.StatusOK, first.Code)
		var approved BudgetDTO
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &approved))
		assert.Equal(t, StatusApproved, approved.Status)
		assert.Equal(t, http.StatusConflict, second.Code)
	})

	t.Run("should get budget", func(t *testing.T) {
		rr := serve(router, httptest.NewRequest("GET", "/api/budget/ORC006", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var dto BudgetDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Len(t, dto.History, 2)
	})

	t.Run("should delete budget", func(t *testing.T) {
		first := serve(router, httptest.NewRequest("DELETE", "/api/budget/ORC006", nil))
		second := serve(router, httptest.NewRequest("DELETE", "/api/budget/ORC006", nil))
		get := serve(router, httptest.NewRequest("GET", "/api/budget/ORC006", nil))

		assert.Equal(t, http.StatusNoContent, first.Code)
		assert.Equal(t, http.StatusNotFound, second.Code)
		assert.Equal(t, http.StatusNotFound, get.Code)
	})
}

func TestParseCriteria(t *testing.T) {
	criteria, err := ParseCriteria(map[string][]string{
		"search":        {"pedro"},
		"status":        {"all"},
		"maxValue":      {"10.000,00"},
		"paymentMethod": {"cartão"},
		"dateFrom":      {"01/03/2024"},
		"dateTo":        {"2024-03-31"},
	})

	require.NoError(t, err)
	assert.Equal(t, Criteria{
		SearchTerm:    "pedro",
		MaxValue:      "10.000,00",
		PaymentMethod: "cartão",
		DateFrom:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DateTo:        time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}, criteria)
}
