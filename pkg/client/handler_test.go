package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	service, _, ctx := setup(t)
	maria, err := service.Create(ctx, Client{Name: "Maria Silva", Document: "12345678901"})
	require.NoError(t, err)
	_, err = service.Create(ctx, Client{Name: "Ana Costa", Document: "98765432100", Email: "ana@costa.com.br"})
	require.NoError(t, err)

	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/client", handler.ListClients).Methods("GET")
	router.HandleFunc("/api/client/{clientId}", handler.GetClient).Methods("GET")
	router.HandleFunc("/api/client/{clientId}", handler.DeleteClient).Methods("DELETE")

	serve := func(method, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil).WithContext(ctx)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("should list clients by name", func(t *testing.T) {
		rr := serve("GET", "/api/client")

		assert.Equal(t, http.StatusOK, rr.Code)
		var dtos []ClientDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&dtos))
		require.Len(t, dtos, 2)
		assert.Equal(t, "Ana Costa", dtos[0].Name)
		assert.Equal(t, "Maria Silva", dtos[1].Name)
	})

	t.Run("should search clients", func(t *testing.T) {
		rr := serve("GET", "/api/client?search=costa.com")

		var dtos []ClientDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&dtos))
		require.Len(t, dtos, 1)
		assert.Equal(t, "Ana Costa", dtos[0].Name)
	})

	t.Run("should get client", func(t *testing.T) {
		rr := serve("GET", "/api/client/"+strconv.Itoa(maria.Id))

		assert.Equal(t, http.StatusOK, rr.Code)
		var dto ClientDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
		assert.Equal(t, maria.Uid, dto.Uid)
		assert.Equal(t, Individual, dto.PersonType)
	})

	t.Run("should reject malformed id", func(t *testing.T) {
		rr := serve("GET", "/api/client/abc")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("should delete client once", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve("DELETE", "/api/client/"+strconv.Itoa(maria.Id)).Code)
		assert.Equal(t, http.StatusNotFound, serve("DELETE", "/api/client/"+strconv.Itoa(maria.Id)).Code)
		assert.Equal(t, http.StatusNotFound, serve("GET", "/api/client/"+strconv.Itoa(maria.Id)).Code)
	})
}
