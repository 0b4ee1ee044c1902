package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailabilityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewAvailabilityController(nil)
	r.POST("/availability", ctrl.Check)
	r.GET("/availability/search", ctrl.Search)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAvailabilityCheckRejectsBadInput(t *testing.T) {
	r := newAvailabilityRouter()

	t.Run("MissingDates", func(t *testing.T) {
		w := postJSON(t, r, "/availability", map[string]interface{}{"roomId": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("MalformedCheckIn", func(t *testing.T) {
		w := postJSON(t, r, "/availability", map[string]interface{}{
			"roomId":   1,
			"checkIn":  "10/06/2024",
			"checkOut": "2024-06-13",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MalformedCheckOut", func(t *testing.T) {
		w := postJSON(t, r, "/availability", map[string]interface{}{
			"roomId":   1,
			"checkIn":  "2024-06-10",
			"checkOut": "next week",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAvailabilitySearchRejectsBadDates(t *testing.T) {
	r := newAvailabilityRouter()

	req, _ := http.NewRequest(http.MethodGet, "/availability/search?checkIn=bad&checkOut=2024-06-13", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveRoomList(t *testing.T) {
	t.Run("ExplicitListWins", func(t *testing.T) {
		req := availabilityRequest{RoomID: 9, RoomIDs: []uint{1, 2}}
		assert.Equal(t, []uint{1, 2}, req.resolveRoomList())
	})

	t.Run("RepeatedRoom", func(t *testing.T) {
		req := availabilityRequest{RoomID: 4, Rooms: 3}
		assert.Equal(t, []uint{4, 4, 4}, req.resolveRoomList())
	})

	t.Run("DefaultsToSingle", func(t *testing.T) {
		req := availabilityRequest{RoomID: 4}
		assert.Equal(t, []uint{4}, req.resolveRoomList())
	})

	t.Run("NoRoomMeansSearchMode", func(t *testing.T) {
		req := availabilityRequest{Rooms: 2}
		assert.Nil(t, req.resolveRoomList())
	})
}
