package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannly/guestsync/internal/auth"
	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
)

var testSecret = []byte("test-secret")

func newTestGateway(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "acc-1", testSecret, time.Minute, 15*time.Second)
}

func TestFetchGuests_ReturnsGuestsAndSendsToken(t *testing.T) {
	var gotOwner, gotToken string

	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotOwner = r.URL.Query().Get("owner")
		gotToken = r.Header.Get(common.AccessTokenHeaderName)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"guests":  []guest.Guest{{ID: "g1", Name: "דנה לוי"}},
		})
	})

	guests, err := gw.FetchGuests(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "g1", guests[0].ID)
	assert.Equal(t, "evt-1", gotOwner)

	accountID, err := auth.AccountIDFromToken(gotToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", accountID)
}

func TestFetchGuests_AcceptsSideGroupedPayload(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"guests": map[string]any{
				"sides": map[string]any{
					"groom":  []guest.Guest{{ID: "g1", Name: "דנה לוי", Side: guest.SideGroom}},
					"bride":  []guest.Guest{{ID: "g2", Name: "יעל כהן", Side: guest.SideBride}},
					"shared": []guest.Guest{{ID: "g3", Name: "רון שחר", Side: guest.SideShared}},
				},
			},
		})
	})

	guests, err := gw.FetchGuests(context.Background(), "evt-1")
	require.NoError(t, err)
	require.Len(t, guests, 3)
	assert.Equal(t, "g1", guests[0].ID)
	assert.Equal(t, "g2", guests[1].ID)
	assert.Equal(t, "g3", guests[2].ID)
}

func TestCreateGuest_PostsPayload(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/guests", r.URL.Path)

		var in guest.Guest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = "new-id"
		json.NewEncoder(w).Encode(map[string]any{"success": true, "guest": in})
	})

	created, err := gw.CreateGuest(context.Background(), guest.Guest{Name: "דנה לוי", OwnerKey: "acc-1"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, "דנה לוי", created.Name)
}

func TestDeleteAll_ReturnsCount(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/guests/delete-all", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "deletedCount": 7})
	})

	n, err := gw.DeleteAll(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestCleanupDuplicates_ReturnsCount(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "removedCount": 2})
	})

	n, err := gw.CleanupDuplicates(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNonSuccessStatus_MapsToError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"bad name"}`))
	})

	_, err := gw.FetchGuests(context.Background(), "acc-1")
	require.Error(t, err)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusBadRequest, gerr.Status)
	assert.Contains(t, gerr.Body, "bad name")
}

func TestRequestTimeout_Enforced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	gw := NewHTTPClient(srv.URL, "acc-1", testSecret, time.Minute, 50*time.Millisecond)

	start := time.Now()
	_, err := gw.FetchGuests(context.Background(), "acc-1")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestUpdateAccount_RoundTrip(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/accounts/acc-2", r.URL.Path)

		var in guest.Account
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "account": in})
	})

	acc, err := gw.UpdateAccount(context.Background(), guest.Account{ID: "acc-2", SharedEventID: "acc-1"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", acc.SharedEventID)
}
