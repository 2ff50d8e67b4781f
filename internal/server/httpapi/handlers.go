package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/logging"
	"github.com/plannly/guestsync/internal/server/shared/db"
)

type Handler struct {
	rm  db.RepositoryManager
	log logging.Logger
}

func NewHandler(rm db.RepositoryManager, log logging.Logger) *Handler {
	return &Handler{rm: rm, log: log.With("component", "httpapi")}
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	if errors.Is(err, common.ErrNotFound) {
		status = http.StatusNotFound
	}
	h.log.Error(c.Request.Context(), msg, "error", err)
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func (h *Handler) ListGuests(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "owner is required"})
		return
	}

	list, err := h.rm.Guests().ListByOwner(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "failed to list guests")
		return
	}
	if list == nil {
		list = []guest.Guest{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guests": list})
}

func (h *Handler) CreateGuest(c *gin.Context) {
	var g guest.Guest
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if g.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name is required"})
		return
	}
	if g.NumberOfGuests < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "numberOfGuests must not be negative"})
		return
	}
	if g.Side == "" {
		g.Side = guest.SideShared
	}
	if !guest.ValidSide(g.Side) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown side"})
		return
	}
	if g.OwnerKey == "" {
		g.OwnerKey = c.GetString(accountIDKey)
	}

	if err := h.rm.Guests().Create(c.Request.Context(), &g); err != nil {
		h.fail(c, err, "failed to create guest")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": g})
}

// UpdateGuest is a partial merge: the request body is unmarshalled over
// the stored row, so absent fields keep their values while explicit
// zeroes ("numberOfGuests": 0) and explicit nulls ("confirmed": null)
// take effect.
func (h *Handler) UpdateGuest(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.rm.Guests().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "guest not found")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := json.Unmarshal(body, existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	existing.ID = id

	if existing.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name is required"})
		return
	}
	if existing.NumberOfGuests < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "numberOfGuests must not be negative"})
		return
	}

	if err := h.rm.Guests().Update(c.Request.Context(), existing); err != nil {
		h.fail(c, err, "failed to update guest")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": existing})
}

func (h *Handler) DeleteGuest(c *gin.Context) {
	id := c.Param("id")
	if err := h.rm.Guests().Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "failed to delete guest")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteAllGuests(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "owner is required"})
		return
	}

	n, err := h.rm.Guests().DeleteAllByOwner(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "failed to delete guests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": n})
}

func (h *Handler) CleanupDuplicates(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "owner is required"})
		return
	}

	n, err := h.rm.Guests().CleanupDuplicates(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "failed to clean up duplicates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removedCount": n})
}

func (h *Handler) GetAccount(c *gin.Context) {
	a, err := h.rm.Accounts().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "account not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "account": a})
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var a guest.Account
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if a.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "id is required"})
		return
	}
	if err := h.rm.Accounts().Create(c.Request.Context(), &a); err != nil {
		h.fail(c, err, "failed to create account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "account": a})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.rm.Accounts().Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "account not found")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := json.Unmarshal(body, existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	existing.ID = id

	if err := h.rm.Accounts().Update(c.Request.Context(), existing); err != nil {
		h.fail(c, err, "failed to update account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "account": existing})
}
