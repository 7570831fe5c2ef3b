package server

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
	"github.com/yago-123/burrow-rendez/pkg/rendez/types"
)

// Directory is the peer code to address mapping served over HTTP
type Directory interface {
	Register(code, observedAddr string) (string, error)
	Lookup(code string) (string, error)
}

type Handler struct {
	directory Directory
	codeField string
	logger    logr.Logger
}

func NewHandler(d Directory, codeField string, logger logr.Logger) *Handler {
	return &Handler{
		directory: d,
		codeField: codeField,
		logger:    logger,
	}
}

// RegisterHandler godoc
// @Summary      Register a peer
// @Description  Binds the peer code in the body to the source address of the request
// @Tags         rendezvous
// @Accept       json
// @Produce      json
// @Param        registerRequest body object true "Peer code, e.g. {\"peerCode\": \"fox-1\"}"
// @Success      200  {object}  RegisterResponse
// @Failure      400  {object}  ErrorResponse "invalid request body"
// @Failure      500  {object}  ErrorResponse "failed to register peer"
// @Router       /register [post]
func (h *Handler) RegisterHandler(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: types.DetailBadRequest})
		return
	}

	// An empty code is a valid key, only a missing or non-string field is rejected
	code, ok := body[h.codeField].(string)
	if !ok {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: types.DetailBadRequest})
		return
	}

	// The connection peer address is the only trusted source, forwarding headers are ignored
	addr, err := h.directory.Register(code, c.RemoteIP())
	if err != nil {
		h.logger.Error(err, "failed to register peer", "code", code)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: types.DetailRegisterErr})
		return
	}

	c.JSON(http.StatusOK, types.RegisterResponse{
		Message: types.MessageRegistered,
		IP:      addr,
	})
}

// LookupHandler godoc
// @Summary      Look up a peer
// @Description  Fetch the address registered for a peer code
// @Tags         rendezvous
// @Produce      json
// @Param        code path string true "Peer code"
// @Success      200 {object} LookupResponse
// @Failure      404 {object} ErrorResponse "Device not found"
// @Router       /lookup/{code} [get]
func (h *Handler) LookupHandler(c *gin.Context) {
	code := c.Param("code")

	addr, err := h.directory.Lookup(code)
	if err != nil {
		if stderrors.Is(err, errors.ErrPeerNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{Detail: types.DetailNotFound})
			return
		}

		h.logger.Error(err, "failed to lookup peer", "code", code)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: types.DetailLookupErr})
		return
	}

	c.JSON(http.StatusOK, types.LookupResponse{IP: addr})
}

// WelcomeHandler answers liveness probes on GET and HEAD /
func (h *Handler) WelcomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{Message: types.MessageWelcome})
}
