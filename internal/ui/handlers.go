package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pvedash/pvedash/internal/apperrors"
	"github.com/pvedash/pvedash/internal/commands"
	"github.com/pvedash/pvedash/internal/proxmox"
	"github.com/pvedash/pvedash/internal/responses"
	"github.com/pvedash/pvedash/internal/version"
)

// HandlerService exposes the command façade as ui-api endpoints for the
// dashboard frontend.
type HandlerService struct {
	Commands *commands.Commands
}

type configResponse struct {
	commands.ConfigInfo
	Version version.Info `json:"version"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleGetConfig returns the connection display snapshot. No I/O.
func (h *HandlerService) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, configResponse{
		ConfigInfo: h.Commands.GetConfig(),
		Version:    version.Get(),
	})
}

// HandleGetContainers returns the node's containers, sorted by vmid.
func (h *HandlerService) HandleGetContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.Commands.GetContainers(r.Context())
	if err != nil {
		respondCommandError(w, r, err)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, containers)
}

// HandleStartContainer starts the container named in the URL.
func (h *HandlerService) HandleStartContainer(w http.ResponseWriter, r *http.Request) {
	vmid, ok := vmidParam(w, r)
	if !ok {
		return
	}

	msg, err := h.Commands.StartContainer(r.Context(), vmid)
	if err != nil {
		respondCommandError(w, r, err)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HandleStopContainer stops the container named in the URL.
func (h *HandlerService) HandleStopContainer(w http.ResponseWriter, r *http.Request) {
	vmid, ok := vmidParam(w, r)
	if !ok {
		return
	}

	msg, err := h.Commands.StopContainer(r.Context(), vmid)
	if err != nil {
		respondCommandError(w, r, err)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HandleDeleteContainer deletes the container named in the URL.
func (h *HandlerService) HandleDeleteContainer(w http.ResponseWriter, r *http.Request) {
	vmid, ok := vmidParam(w, r)
	if !ok {
		return
	}

	msg, err := h.Commands.DeleteContainer(r.Context(), vmid)
	if err != nil {
		respondCommandError(w, r, err)
		return
	}
	responses.RespondWithJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// vmidParam parses the {vmid} URL parameter, responding with a 400 when
// it is not a valid container id.
func vmidParam(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	raw := chi.URLParam(r, "vmid")
	vmid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		responses.RespondWithError(w, r, http.StatusBadRequest,
			apperrors.ErrCodeInvalidURLParam, "vmid must be an unsigned integer")
		return 0, false
	}
	return uint32(vmid), true
}

// respondCommandError maps façade errors onto HTTP statuses: a missing
// client is 503, everything from the node surfaces as 502 with the
// client's message verbatim.
func respondCommandError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *proxmox.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.Code == apperrors.ErrCodeNotInitialized {
			status = http.StatusServiceUnavailable
		}
		responses.RespondWithError(w, r, status, apiErr.Code, apiErr.Message)
		return
	}

	responses.RespondWithError(w, r, http.StatusInternalServerError,
		apperrors.ErrCodeInternalError, err.Error())
}
