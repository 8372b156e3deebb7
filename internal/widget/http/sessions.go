package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/checkout/internal/widget/service"
	"github.com/aussiebroadwan/checkout/pkg/httpx"
	"github.com/aussiebroadwan/checkout/pkg/slogx"
	"github.com/aussiebroadwan/checkout/pkg/widgetsdk"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type sessionCredentials struct {
	ClientID     string `validate:"required,printascii,max=128"`
	ClientSecret string `validate:"required,printascii"`
}

// SessionsHandler serves POST /v1/sessions for merchant back ends.
type SessionsHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Create widget session
//	@Description	Issues a session token for the authenticated client and returns the widget URL that carries it.
//	@Description	Authenticate with HTTP Basic (client_id:client_secret) or with form fields.
//	@Tags			Sessions
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			client_id		formData	string						false	"Client identifier (when not using Basic auth)"
//	@Param			client_secret	formData	string						false	"Client secret (when not using Basic auth)"
//	@Success		201				{object}	widgetsdk.SessionResponse	"session_token, iv, widget_url"
//	@Failure		400				{object}	widgetsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	widgetsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	widgetsdk.ErrorResponse		"error, error_description"
//	@Header			201				{string}	Cache-Control				"no-store"
//	@Router			/v1/sessions [post]
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		widgetsdk.ErrInvalidRequest.WithDescription("content type must be application/x-www-form-urlencoded").WriteError(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		widgetsdk.ErrInvalidRequest.WithDescription("invalid form body").WriteError(w)
		return
	}

	creds, ok := readCredentials(r)
	if err := validate.Struct(creds); !ok || err != nil {
		w.Header().Set("WWW-Authenticate", `Basic realm="checkout"`)
		widgetsdk.ErrInvalidClient.WithDescription("client credentials are required").WriteError(w)
		return
	}

	ctx = slogx.WithClientID(ctx, creds.ClientID)
	session, err := h.SessionService.Issue(ctx, creds.ClientID, creds.ClientSecret)
	if errors.Is(err, service.ErrInvalidCredentials) {
		w.Header().Set("WWW-Authenticate", `Basic realm="checkout"`)
		widgetsdk.ErrInvalidClient.WriteError(w)
		return
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to issue session", "error", err)
		widgetsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, widgetsdk.SessionResponse{
		SessionToken: session.Token.Wire(),
		IV:           session.Token.IVHex(),
		WidgetURL:    session.WidgetURL,
	})
}

// readCredentials prefers HTTP Basic and falls back to form fields. It
// reports false when both are present.
func readCredentials(r *http.Request) (sessionCredentials, bool) {
	id, secret, basic := r.BasicAuth()
	formID := r.PostForm.Get("client_id")
	formSecret := r.PostForm.Get("client_secret")

	if basic {
		if formID != "" || formSecret != "" {
			return sessionCredentials{}, false
		}
		return sessionCredentials{ClientID: id, ClientSecret: secret}, true
	}
	return sessionCredentials{ClientID: formID, ClientSecret: formSecret}, true
}
