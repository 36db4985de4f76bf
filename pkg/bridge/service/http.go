package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	apphttp "github.com/chainsafe/icp-token/pkg/app/http"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the bridge endpoints under /icp. Commands are
// mounted behind authn, which must put the caller authority in the request
// context; queries are public.
func RegisterRoutes(r chi.Router, service Service, authn func(http.Handler) http.Handler, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/icp", func(r chi.Router) {
		r.Get("/config", h.handle(h.getConfig))
		r.Get("/escrows", h.handle(h.listEscrows))
		r.Get("/escrows/{seq}", h.handle(h.getEscrow))
		r.Get("/deposits", h.handle(h.listDeposits))
		r.Get("/supplies/{contract}/{code}", h.handle(h.getSupply))
		r.Get("/balances/{contract}/{owner}/{code}", h.handle(h.getBalance))
		r.Get("/outbox", h.handle(h.listOutbox))
		r.Get("/invariants", h.handle(h.checkInvariants))

		r.Group(func(r chi.Router) {
			if authn != nil {
				r.Use(authn)
			}
			r.Post("/config", h.handle(h.initConfig))
			r.Post("/accounts", h.handle(h.registerAccount))
			r.Post("/tokens", h.handle(h.createToken))
			r.Post("/transfer", h.handle(h.transfer))
			r.Post("/notify/transfer", h.handle(h.onNativeTransfer))
			r.Post("/bridge/transfer", h.handle(h.bridgeTransfer))
			r.Post("/bridge/refund", h.handle(h.bridgeRefund))
			r.Post("/receive", h.handle(h.peerReceive))
			r.Post("/receipt", h.handle(h.peerReceipt))
			r.Post("/outbox/{id}/requeue", h.handle(h.requeueAction))
		})
	})
}

// handle adapts an error-returning handler and logs internal failures, which
// reach the client only as a generic message.
func (h *HTTP) handle(fn apphttp.HandlerFunc) http.HandlerFunc {
	return apphttp.HandleError(func(w http.ResponseWriter, r *http.Request) error {
		err := fn(w, r)
		if err != nil && apperrors.IsInternalError(err) {
			h.logger.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err))
		}
		return err
	})
}

func caller(r *http.Request) (auth.Authority, error) {
	a, ok := auth.AuthorityFromContext(r.Context())
	if !ok || a.IsZero() {
		return auth.Authority{}, apperrors.UnAuthorizedError(nil, "missing caller authority")
	}
	return a, nil
}

// handleCommand decodes a request body of type Req, runs fn on behalf of the
// caller and writes its result.
func handleCommand[Req, Res any](
	w http.ResponseWriter,
	r *http.Request,
	status int,
	fn func(ctx context.Context, caller auth.Authority, req *Req) (Res, error),
) error {
	a, err := caller(r)
	if err != nil {
		return err
	}
	var req Req
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}
	res, err := fn(r.Context(), a, &req)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, status, res)
	return nil
}

func (h *HTTP) initConfig(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusCreated, h.service.InitConfig)
}

func (h *HTTP) registerAccount(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusCreated, h.service.RegisterAccount)
}

func (h *HTTP) createToken(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusCreated, h.service.CreateToken)
}

func (h *HTTP) transfer(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusOK, h.service.Transfer)
}

func (h *HTTP) onNativeTransfer(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusOK, h.service.OnNativeTransfer)
}

func (h *HTTP) bridgeTransfer(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusAccepted, h.service.BridgeTransfer)
}

func (h *HTTP) bridgeRefund(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusAccepted, h.service.BridgeRefund)
}

func (h *HTTP) peerReceive(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusOK, h.service.PeerReceive)
}

func (h *HTTP) peerReceipt(w http.ResponseWriter, r *http.Request) error {
	return handleCommand(w, r, http.StatusOK, h.service.PeerReceipt)
}

func (h *HTTP) requeueAction(w http.ResponseWriter, r *http.Request) error {
	a, err := caller(r)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return apperrors.BadRequestError(err, "invalid action id")
	}
	action, err := h.service.RequeueAction(r.Context(), a, id)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, action)
	return nil
}

func (h *HTTP) getConfig(w http.ResponseWriter, r *http.Request) error {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, cfg)
	return nil
}

func (h *HTTP) listEscrows(w http.ResponseWriter, r *http.Request) error {
	escrows, err := h.service.ListEscrows(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, escrows)
	return nil
}

func (h *HTTP) getEscrow(w http.ResponseWriter, r *http.Request) error {
	seq, err := strconv.ParseUint(chi.URLParam(r, "seq"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid sequence")
	}
	rec, err := h.service.GetEscrow(r.Context(), seq)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, rec)
	return nil
}

func (h *HTTP) listDeposits(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	filter := bridge.DepositFilter{
		Contract: chain.Name(q.Get("contract")),
		Owner:    chain.Name(q.Get("owner")),
	}
	deposits, err := h.service.ListDeposits(r.Context(), filter)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, deposits)
	return nil
}

func (h *HTTP) getSupply(w http.ResponseWriter, r *http.Request) error {
	rec, err := h.service.GetSupply(r.Context(), chain.Name(chi.URLParam(r, "contract")), chi.URLParam(r, "code"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, rec)
	return nil
}

func (h *HTTP) getBalance(w http.ResponseWriter, r *http.Request) error {
	bal, err := h.service.GetBalance(r.Context(),
		chain.Name(chi.URLParam(r, "contract")),
		chain.Name(chi.URLParam(r, "owner")),
		chi.URLParam(r, "code"),
	)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, bal)
	return nil
}

func (h *HTTP) listOutbox(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.BadRequestError(err, "invalid limit")
		}
		limit = n
	}
	actions, err := h.service.ListOutbox(r.Context(), bridge.OutboxStatus(q.Get("status")), limit)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, actions)
	return nil
}

func (h *HTTP) checkInvariants(w http.ResponseWriter, r *http.Request) error {
	report, err := h.service.CheckInvariants(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, report)
	return nil
}
