package rpc

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"creatorpass/core/events"
	"creatorpass/native/platform"
	"creatorpass/observability"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
)

// AuthTokenEnv names the environment variable carrying the bearer token
// required for mutating methods.
const AuthTokenEnv = "CREATORPASS_RPC_TOKEN"

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeUnauthorized   = -32001
	codeServerError    = -32000
	codeRateLimited    = -32005
	codeForbidden      = -32021
	codePrecondition   = -32030
)

// Server exposes the platform engine over JSON-RPC 2.0.
type Server struct {
	engine    *platform.Engine
	recorder  *events.Recorder
	authToken string
	limiter   *requestLimiter
	logger    *slog.Logger
}

// NewServer constructs a server around the supplied engine. The recorder is
// optional; without it the event query returns an empty log.
func NewServer(engine *platform.Engine, recorder *events.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:    engine,
		recorder:  recorder,
		authToken: strings.TrimSpace(os.Getenv(AuthTokenEnv)),
		logger:    logger,
	}
}

// SetRateLimit caps mutating requests at perMinute. A non-positive value
// leaves the server unlimited.
func (s *Server) SetRateLimit(perMinute int) {
	s.limiter = newRequestLimiter(perMinute)
}

// Handler returns the HTTP handler serving the JSON-RPC endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)
	return mux
}

// Start serves the JSON-RPC endpoint on the supplied address, blocking until
// the listener fails.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting JSON-RPC server", slog.String("addr", addr))
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      int               `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string, data interface{}) {
	if status <= 0 {
		status = http.StatusBadRequest
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	errObj := &RPCError{Code: code, Message: message}
	if data != nil {
		errObj.Data = data
	}
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Error: errObj}
	_ = json.NewEncoder(w).Encode(resp)
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result}
	_ = json.NewEncoder(w).Encode(resp)
}

type handlerFunc func(w http.ResponseWriter, req *RPCRequest)

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, nil, codeInvalidRequest, "POST required", nil)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	var req RPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON payload", err.Error())
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported jsonrpc version", nil)
		return
	}

	handler, mutating := s.route(req.Method)
	if handler == nil {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method), nil)
		return
	}
	if mutating {
		if err := s.requireAuth(r); err != nil {
			writeError(w, http.StatusUnauthorized, req.ID, codeUnauthorized, err.Error(), nil)
			return
		}
		if !s.limiter.allow() {
			writeError(w, http.StatusTooManyRequests, req.ID, codeRateLimited, "rate limit exceeded", nil)
			return
		}
	}
	start := time.Now()
	rec := &codeRecorder{inner: w}
	handler(rec, &req)
	observability.Metrics().ObserveRequest(req.Method, start, rec.errCode)
}

func (s *Server) route(method string) (handlerFunc, bool) {
	switch method {
	case "platform_purchaseSubscription":
		return s.handlePurchaseSubscription, true
	case "platform_getSubscription":
		return s.handleGetSubscription, false
	case "platform_publishContent":
		return s.handlePublishContent, true
	case "platform_deactivateContent":
		return s.handleDeactivateContent, true
	case "platform_getContent":
		return s.handleGetContent, false
	case "platform_listCreatorContent":
		return s.handleListCreatorContent, false
	case "platform_accessContent":
		return s.handleAccessContent, true
	case "platform_withdrawEarnings":
		return s.handleWithdrawEarnings, true
	case "platform_earnings":
		return s.handleEarnings, false
	case "platform_setUnitPrice":
		return s.handleSetUnitPrice, true
	case "platform_approveCreator":
		return s.handleApproveCreator, true
	case "platform_revokeCreator":
		return s.handleRevokeCreator, true
	case "platform_pause":
		return s.handlePause, true
	case "platform_resume":
		return s.handleResume, true
	case "platform_sweepFees":
		return s.handleSweepFees, true
	case "platform_params":
		return s.handleParams, false
	case "platform_events":
		return s.handleEvents, false
	case "platform_balance":
		return s.handleBalance, false
	case "platform_mint":
		return s.handleMint, true
	}
	return nil, false
}

func (s *Server) requireAuth(r *http.Request) error {
	if s.authToken == "" {
		return nil
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return errors.New("missing bearer token")
	}
	supplied := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(s.authToken)) != 1 {
		return errors.New("invalid bearer token")
	}
	return nil
}

// codeRecorder wraps the response writer so handler error codes flow into the
// metrics observation after the handler returns.
type codeRecorder struct {
	inner   http.ResponseWriter
	errCode int
}

func (c *codeRecorder) Header() http.Header         { return c.inner.Header() }
func (c *codeRecorder) Write(b []byte) (int, error) { return c.inner.Write(b) }
func (c *codeRecorder) WriteHeader(status int)      { c.inner.WriteHeader(status) }

// writeEngineError maps engine sentinels onto JSON-RPC error codes.
func (s *Server) writeEngineError(w http.ResponseWriter, id interface{}, err error) {
	status := http.StatusBadRequest
	code := codeServerError
	switch {
	case errors.Is(err, platform.ErrUnauthorized),
		errors.Is(err, platform.ErrNotApprovedCreator):
		status = http.StatusForbidden
		code = codeForbidden
	case errors.Is(err, platform.ErrInvalidTier),
		errors.Is(err, platform.ErrInvalidAmount),
		errors.Is(err, platform.ErrEmptyTitle),
		errors.Is(err, platform.ErrEmptyURI),
		errors.Is(err, platform.ErrInvalidContentID):
		code = codeInvalidParams
	case errors.Is(err, platform.ErrInsufficientPayment),
		errors.Is(err, platform.ErrInsufficientFunds),
		errors.Is(err, platform.ErrNoActiveSubscription),
		errors.Is(err, platform.ErrContentInactive),
		errors.Is(err, platform.ErrTierTooLow),
		errors.Is(err, platform.ErrNothingToWithdraw),
		errors.Is(err, platform.ErrNothingToSweep),
		errors.Is(err, platform.ErrVaultUnderfunded):
		status = http.StatusConflict
		code = codePrecondition
	default:
		status = http.StatusInternalServerError
	}
	if rec, ok := w.(*codeRecorder); ok {
		rec.errCode = code
	}
	writeError(w, status, id, code, err.Error(), nil)
}
