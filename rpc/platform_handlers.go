package rpc

import (
	"encoding/json"
	"math/big"
	"net/http"

	"creatorpass/core/types"
	"creatorpass/crypto"
	"creatorpass/native/platform"
)

type purchaseParams struct {
	Caller  string `json:"caller"`
	Tier    uint8  `json:"tier"`
	Payment string `json:"payment"`
}

type subscriptionResult struct {
	Subscriber string `json:"subscriber"`
	Active     bool   `json:"active"`
	ExpiresAt  uint64 `json:"expiresAt"`
	Tier       uint8  `json:"tier"`
}

type addressParams struct {
	Addr string `json:"addr"`
}

type callerParams struct {
	Caller string `json:"caller"`
}

type publishParams struct {
	Caller string `json:"caller"`
	Title  string `json:"title"`
	URI    string `json:"uri"`
	Tier   uint8  `json:"tier"`
}

type contentIDParams struct {
	ContentID uint64 `json:"contentId"`
}

type contentActionParams struct {
	Caller    string `json:"caller"`
	ContentID uint64 `json:"contentId"`
}

type creatorParams struct {
	Creator string `json:"creator"`
}

type contentResult struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	URI       string `json:"uri,omitempty"`
	Creator   string `json:"creator"`
	Tier      uint8  `json:"tier"`
	CreatedAt uint64 `json:"createdAt"`
	Active    bool   `json:"active"`
}

type accessResult struct {
	URI    string `json:"uri"`
	Reward string `json:"reward"`
}

type amountResult struct {
	Amount string `json:"amount"`
}

type priceParams struct {
	Caller string `json:"caller"`
	Price  string `json:"price"`
}

type adminCreatorParams struct {
	Caller  string `json:"caller"`
	Creator string `json:"creator"`
}

type mintParams struct {
	Caller string `json:"caller"`
	Addr   string `json:"addr"`
	Amount string `json:"amount"`
}

type paramsResult struct {
	Admin        string `json:"admin"`
	UnitPrice    string `json:"unitPrice"`
	Paused       bool   `json:"paused"`
	ContentCount uint64 `json:"contentCount"`
}

type eventsParams struct {
	Limit int `json:"limit,omitempty"`
}

func formatAddress(addr [20]byte) string {
	return crypto.MustNewAddress(crypto.Prefix, addr[:]).String()
}

func decodeBech32(addr string) ([20]byte, error) {
	decoded, err := crypto.DecodeAddress(addr)
	if err != nil {
		return [20]byte{}, err
	}
	return decoded.Array(), nil
}

func formatSubscription(sub *platform.Subscription, effectiveActive bool) subscriptionResult {
	if sub == nil {
		return subscriptionResult{}
	}
	return subscriptionResult{
		Subscriber: formatAddress(sub.Subscriber),
		Active:     effectiveActive,
		ExpiresAt:  sub.ExpiresAt,
		Tier:       sub.Tier,
	}
}

func formatContent(content *platform.Content) contentResult {
	if content == nil {
		return contentResult{}
	}
	return contentResult{
		ID:        content.ID,
		Title:     content.Title,
		URI:       content.URI,
		Creator:   formatAddress(content.Creator),
		Tier:      content.Tier,
		CreatedAt: content.CreatedAt,
		Active:    content.Active,
	}
}

func (s *Server) writeParamError(w http.ResponseWriter, id interface{}, message string, data interface{}) {
	if rec, ok := w.(*codeRecorder); ok {
		rec.errCode = codeInvalidParams
	}
	writeError(w, http.StatusBadRequest, id, codeInvalidParams, message, data)
}

func decodeParams(req *RPCRequest, out interface{}) error {
	if len(req.Params) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params[0], out)
}

func parseAmount(raw string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.Sign() < 0 {
		return nil, false
	}
	return amount, true
}

func (s *Server) handlePurchaseSubscription(w http.ResponseWriter, req *RPCRequest) {
	var params purchaseParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	payment, ok := parseAmount(params.Payment)
	if !ok {
		s.writeParamError(w, req.ID, "invalid payment amount", nil)
		return
	}
	sub, err := s.engine.PurchaseSubscription(caller, params.Tier, payment)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, formatSubscription(sub, true))
}

func (s *Server) handleGetSubscription(w http.ResponseWriter, req *RPCRequest) {
	var params addressParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	addr, err := decodeBech32(params.Addr)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid address", err.Error())
		return
	}
	sub, effectiveActive, err := s.engine.SubscriptionStatus(addr)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, formatSubscription(sub, effectiveActive))
}

func (s *Server) handlePublishContent(w http.ResponseWriter, req *RPCRequest) {
	var params publishParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	content, err := s.engine.PublishContent(caller, params.Title, params.URI, params.Tier)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	result := formatContent(content)
	result.URI = ""
	writeResult(w, req.ID, result)
}

func (s *Server) handleDeactivateContent(w http.ResponseWriter, req *RPCRequest) {
	var params contentActionParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	content, err := s.engine.DeactivateContent(caller, params.ContentID)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	result := formatContent(content)
	result.URI = ""
	writeResult(w, req.ID, result)
}

func (s *Server) handleGetContent(w http.ResponseWriter, req *RPCRequest) {
	var params contentIDParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	content, err := s.engine.ContentDetails(params.ContentID)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, formatContent(content))
}

func (s *Server) handleListCreatorContent(w http.ResponseWriter, req *RPCRequest) {
	var params creatorParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	creator, err := decodeBech32(params.Creator)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid creator address", err.Error())
		return
	}
	contents, err := s.engine.CreatorContent(creator)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	results := make([]contentResult, 0, len(contents))
	for _, content := range contents {
		results = append(results, formatContent(content))
	}
	writeResult(w, req.ID, results)
}

func (s *Server) handleAccessContent(w http.ResponseWriter, req *RPCRequest) {
	var params contentActionParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	content, reward, err := s.engine.AccessContent(caller, params.ContentID)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, accessResult{URI: content.URI, Reward: reward.String()})
}

func (s *Server) handleWithdrawEarnings(w http.ResponseWriter, req *RPCRequest) {
	var params callerParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	amount, err := s.engine.WithdrawEarnings(caller)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, amountResult{Amount: amount.String()})
}

func (s *Server) handleEarnings(w http.ResponseWriter, req *RPCRequest) {
	var params addressParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	addr, err := decodeBech32(params.Addr)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid address", err.Error())
		return
	}
	amount, err := s.engine.Earnings(addr)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, amountResult{Amount: amount.String()})
}

func (s *Server) handleSetUnitPrice(w http.ResponseWriter, req *RPCRequest) {
	var params priceParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	price, ok := parseAmount(params.Price)
	if !ok {
		s.writeParamError(w, req.ID, "invalid price", nil)
		return
	}
	if err := s.engine.SetUnitPrice(caller, price); err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleApproveCreator(w http.ResponseWriter, req *RPCRequest) {
	s.handleCreatorToggle(w, req, true)
}

func (s *Server) handleRevokeCreator(w http.ResponseWriter, req *RPCRequest) {
	s.handleCreatorToggle(w, req, false)
}

func (s *Server) handleCreatorToggle(w http.ResponseWriter, req *RPCRequest, approve bool) {
	var params adminCreatorParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	creator, err := decodeBech32(params.Creator)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid creator address", err.Error())
		return
	}
	if approve {
		err = s.engine.ApproveCreator(caller, creator)
	} else {
		err = s.engine.RevokeCreator(caller, creator)
	}
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handlePause(w http.ResponseWriter, req *RPCRequest) {
	s.handlePauseToggle(w, req, true)
}

func (s *Server) handleResume(w http.ResponseWriter, req *RPCRequest) {
	s.handlePauseToggle(w, req, false)
}

func (s *Server) handlePauseToggle(w http.ResponseWriter, req *RPCRequest, pause bool) {
	var params callerParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	if pause {
		err = s.engine.Pause(caller)
	} else {
		err = s.engine.Resume(caller)
	}
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleSweepFees(w http.ResponseWriter, req *RPCRequest) {
	var params callerParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	amount, err := s.engine.SweepFees(caller)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, amountResult{Amount: amount.String()})
}

func (s *Server) handleParams(w http.ResponseWriter, req *RPCRequest) {
	params, err := s.engine.PlatformParams()
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, paramsResult{
		Admin:        formatAddress(params.Admin),
		UnitPrice:    params.UnitPrice,
		Paused:       params.Paused,
		ContentCount: params.ContentCount,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, req *RPCRequest) {
	var params eventsParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	var recent []*types.Event
	if s.recorder != nil {
		recent = s.recorder.Recent(params.Limit)
	}
	if recent == nil {
		recent = []*types.Event{}
	}
	writeResult(w, req.ID, recent)
}

func (s *Server) handleBalance(w http.ResponseWriter, req *RPCRequest) {
	var params addressParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	addr, err := decodeBech32(params.Addr)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid address", err.Error())
		return
	}
	balance, err := s.engine.Balance(addr)
	if err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, amountResult{Amount: balance.String()})
}

func (s *Server) handleMint(w http.ResponseWriter, req *RPCRequest) {
	var params mintParams
	if err := decodeParams(req, &params); err != nil {
		s.writeParamError(w, req.ID, "invalid parameter object", err.Error())
		return
	}
	caller, err := decodeBech32(params.Caller)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid caller address", err.Error())
		return
	}
	recipient, err := decodeBech32(params.Addr)
	if err != nil {
		s.writeParamError(w, req.ID, "invalid recipient address", err.Error())
		return
	}
	amount, ok := parseAmount(params.Amount)
	if !ok {
		s.writeParamError(w, req.ID, "invalid amount", nil)
		return
	}
	if err := s.engine.Mint(caller, recipient, amount); err != nil {
		s.writeEngineError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, true)
}
