package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lightprotocol/light-mcp/tools"
)

// JSON-RPC 2.0 error codes
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

const protocolVersion = "2024-11-05"

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type toolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "Parse error", Data: err.Error()},
		})
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "Parse error", Data: err.Error()},
		})
		return
	}

	writeJSON(w, http.StatusOK, s.dispatch(&req))
}

// dispatch handles one JSON-RPC request
func (s *Server) dispatch(req *rpcRequest) *rpcResponse {
	resp := &rpcResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.opts.ServerName,
				"version": s.opts.Version,
			},
		}
	case "tools/list":
		resp.Result = map[string]any{
			"tools": []toolDescriptor{{
				Name:        tools.ToolName,
				Description: tools.ToolDescription,
				InputSchema: tools.SearchDocsSchema(),
			}},
		}
	case "tools/call":
		result, rpcErr := s.callTool(req.Params)
		resp.Result, resp.Error = result, rpcErr
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("Method '%s' not found", req.Method)}
	}

	return resp
}

func (s *Server) callTool(raw json.RawMessage) (any, *rpcError) {
	var params toolCallParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
		}
	}

	if params.Name != tools.ToolName {
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("Tool '%s' not found", params.Name)}
	}

	args := params.Arguments
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	text, err := s.docs.SearchRaw(tools.RouteRPC, args)
	if err != nil {
		var argsErr *tools.ArgumentsError
		switch {
		case errors.As(err, &argsErr):
			return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: argsErr.Violations}
		case tools.IsInvalidRequest(err):
			return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
		default:
			s.log.Error().Err(err).Msg("tools/call failed")
			return nil, &rpcError{Code: codeInternalError, Message: "Internal error", Data: err.Error()}
		}
	}

	return map[string]any{
		"content": []textContent{{Type: "text", Text: text}},
	}, nil
}
