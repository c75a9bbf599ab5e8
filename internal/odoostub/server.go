// Package odoostub serves an in-memory res.partner model for tests, over both
// the JSON-RPC endpoint and the XML-RPC /xmlrpc/2/{service} endpoints.
package odoostub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/domain"
)

type Call struct {
	Service string
	Method  string
	Args    []any
}

// Fault is returned as the JSON-RPC error object when set.
type Fault struct {
	Code    int
	Message string
	Name    string
}

type Server struct {
	*httptest.Server

	mu      sync.Mutex
	uid     int64
	records []domain.Record
	nextID  int64
	calls   []Call
	status  int
	fault   *Fault
	unlink  *bool
	delay   time.Duration
}

// New starts a stub that accepts any credentials and answers with uid.
// A zero uid makes authenticate return false.
func New(uid int64, records ...domain.Record) *Server {
	s := &Server{uid: uid, nextID: 1}
	for _, record := range records {
		s.records = append(s.records, normalize(record))
		if id := recordID(record); id >= s.nextID {
			s.nextID = id + 1
		}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FailWithStatus makes every following request answer with status.
func (s *Server) FailWithStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// FailWithFault makes every following execute_kw answer with an error object.
func (s *Server) FailWithFault(fault Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = &fault
}

// UnlinkReturns forces the result of unlink regardless of the stored records.
func (s *Server) UnlinkReturns(result bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlink = &result
}

// Delay holds every following response for d.
func (s *Server) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls whose method (or execute_kw model method) matches.
func (s *Server) CallsTo(method string) []Call {
	var matched []Call
	for _, call := range s.Calls() {
		if call.Method == method || (call.Method == domain.MethodExecuteKW && len(call.Args) > 4 && call.Args[4] == method) {
			matched = append(matched, call)
		}
	}
	return matched
}

type envelope struct {
	ID     any `json:"id"`
	Params struct {
		Service string `json:"service"`
		Method  string `json:"method"`
		Args    []any  `json:"args"`
	} `json:"params"`
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	switch {
	case r.URL.Path == "/jsonrpc":
		s.handleJSON(w, r)
	case strings.HasPrefix(r.URL.Path, xmlrpcPrefix):
		s.handleXML(w, r, strings.TrimPrefix(r.URL.Path, xmlrpcPrefix))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var req envelope
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, fault, status := s.serve(req.Params.Service, req.Params.Method, req.Params.Args)
	if status != 0 {
		w.WriteHeader(status)
		return
	}

	payload := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if fault != nil {
		payload["error"] = map[string]any{
			"code":    fault.Code,
			"message": fault.Message,
			"data":    map[string]any{"name": fault.Name, "message": fault.Message},
		}
	} else {
		payload["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// serve records the call and answers it, or returns the forced HTTP status.
func (s *Server) serve(service, method string, args []any) (any, *Fault, int) {
	s.mu.Lock()
	delay := s.delay
	s.mu.Unlock()
	time.Sleep(delay)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Service: service, Method: method, Args: args})

	if s.status != 0 {
		return nil, nil, s.status
	}

	result, fault := s.dispatch(service, method, args)
	return result, fault, 0
}

func (s *Server) dispatch(service, method string, args []any) (any, *Fault) {
	switch {
	case service == "common" && method == domain.MethodAuthenticate:
		if s.uid == 0 {
			return false, nil
		}
		return s.uid, nil
	case service == "object" && method == domain.MethodExecuteKW:
		if s.fault != nil {
			return nil, s.fault
		}
		return s.executeKW(args)
	default:
		return nil, &Fault{Code: 404, Message: fmt.Sprintf("unknown method %s.%s", service, method)}
	}
}

func (s *Server) executeKW(args []any) (any, *Fault) {
	if len(args) < 6 {
		return nil, &Fault{Code: 200, Message: "execute_kw expects at least 6 arguments"}
	}
	if uid, err := domain.AsInt64(args[1]); err != nil || uid != s.uid || s.uid == 0 {
		return nil, &Fault{Code: 100, Message: "Session expired", Name: "odoo.http.SessionExpiredException"}
	}
	if args[3] != domain.PartnerModel {
		return nil, &Fault{Code: 200, Message: fmt.Sprintf("unknown model %v", args[3])}
	}

	positional, _ := args[5].([]any)
	options := map[string]any{}
	if len(args) > 6 {
		options, _ = args[6].(map[string]any)
	}

	switch args[4] {
	case "search_read":
		if len(positional) != 1 {
			return nil, &Fault{Code: 200, Message: "search_read expects a domain"}
		}
		filter, _ := positional[0].([]any)
		return s.searchRead(filter, options), nil
	case "create":
		values, ok := firstMap(positional)
		if !ok {
			return nil, &Fault{Code: 200, Message: "create expects a values mapping"}
		}
		record := domain.Record{"id": s.nextID}
		for key, value := range values {
			record[key] = value
		}
		s.nextID++
		s.records = append(s.records, normalize(record))
		return record["id"], nil
	case "unlink":
		ids, ok := firstList(positional)
		if !ok {
			return nil, &Fault{Code: 200, Message: "unlink expects a list of ids"}
		}
		return s.remove(ids), nil
	default:
		return nil, &Fault{Code: 200, Message: fmt.Sprintf("unknown method %v", args[4])}
	}
}

func (s *Server) searchRead(filter []any, options map[string]any) []domain.Record {
	var fields []string
	if raw, ok := options["fields"].([]any); ok {
		for _, field := range raw {
			fields = append(fields, fmt.Sprint(field))
		}
	}
	limit := -1
	if raw, ok := options["limit"]; ok {
		if n, err := domain.AsInt64(raw); err == nil {
			limit = int(n)
		}
	}

	out := []domain.Record{}
	for _, record := range s.records {
		if limit >= 0 && len(out) >= limit {
			break
		}
		if !matches(record, filter) {
			continue
		}
		out = append(out, project(record, fields))
	}
	return out
}

func (s *Server) remove(ids []any) bool {
	if s.unlink != nil {
		return *s.unlink
	}

	removed := false
	for _, raw := range ids {
		id, err := domain.AsInt64(raw)
		if err != nil {
			return false
		}
		for i, record := range s.records {
			if recordID(record) == id {
				s.records = append(s.records[:i], s.records[i+1:]...)
				removed = true
				break
			}
		}
	}
	return removed
}

func matches(record domain.Record, filter []any) bool {
	for _, raw := range filter {
		term, ok := raw.([]any)
		if !ok || len(term) != 3 {
			return false
		}
		field := fmt.Sprint(term[0])
		switch term[1] {
		case "=":
			want, err := domain.AsInt64(term[2])
			if field == "id" && err == nil {
				if recordID(record) != want {
					return false
				}
				continue
			}
			if fmt.Sprint(record[field]) != fmt.Sprint(term[2]) {
				return false
			}
		case "ilike":
			value, _ := record[field].(string)
			if !strings.Contains(strings.ToLower(value), strings.ToLower(fmt.Sprint(term[2]))) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func project(record domain.Record, fields []string) domain.Record {
	out := domain.Record{"id": record["id"]}
	if len(fields) == 0 {
		for key, value := range record {
			out[key] = value
		}
		return out
	}
	for _, field := range fields {
		value, ok := record[field]
		if !ok {
			value = false
		}
		out[field] = value
	}
	return out
}

func normalize(record domain.Record) domain.Record {
	out := domain.Record{}
	for key, value := range record {
		out[key] = value
	}
	out["id"] = recordID(record)
	return out
}

func recordID(record domain.Record) int64 {
	id, _ := domain.AsInt64(record["id"])
	return id
}

func firstMap(values []any) (map[string]any, bool) {
	if len(values) != 1 {
		return nil, false
	}
	m, ok := values[0].(map[string]any)
	return m, ok
}

func firstList(values []any) ([]any, bool) {
	if len(values) != 1 {
		return nil, false
	}
	list, ok := values[0].([]any)
	return list, ok
}
