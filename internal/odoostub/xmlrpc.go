package odoostub

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/kolo/xmlrpc"
)

const xmlrpcPrefix = "/xmlrpc/2/"

type methodCall struct {
	MethodName string      `xml:"methodName"`
	Params     []callParam `xml:"params>param"`
}

type callParam struct {
	Value struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"value"`
}

func (s *Server) handleXML(w http.ResponseWriter, r *http.Request, service string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, args, err := decodeMethodCall(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, fault, status := s.serve(service, method, args)
	if status != 0 {
		w.WriteHeader(status)
		return
	}

	var payload []byte
	if fault != nil {
		payload = encodeFault(*fault)
	} else if payload, err = encodeResponse(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write(payload)
}

// decodeMethodCall splits the call into its params and decodes each one as a
// single-value response, which is the only decoding entry point the library
// exposes.
func decodeMethodCall(body []byte) (string, []any, error) {
	var call methodCall
	if err := xml.Unmarshal(body, &call); err != nil {
		return "", nil, fmt.Errorf("decode methodCall: %w", err)
	}

	args := make([]any, 0, len(call.Params))
	for i, param := range call.Params {
		var buf bytes.Buffer
		buf.WriteString("<?xml version=\"1.0\"?><methodResponse><params><param><value>")
		buf.Write(param.Value.Inner)
		buf.WriteString("</value></param></params></methodResponse>")

		var value any
		if err := xmlrpc.Response(buf.Bytes()).Unmarshal(&value); err != nil {
			return "", nil, fmt.Errorf("decode param %d: %w", i, err)
		}
		args = append(args, value)
	}
	return call.MethodName, args, nil
}

// encodeResponse reuses the library's param encoding and rewraps it as a
// methodResponse.
func encodeResponse(result any) ([]byte, error) {
	encoded, err := xmlrpc.EncodeMethodCall("result", result)
	if err != nil {
		return nil, err
	}

	start := bytes.Index(encoded, []byte("<params>"))
	end := bytes.LastIndex(encoded, []byte("</params>"))
	if start < 0 || end < start {
		return nil, fmt.Errorf("unexpected methodCall encoding %q", encoded)
	}

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\"?>\n<methodResponse>")
	buf.Write(encoded[start : end+len("</params>")])
	buf.WriteString("</methodResponse>")
	return buf.Bytes(), nil
}

func encodeFault(fault Fault) []byte {
	var message bytes.Buffer
	_ = xml.EscapeText(&message, []byte(fault.Message))

	return []byte(fmt.Sprintf(`<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>%d</int></value></member>
<member><name>faultString</name><value><string>%s</string></value></member>
</struct></value></fault></methodResponse>`, fault.Code, message.String()))
}
