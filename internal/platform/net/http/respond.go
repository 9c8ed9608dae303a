// Package http is the router seam, the chi adapter, the server and the response writers
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "streaks/internal/platform/net"
)

// Envelope is the response body of every enveloped route
type Envelope = pnet.Wire

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	status, env := pnet.OK(data, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// RespondError maps err to its status and writes the error envelope
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := pnet.Error(err, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

// Response is what return-style handlers hand back, an error Body always wins
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// ContentType writes Body verbatim (string or []byte) with this type
	ContentType string
	// Raw writes Body as bare JSON without the envelope
	Raw bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	// errors always use the envelope, whatever the success shape would have been
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	switch {
	case resp.ContentType != "":
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(status)
		switch b := resp.Body.(type) {
		case string:
			_, _ = w.Write([]byte(b))
		case []byte:
			_, _ = w.Write(b)
		}
	case resp.Raw:
		JSON(w, status, resp.Body)
	default:
		_, env := pnet.Status(status, resp.Body, pnet.RequestID(r.Context()))
		JSON(w, status, env)
	}
}

// OK returns a 200 enveloped response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Raw returns a 200 response whose body is data itself, no envelope
func Raw(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data, Raw: true} }

// SVG returns a 200 image/svg+xml response
func SVG(markup string) Response {
	return Response{Status: stdhttp.StatusOK, Body: markup, ContentType: "image/svg+xml; charset=utf-8"}
}

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// WithHeader returns a copy of resp with header k set to v
func (resp Response) WithHeader(k, v string) Response {
	h := stdhttp.Header{}
	for hk, hv := range resp.Header {
		h[hk] = append([]string(nil), hv...)
	}
	h.Set(k, v)
	resp.Header = h
	return resp
}
