// Package apiconnect wires the api messages to Connect handlers and clients.
//
// It plays the role protoc-gen-connect-go output usually does: one
// NewXServiceHandler returning a path prefix and http.Handler per service, and
// one NewXServiceClient per service. Both always register api.Codec.
package apiconnect

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/pkg/api"
)

// Package is the Connect package name; every procedure lives under it.
const Package = "fairshare.v1"

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// serviceMux routes procedures of a single service to their handlers.
type serviceMux map[string]http.Handler

func (m serviceMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func trimBase(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
