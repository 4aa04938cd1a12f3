package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarRequestHeader is sent by the DataStar client on every fetch.
	DataStarRequestHeader = "Datastar-Request"
	DataStarAcceptHeader  = "text/event-stream"
	DataStarQueryParam    = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r comes from the DataStar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// ReadSignals decodes the DataStar signals of r into v.
func ReadSignals(r *http.Request, v any) error {
	if err := datastar.ReadSignals(r, v); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid_signals")
	}
	return nil
}
