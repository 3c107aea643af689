package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"github.com/rue-joseph-bens/tramboard/internal/appconf"
)

// compressedContentTypes are the bodies this service produces. Anything else
// passes through untouched.
var compressedContentTypes = []string{"text/html", "application/json"}

// newCompressor builds the gzip wrapper for every route. It fails when the
// configured level is outside what gzip supports.
func newCompressor(cfg appconf.Compression) (func(http.Handler) http.HandlerFunc, error) {
	return gzhttp.NewWrapper(
		gzhttp.MinSize(cfg.MinSize),
		gzhttp.CompressionLevel(cfg.Level),
		gzhttp.ContentTypes(compressedContentTypes),
	)
}
