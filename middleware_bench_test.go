package cors_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/restfilter/cors"
)

func BenchmarkMiddleware(b *testing.B) {
	cases := []MiddlewareTestCase{
		{
			desc:        "passthrough",
			newHandler:  newDummyHandler(),
			passthrough: true,
			cases: []ReqTestCase{
				{
					desc:      "actual",
					reqMethod: http.MethodGet,
					reqHeaders: Headers{
						headerOrigin: "https://example.com",
					},
				},
			},
		}, {
			desc:       "default configuration",
			newHandler: newDummyHandler(),
			cases: []ReqTestCase{
				{
					desc:      "non-CORS",
					reqMethod: http.MethodGet,
				}, {
					desc:      "actual",
					reqMethod: http.MethodGet,
					reqHeaders: Headers{
						headerOrigin: "https://example.com",
					},
				}, {
					desc:      "preflight",
					reqMethod: http.MethodOptions,
					reqHeaders: Headers{
						headerOrigin: "https://example.com",
					},
				},
			},
		}, {
			desc:       "single origin",
			newHandler: newDummyHandler(),
			opts: cors.Options{
				cors.AllowOrigins: "https://example.com",
			},
			cases: []ReqTestCase{
				{
					desc:      "actual from allowed",
					reqMethod: http.MethodGet,
					reqHeaders: Headers{
						headerOrigin: "https://example.com",
					},
				}, {
					desc:      "actual from disallowed",
					reqMethod: http.MethodGet,
					reqHeaders: Headers{
						headerOrigin: "https://example.computer",
					},
				}, {
					desc:      "preflight from allowed",
					reqMethod: http.MethodOptions,
					reqHeaders: Headers{
						headerOrigin: "https://example.com",
					},
				},
			},
		}, {
			desc:       "many origins",
			newHandler: newDummyHandler(),
			opts: cors.Options{
				cors.AllowOrigins: manyOrigins,
			},
			cases: []ReqTestCase{
				{
					desc:      "actual from allowed",
					reqMethod: http.MethodGet,
					reqHeaders: Headers{
						headerOrigin: "https://99.example.com",
					},
				}, {
					desc:      "actual from disallowed",
					reqMethod: http.MethodGet,
					reqHeaders: Headers{
						headerOrigin: "https://example.computer",
					},
				},
			},
		},
	}

	for _, mwbc := range cases {
		if mwbc.passthrough {
			continue
		}
		var mw *cors.Middleware
		// benchmark initialization
		f := func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				mw = cors.NewMiddleware(mwbc.opts)
			}
		}
		b.Run("initialization "+mwbc.desc, f)

		// benchmark readback
		f = func(b *testing.B) {
			if mw == nil { // in case subbenchmark 'initialization' wasn't run
				mw = cors.NewMiddleware(mwbc.opts)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				mw.Options()
			}
		}
		b.Run("readback       "+mwbc.desc, f)
	}

	// benchmark execution
	for _, mwbc := range cases {
		var handler http.Handler = mwbc.newHandler()
		var mw *cors.Middleware
		if mwbc.passthrough {
			mw = new(cors.Middleware)
		} else {
			mw = cors.NewMiddleware(mwbc.opts)
		}
		handler = mw.Wrap(handler)
		for _, bc := range mwbc.cases {
			f := func(b *testing.B) {
				req := newRequest(bc.reqMethod, bc.reqHeaders)
				b.ReportAllocs()
				b.ResetTimer()
				// We run benchmarks in parallel because typical workloads
				// for HTTP handlers are concurrent.
				b.RunParallel(func(pb *testing.PB) {
					for pb.Next() {
						rec := httptest.NewRecorder()
						handler.ServeHTTP(rec, req)
					}
				})
			}
			desc := fmt.Sprintf("exec       %s vs %s", mwbc.desc, bc.desc)
			if mwbc.passthrough {
				b.Run(desc, f)
				continue
			}
			// Run the benchmark outside debug mode.
			mw.SetDebug(false)
			b.Run(desc, f)
			// Run the benchmark in debug mode.
			desc = fmt.Sprintf("exec debug %s vs %s", mwbc.desc, bc.desc)
			mw.SetDebug(true)
			b.Run(desc, f)
		}
	}
}

var manyOrigins string

func init() {
	const n = 100
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "https://%d.example.com ", i)
		fmt.Fprintf(&sb, "https://%d.example.com:8080 ", i)
		fmt.Fprintf(&sb, "https://%d.foo.example.com ", i)
		fmt.Fprintf(&sb, "https://%d.foo.example.com:8080 ", i)
	}
	manyOrigins = strings.TrimSpace(sb.String())
}

var dummyHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	io.WriteString(w, "Hello, World!")
})

func newDummyHandler() func() http.Handler {
	return func() http.Handler {
		return dummyHandler
	}
}
