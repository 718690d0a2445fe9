package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coinfront/pkg/metrics"
)

type captured struct {
	Method      string
	Path        string
	ContentType string
	Custom      string
	Body        []byte
}

func newTestServer(status int, reply string, seen chan<- captured) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- captured{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Custom:      r.Header.Get("X-Custom"),
			Body:        body,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
}

func testMetrics() *metrics.Manager {
	return metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
}

func TestClientDefaults(t *testing.T) {
	Convey("Given a client built without options", t, func() {
		c := New()

		Convey("Then it targets the default base address with a JSON content type", func() {
			So(c.BaseURL(), ShouldEqual, "http://localhost:8088/api")
			So(c.Headers().Get("Content-Type"), ShouldEqual, "application/json")
		})

		Convey("And Headers returns a copy", func() {
			h := c.Headers()
			h.Set("Content-Type", "text/plain")
			So(c.Headers().Get("Content-Type"), ShouldEqual, "application/json")
		})
	})
}

func TestClientRequests(t *testing.T) {
	Convey("Given a client pointed at a test server", t, func() {
		seen := make(chan captured, 4)
		srv := newTestServer(http.StatusOK, `{"ok":true}`, seen)
		defer srv.Close()

		c := New(WithBaseURL(srv.URL+"/api/"), WithMetrics(testMetrics()))
		ctx := context.Background()

		Convey("When issuing a GET without overrides", func() {
			resp, err := c.Get(ctx, "/ping")
			So(err, ShouldBeNil)
			got := <-seen

			Convey("Then the request inherits the base address and header", func() {
				So(got.Method, ShouldEqual, http.MethodGet)
				So(got.Path, ShouldEqual, "/api/ping")
				So(got.ContentType, ShouldEqual, "application/json")
				So(len(got.Body), ShouldEqual, 0)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.OK(), ShouldBeTrue)
			})
		})

		Convey("When posting a struct", func() {
			payload := map[string]string{"symbol": "ETH"}
			resp, err := c.Post(ctx, "coin/detail", payload)
			So(err, ShouldBeNil)
			got := <-seen

			Convey("Then the body is the JSON encoding of the payload", func() {
				So(got.Method, ShouldEqual, http.MethodPost)
				So(got.Path, ShouldEqual, "/api/coin/detail")
				So(string(got.Body), ShouldEqual, `{"symbol":"ETH"}`)

				var out map[string]bool
				So(resp.Decode(&out), ShouldBeNil)
				So(out["ok"], ShouldBeTrue)
			})
		})

		Convey("When posting pre-encoded bytes", func() {
			_, err := c.Post(ctx, "/raw", json.RawMessage(`{"a":1}`))
			So(err, ShouldBeNil)
			So(string((<-seen).Body), ShouldEqual, `{"a":1}`)
		})

		Convey("When the caller overrides a header for one request", func() {
			_, err := c.Post(ctx, "/x", []byte("a=b"),
				WithRequestHeader("Content-Type", "application/x-www-form-urlencoded"),
				WithRequestHeader("X-Custom", "1"))
			So(err, ShouldBeNil)
			got := <-seen
			So(got.ContentType, ShouldEqual, "application/x-www-form-urlencoded")
			So(got.Custom, ShouldEqual, "1")

			Convey("Then the shared defaults are untouched", func() {
				_, err := c.Get(ctx, "/y")
				So(err, ShouldBeNil)
				next := <-seen
				So(next.ContentType, ShouldEqual, "application/json")
				So(next.Custom, ShouldEqual, "")
			})
		})

		Convey("When the path is an absolute URL", func() {
			_, err := c.Get(ctx, srv.URL+"/elsewhere")
			So(err, ShouldBeNil)
			So((<-seen).Path, ShouldEqual, "/elsewhere")
		})

		Convey("When the body cannot be encoded", func() {
			_, err := c.Post(ctx, "/bad", make(chan int))
			So(errors.Is(err, ErrEncode), ShouldBeTrue)
			So(len(seen), ShouldEqual, 0)
		})

		Convey("When the response body is not JSON", func() {
			resp := &Response{Body: []byte("nope")}
			var v map[string]any
			So(errors.Is(resp.Decode(&v), ErrDecode), ShouldBeTrue)
		})
	})
}

func TestClientFailures(t *testing.T) {
	Convey("Given upstream failures", t, func() {
		ctx := context.Background()

		Convey("When the server answers with a non-2xx status", func() {
			seen := make(chan captured, 1)
			srv := newTestServer(http.StatusUnprocessableEntity, `{"error":"bad symbol"}`, seen)
			defer srv.Close()

			c := New(WithBaseURL(srv.URL), WithMetrics(testMetrics()))
			resp, err := c.Post(ctx, "/coin/detail", map[string]string{"symbol": "?"})

			Convey("Then the response and a status error are both returned", func() {
				So(errors.Is(err, ErrStatus), ShouldBeTrue)
				var se *StatusError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Response, ShouldEqual, resp)
				So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
				So(string(resp.Body), ShouldEqual, `{"error":"bad symbol"}`)
				So(err.Error(), ShouldContainSubstring, "422")
			})
		})

		Convey("When the connection is refused", func() {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			So(err, ShouldBeNil)
			addr := ln.Addr().String()
			_ = ln.Close()

			c := New(WithBaseURL("http://"+addr+"/api"), WithMetrics(testMetrics()))
			resp, err := c.Post(ctx, "/coin/detail", map[string]string{"symbol": "BTC"})

			Convey("Then the transport error is returned as net/http produced it", func() {
				So(resp, ShouldBeNil)
				var ue *url.Error
				So(errors.As(err, &ue), ShouldBeTrue)
				So(errors.Is(err, ErrStatus), ShouldBeFalse)
			})
		})

		Convey("When the base address is malformed", func() {
			c := New(WithBaseURL("http://bad host"), WithMetrics(testMetrics()))
			_, err := c.Get(ctx, "/x")
			So(errors.Is(err, ErrRequest), ShouldBeTrue)
		})

		Convey("When a timeout is configured and the server is slow", func() {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				time.Sleep(300 * time.Millisecond)
			}))
			defer srv.Close()

			c := New(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond), WithMetrics(testMetrics()))
			_, err := c.Get(ctx, "/slow")

			Convey("Then the call fails once without retrying", func() {
				So(err, ShouldNotBeNil)
				var ne net.Error
				So(errors.As(err, &ne), ShouldBeTrue)
				So(ne.Timeout(), ShouldBeTrue)
				So(atomic.LoadInt32(&hits), ShouldEqual, 1)
			})
		})
	})
}
