package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

const echoProcedure = "/catalog.test.EchoService/Echo"

// setupEchoServer serves one procedure that echoes the request ID it sees,
// or fails when the request has "fail": true.
func setupEchoServer(t *testing.T, interceptors ...connect.Interceptor) *connect.Client[structpb.Struct, structpb.Struct] {
	t.Helper()

	handler := connect.NewUnaryHandler(echoProcedure,
		func(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
			if req.Msg.GetFields()["fail"].GetBoolValue() {
				return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
			}
			msg, err := structpb.NewStruct(map[string]any{"requestId": GetRequestID(ctx)})
			if err != nil {
				return nil, err
			}
			return connect.NewResponse(msg), nil
		},
		connect.WithInterceptors(interceptors...),
	)

	mux := http.NewServeMux()
	mux.Handle(echoProcedure, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return connect.NewClient[structpb.Struct, structpb.Struct](http.DefaultClient, server.URL+echoProcedure)
}

func request(t *testing.T, fields map[string]any) *connect.Request[structpb.Struct] {
	t.Helper()
	msg, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return connect.NewRequest(msg)
}

func TestRequestIDInterceptor(t *testing.T) {
	client := setupEchoServer(t, RequestIDInterceptor())
	ctx := context.Background()

	t.Run("generates an id", func(t *testing.T) {
		resp, err := client.CallUnary(ctx, request(t, nil))
		require.NoError(t, err)

		id := resp.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, resp.Msg.GetFields()["requestId"].GetStringValue())
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := request(t, nil)
		req.Header().Set(RequestIDHeader, "abc-123")

		resp, err := client.CallUnary(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", resp.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", resp.Msg.GetFields()["requestId"].GetStringValue())
	})

	t.Run("tags errors", func(t *testing.T) {
		req := request(t, map[string]any{"fail": true})
		req.Header().Set(RequestIDHeader, "err-1")

		_, err := client.CallUnary(ctx, req)
		var connectErr *connect.Error
		require.ErrorAs(t, err, &connectErr)
		assert.Equal(t, connect.CodeNotFound, connectErr.Code())
		assert.Equal(t, "err-1", connectErr.Meta().Get(RequestIDHeader))
	})
}

func TestGetRequestIDEmpty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Equal(t, "x", GetRequestID(WithRequestID(context.Background(), "x")))
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	client := setupEchoServer(t, RequestIDInterceptor(), LoggingInterceptor(), metrics.Interceptor())
	ctx := context.Background()

	_, err := client.CallUnary(ctx, request(t, nil))
	require.NoError(t, err)
	_, err = client.CallUnary(ctx, request(t, nil))
	require.NoError(t, err)
	_, err = client.CallUnary(ctx, request(t, map[string]any{"fail": true}))
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(echoProcedure, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(echoProcedure, "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "catalog_rpc_requests_total"))
}

func TestResultCode(t *testing.T) {
	assert.Equal(t, "ok", resultCode(nil))
	assert.Equal(t, "invalid_argument", resultCode(connect.NewError(connect.CodeInvalidArgument, errors.New("x"))))
	assert.Equal(t, "unknown", resultCode(errors.New("plain")))
}
