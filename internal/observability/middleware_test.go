package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/naota/taglib/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRequestLoggerAndMetrics(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.Use(RequestMetrics("mwtest"))
	r.POST("/decode/:kind", func(c *gin.Context) {
		c.Set(KeyFrames, 3)
		c.Set(KeyVersion, 4)
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("mwtest", "POST", "/decode/:kind", "200"))
	req := httptest.NewRequest(http.MethodPost, "/decode/tag", strings.NewReader("abc"))
	r.ServeHTTP(httptest.NewRecorder(), req)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("mwtest", "POST", "/decode/:kind", "200"))
	if after-before != 1 {
		t.Fatalf("request counter delta = %v", after-before)
	}

	line := buf.String()
	for _, want := range []string{`"route":"/decode/:kind"`, `"frames":3`, `"version":4`, `"bytes_in":3`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %s missing %s", line, want)
		}
	}

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	if !strings.Contains(buf.String(), `"route":"unmatched"`) || !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("unmatched request log = %s", buf.String())
	}
}
