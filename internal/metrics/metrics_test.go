package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRowIngested()
	c.RecordRowIngested()
	c.RecordRowRejected()

	if got := testutil.ToFloat64(c.rowsIngested); got != 2 {
		t.Errorf("rowsIngested = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.rowsRejected); got != 1 {
		t.Errorf("rowsRejected = %v, want 1", got)
	}
}

func TestCollector_HTTPAndDelete(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest(200, "GET", 50*time.Millisecond)
	c.RecordHTTPRequest(200, "GET", 10*time.Millisecond)
	c.RecordHTTPRequest(404, "DELETE", 5*time.Millisecond)
	c.RecordSmartDelete("semester")

	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("200", "GET")); got != 2 {
		t.Errorf("httpRequests{200,GET} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("404", "DELETE")); got != 1 {
		t.Errorf("httpRequests{404,DELETE} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.deleteMatches.WithLabelValues("semester")); got != 1 {
		t.Errorf("deleteMatches{semester} = %v, want 1", got)
	}
}

func TestCollector_SeparateRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()

	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordRowIngested()

	if got := testutil.ToFloat64(c2.rowsIngested); got != 0 {
		t.Errorf("collectors should be independent, got %v", got)
	}
}
