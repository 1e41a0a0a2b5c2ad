package scene

import (
	"net/http"
	"sync"

	"github.com/lokanhome/lokan-go/observability"
)

// Process-wide state shared by every Client. It is created once, on the first
// call to New, and never torn down.
var (
	globalOnce    sync.Once
	globalErr     error
	baseTransport *http.Transport
	clientMetrics *observability.ClientMetrics
)

func initGlobal() error {
	globalOnce.Do(func() {
		proto, ok := http.DefaultTransport.(*http.Transport)
		if !ok {
			proto = &http.Transport{}
		}
		baseTransport = proto.Clone()

		clientMetrics, globalErr = observability.NewClientMetrics(
			observability.Meter(observability.DefaultTracerName),
		)
	})
	return globalErr
}
