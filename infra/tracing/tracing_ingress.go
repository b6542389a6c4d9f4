package tracing

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// TracingIngress opens a server span for each request, continuing the trace
// when the caller propagated one in the headers. The span rides on the request
// context so downstream instrumentation (the gorm callbacks) can hang child
// spans off it.
func TracingIngress() gin.HandlerFunc {
	return func(c *gin.Context) {
		tracer := opentracing.GlobalTracer()
		parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(c.Request.Header))

		span := tracer.StartSpan(c.Request.Method+" "+c.Request.URL.Path, ext.RPCServerOption(parent))
		defer span.Finish()
		c.Request = c.Request.WithContext(opentracing.ContextWithSpan(c.Request.Context(), span))

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
	}
}
