package commerce

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("storefront-commerce")
