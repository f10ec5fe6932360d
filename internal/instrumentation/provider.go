package instrumentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Provider owns the OpenTelemetry meter and tracer providers together with
// the application's metrics recorder and audit logger.
//
// A disabled Provider is fully functional but records nothing: every accessor
// returns a no-op implementation, so call sites never need to branch on
// whether instrumentation is on.
type Provider struct {
	config Config

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	promRegistry   *prometheus.Registry

	metrics     *Metrics
	auditLogger *AuditLogger
}

// NewProvider initializes instrumentation from the given configuration.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{
		config:      config,
		metrics:     &Metrics{},
		auditLogger: NewAuditLogger(slog.Default()),
	}

	if !config.Enabled {
		return p, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	reader, err := p.buildMetricsReader(ctx)
	if err != nil {
		return nil, err
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(p.meterProvider)

	metrics, err := NewMetrics(p.meterProvider.Meter(TracerName), config.DetailedLabels)
	if err != nil {
		return nil, err
	}
	p.metrics = metrics

	if err := p.setupTracing(ctx, res); err != nil {
		return nil, err
	}

	return p, nil
}

// buildMetricsReader creates the metrics reader for the configured exporter.
func (p *Provider) buildMetricsReader(ctx context.Context) (sdkmetric.Reader, error) {
	switch p.config.MetricsExporter {
	case "otlp":
		if p.config.OTLPEndpoint == "" {
			return nil, errors.New("otlp metrics exporter requires an OTLP endpoint")
		}
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpointURL(p.config.OTLPEndpoint),
		}
		if p.config.OTLPInsecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exporter), nil

	case "stdout":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exporter), nil

	default:
		// Prometheus pull-based export is the default.
		p.promRegistry = prometheus.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(p.promRegistry))
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exporter, nil
	}
}

// setupTracing initializes the tracer provider when a tracing exporter is
// configured. "none" leaves tracing off.
func (p *Provider) setupTracing(ctx context.Context, res *resource.Resource) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch p.config.TracingExporter {
	case "otlp":
		if p.config.OTLPEndpoint == "" {
			return errors.New("otlp tracing exporter requires an OTLP endpoint")
		}
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpointURL(p.config.OTLPEndpoint),
		}
		if p.config.OTLPInsecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
	case "stdout":
		exporter, err = stdouttrace.New()
		if err != nil {
			return fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
	default:
		return nil
	}

	p.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sdktrace.TraceIDRatioBased(p.config.TraceSamplingRate),
		)),
	)
	otel.SetTracerProvider(p.tracerProvider)
	return nil
}

// Enabled reports whether instrumentation is active.
func (p *Provider) Enabled() bool {
	return p.config.Enabled
}

// Metrics returns the metrics recorder. It is never nil; when instrumentation
// is disabled the recorder's methods are no-ops.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// AuditLogger returns the audit logger.
func (p *Provider) AuditLogger() *AuditLogger {
	return p.auditLogger
}

// SetAuditLogger replaces the audit logger, typically to attach the
// application's configured slog handler.
func (p *Provider) SetAuditLogger(al *AuditLogger) {
	if al != nil {
		p.auditLogger = al
	}
}

// PrometheusHandler returns an HTTP handler serving the Prometheus metrics
// endpoint, or nil when the Prometheus exporter is not in use.
func (p *Provider) PrometheusHandler() http.Handler {
	if p.promRegistry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.promRegistry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter and tracer providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
