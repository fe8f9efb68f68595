package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/payforge/checkout/internal/domain/payment"
	"github.com/payforge/checkout/internal/observability"
	"github.com/payforge/checkout/internal/observability/logctx"
	"github.com/payforge/checkout/internal/pkg/result"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	builderService      = "builder-service"
	useCaseBuildRequest = "payment.build_request"
	buildSpanName       = "BuildPaymentRequest"
	spanPrefix          = "UC."

	// MetadataMerchantID identifies the merchant charging the payment.
	MetadataMerchantID = "merchant_id"
	// MetadataOrderID ties the payment back to the order being paid.
	MetadataOrderID = "order_id"
)

// BuildRequestUseCase turns a validated Initialization into a transport-ready
// Request, or a failure envelope. It re-checks only the business rules it
// owns: required metadata and per-merchant currency support. Amount and
// currency range are the Initialization constructor's job.
type BuildRequestUseCase struct {
	support  CurrencySupport
	ids      IDGenerator
	required []string
	tel      observability.Telemetry
	log      observability.Logger
}

func NewBuildRequestUseCase(support CurrencySupport, ids IDGenerator, required []string, tel observability.Telemetry) *BuildRequestUseCase {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	if len(required) == 0 {
		required = []string{MetadataMerchantID, MetadataOrderID}
	}
	return &BuildRequestUseCase{
		support:  support,
		ids:      ids,
		required: append([]string(nil), required...),
		tel:      tel,
		log: tel.Logger().With(
			observability.F("service", builderService),
		),
	}
}

// BuildPaymentRequest satisfies the orchestrator's Repository port.
func (uc *BuildRequestUseCase) BuildPaymentRequest(ctx context.Context, init payment.Initialization) result.Result[payment.Request] {
	return uc.Execute(ctx, init)
}

// Execute runs the build. Business-rule violations and collaborator failures
// travel inside the envelope; the call itself never panics. Given identical
// input and collaborator answers the outcome is identical, modulo the
// generated request id and timestamp.
func (uc *BuildRequestUseCase) Execute(ctx context.Context, init payment.Initialization) (res result.Result[payment.Request]) {
	logger := logctx.FromOr(ctx, uc.log).With(
		observability.F("use_case", useCaseBuildRequest),
		observability.F("currency", init.Currency().String()),
	)

	ctx, span := uc.tel.Tracer().Start(ctx, spanPrefix+buildSpanName,
		attribute.String("use_case", useCaseBuildRequest),
		attribute.String("payment.currency", init.Currency().String()),
		attribute.String("payment.amount", init.Amount().String()),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		if err := res.Err(); err != nil {
			outcome = "error"
			statusText = payment.Kind(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		latency := time.Since(start).Seconds()
		uc.tel.Counter(observability.MUsecaseRequests).Add(1,
			observability.L("use_case", useCaseBuildRequest),
			observability.L("outcome", outcome),
		)
		uc.tel.Histogram(observability.MUsecaseDuration).Observe(latency,
			observability.L("use_case", useCaseBuildRequest),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", latency),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err := res.Err(); err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if init.IsZero() {
		return result.Fail[payment.Request](fmt.Errorf("%w: zero initialization", payment.ErrInvalidInitialization))
	}

	for _, key := range uc.required {
		if v, ok := init.Metadata(key); !ok || v == "" {
			return result.Fail[payment.Request](fmt.Errorf("%w: %s", payment.ErrMissingMetadata, key))
		}
	}

	merchantID, _ := init.Metadata(MetadataMerchantID)
	supported, err := uc.support.Supported(ctx, merchantID, init.Currency())
	if err != nil {
		return result.Fail[payment.Request](fmt.Errorf("%w: currency support lookup: %v", payment.ErrCollaboratorFailure, err))
	}
	if !supported {
		return result.Fail[payment.Request](fmt.Errorf("%w: %s not supported for merchant %s", payment.ErrUnsupportedCurrency, init.Currency(), merchantID))
	}

	amountMinor, err := init.Currency().MinorUnits(init.Amount())
	if err != nil {
		return result.Fail[payment.Request](fmt.Errorf("%w: amount %s has sub-minor precision in %s", err, init.Amount(), init.Currency()))
	}

	orderID, _ := init.Metadata(MetadataOrderID)
	req := payment.Request{
		ID:          uc.ids.NewID(),
		AmountMinor: amountMinor,
		Currency:    init.Currency().String(),
		MerchantID:  merchantID,
		OrderID:     orderID,
		Metadata:    init.MetadataCopy(),
		CreatedAt:   time.Now().UTC(),
	}

	span.SetAttributes(
		attribute.String("payment.request_id", req.ID),
		attribute.Int64("payment.amount_minor", req.AmountMinor),
	)
	return result.Ok(req)
}
